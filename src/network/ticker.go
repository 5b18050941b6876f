package network

import (
	"context"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
)

// Ticker mirrors the THR price and transaction count into the bot's
// presence line.
type Ticker struct {
	client *Client
}

func NewTicker(client *Client) *Ticker { return &Ticker{client: client} }

// Update refreshes the presence. Failures are logged; the previous status
// simply stays up until the next tick.
func (t *Ticker) Update(ctx context.Context, s *discordgo.Session) {
	price := 0.0
	if prices, err := t.client.TokenPrices(ctx); err == nil {
		price = prices.ThrUSDRate
	} else {
		log.Printf("network: ticker prices: %v", err)
	}

	txCount := int64(0)
	if stats, err := t.client.NetworkStats(ctx); err == nil {
		txCount = stats.TxCount
	} else {
		log.Printf("network: ticker stats: %v", err)
	}

	status := fmt.Sprintf("%d transactions", txCount)
	if price > 0 {
		status = fmt.Sprintf("$%.6f THR | %d TXs", price, txCount)
	}

	if err := s.UpdateWatchStatus(0, status); err != nil {
		log.Printf("network: update presence: %v", err)
	}
}
