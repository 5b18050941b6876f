package network

import (
	"context"
	"log"

	"github.com/bwmarrin/discordgo"
	shareddiscord "github.com/thronos-network/thronos-bot/src/discord"
)

const contractsChannel = "smart-contracts"

// ContractWatcher announces new EVM contract deployments in the
// smart-contracts channel. Addresses already announced are skipped, so a
// contract lingering in the API's recent window is posted once.
type ContractWatcher struct {
	client    *Client
	guildID   string
	announced map[string]bool
}

func NewContractWatcher(client *Client, guildID string) *ContractWatcher {
	return &ContractWatcher{
		client:    client,
		guildID:   guildID,
		announced: make(map[string]bool),
	}
}

// Poll fetches the latest deployments and posts the ones not yet announced.
func (w *ContractWatcher) Poll(ctx context.Context, s *discordgo.Session) {
	contracts, err := w.client.LatestContracts(ctx)
	if err != nil {
		log.Printf("network: fetch latest contracts: %v", err)
		return
	}

	fresh := w.markSeen(contracts)
	if len(fresh) == 0 {
		return
	}

	channel := shareddiscord.FindTextChannel(s, w.guildID, contractsChannel)
	if channel == nil {
		return
	}

	for _, contract := range fresh {
		embed := &discordgo.MessageEmbed{
			Title:       "📜 New EVM Contract Deployed!",
			Description: "Address: `" + contract.Address + "`",
			Color:       0xe67e22,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Deployer", Value: "`" + contract.Deployer + "`"},
			},
		}
		if _, err := s.ChannelMessageSendEmbed(channel.ID, embed); err != nil {
			log.Printf("network: announce contract %s: %v", contract.Address, err)
		}
	}
}

// markSeen records the given contracts and returns those seen for the first
// time. Entries without an address are dropped.
func (w *ContractWatcher) markSeen(contracts []Contract) []Contract {
	var fresh []Contract
	for _, contract := range contracts {
		if contract.Address == "" || w.announced[contract.Address] {
			continue
		}
		w.announced[contract.Address] = true
		fresh = append(fresh, contract)
	}
	return fresh
}
