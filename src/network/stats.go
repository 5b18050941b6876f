package network

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"
	shareddiscord "github.com/thronos-network/thronos-bot/src/discord"
)

const statsChannel = "network-stats"

// StatsPublisher keeps a live statistics embed pinned to the network-stats
// channel, editing the previous bot message instead of reposting.
type StatsPublisher struct {
	client  *Client
	guildID string
}

func NewStatsPublisher(client *Client, guildID string) *StatsPublisher {
	return &StatsPublisher{client: client, guildID: guildID}
}

// BuildEmbed assembles the stats embed from the chain API. Endpoints beyond
// network_stats are optional; their fields are simply omitted on failure.
func (p *StatsPublisher) BuildEmbed(ctx context.Context) (*discordgo.MessageEmbed, error) {
	stats, err := p.client.NetworkStats(ctx)
	if err != nil {
		return nil, err
	}

	health, err := p.client.Health(ctx)
	if err != nil {
		log.Printf("network: fetch health: %v", err)
		health = nil
	}

	color := 0xff0000
	if health != nil && health.OK {
		color = 0x00ff00
	}

	now := time.Now().UTC().Format(time.RFC3339)
	embed := &discordgo.MessageEmbed{
		Title:       "📊 Live Network Statistics",
		Description: "Real-time data from Thronos Network",
		Color:       color,
		Timestamp:   now,
		Footer:      &discordgo.MessageEmbedFooter{Text: "Updates every 5 minutes"},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "🔢 Transaction Count", Value: fmt.Sprintf("`%d` transactions", stats.TxCount), Inline: true},
			{Name: "📦 Block Height", Value: fmt.Sprintf("`%d` blocks", stats.BlockCount), Inline: true},
		},
	}

	if prices, err := p.client.TokenPrices(ctx); err == nil && prices.ThrUSDRate > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "💰 THR Price", Value: fmt.Sprintf("`$%.6f` USD", prices.ThrUSDRate), Inline: true,
		})
	} else if err != nil {
		log.Printf("network: fetch prices: %v", err)
	}

	if dash, err := p.client.Dashboard(ctx); err == nil {
		embed.Fields = append(embed.Fields,
			&discordgo.MessageEmbedField{Name: "⚡ TPS", Value: fmt.Sprintf("`%.4f`", dash.TPS), Inline: true},
			&discordgo.MessageEmbedField{Name: "🪙 Total Tokens", Value: fmt.Sprintf("`%d`", dash.TokenCount), Inline: true},
			&discordgo.MessageEmbedField{Name: "💧 Liquidity Pools", Value: fmt.Sprintf("`%d`", dash.PoolCount), Inline: true},
		)
	} else {
		log.Printf("network: fetch dashboard: %v", err)
	}

	embed.Fields = append(embed.Fields,
		&discordgo.MessageEmbedField{Name: "📊 Total Supply", Value: fmt.Sprintf("`%.0f` THR", stats.TotalSupply), Inline: true},
		&discordgo.MessageEmbedField{Name: "🔥 Burned", Value: fmt.Sprintf("`%.0f` THR", stats.Burned), Inline: true},
	)

	if health != nil {
		statusEmoji := "🔴"
		if health.OK {
			statusEmoji = "🟢"
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "🏥 Network Health", Value: fmt.Sprintf("%s `%s`", statusEmoji, health.Version), Inline: true,
		})
	}

	return embed, nil
}

// Refresh updates the stats message in the network-stats channel.
func (p *StatsPublisher) Refresh(ctx context.Context, s *discordgo.Session) {
	channel := shareddiscord.FindTextChannel(s, p.guildID, statsChannel)
	if channel == nil {
		return
	}

	embed, err := p.BuildEmbed(ctx)
	if err != nil {
		log.Printf("network: build stats embed: %v", err)
		return
	}

	messages, err := s.ChannelMessages(channel.ID, 5, "", "", "")
	if err != nil {
		log.Printf("network: list messages in %s: %v", channel.ID, err)
		return
	}

	for _, msg := range messages {
		if msg.Author != nil && msg.Author.ID == s.State.User.ID && len(msg.Embeds) > 0 {
			if _, err := s.ChannelMessageEditEmbed(channel.ID, msg.ID, embed); err != nil {
				log.Printf("network: edit stats message: %v", err)
			}
			return
		}
	}

	if _, err := s.ChannelMessageSendEmbed(channel.ID, embed); err != nil {
		log.Printf("network: post stats message: %v", err)
	}
}

// HandleStats serves the /stats command.
func (p *StatsPublisher) HandleStats(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := shareddiscord.DeferEphemeral(s, i); err != nil {
		log.Printf("network: defer stats interaction: %v", err)
		return
	}

	embed, err := p.BuildEmbed(context.Background())
	if err != nil {
		log.Printf("network: build stats embed: %v", err)
		shareddiscord.EditResponse(s, i, "❌ Failed to fetch network statistics. API might be down.")
		return
	}

	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	}); err != nil {
		log.Printf("network: send stats embed: %v", err)
	}
}
