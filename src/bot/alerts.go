package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	shareddiscord "github.com/thronos-network/thronos-bot/src/discord"
	"github.com/thronos-network/thronos-bot/src/webserver"
)

const (
	tradingChannel  = "autonomous-trading"
	tradingCategory = "🛠️ Ecosystem"
	alertColor      = 0xf1c40f
)

// PostTradeAlert publishes a webhook trade alert into the trading channel,
// creating the channel on first use.
func (b *Bot) PostTradeAlert(alert webserver.TradeAlert) error {
	channel, err := b.tradingChannel()
	if err != nil {
		return err
	}

	description := ""
	if alert.TxHash != "" {
		description = fmt.Sprintf("[View transaction](%s/tx/%s)", b.config.ThronosSiteURL, alert.TxHash)
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🤖 Autonomous Trade Executed",
		Description: description,
		Color:       alertColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Action", Value: strings.ToUpper(alert.TradeType), Inline: true},
		},
		Footer:    &discordgo.MessageEmbedFooter{Text: "Pytheia AI Network Layer"},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if alert.Amount != "" {
		value := alert.Amount
		if alert.Token != "" {
			value += " " + alert.Token
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Amount", Value: value, Inline: true,
		})
	}
	if alert.ProfitEstimate != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Expected Profit", Value: alert.ProfitEstimate, Inline: true,
		})
	}

	_, err = b.session.ChannelMessageSendEmbed(channel.ID, embed)
	return err
}

func (b *Bot) tradingChannel() (*discordgo.Channel, error) {
	if ch := shareddiscord.FindTextChannel(b.session, b.config.GuildID, tradingChannel); ch != nil {
		return ch, nil
	}

	create := discordgo.GuildChannelCreateData{
		Name:  tradingChannel,
		Type:  discordgo.ChannelTypeGuildText,
		Topic: "Live alerts from the Pytheia autonomous trading agent",
	}
	if parent := b.findCategory(tradingCategory); parent != "" {
		create.ParentID = parent
	}

	ch, err := b.session.GuildChannelCreateComplex(b.config.GuildID, create)
	if err != nil {
		return nil, fmt.Errorf("create %s channel: %w", tradingChannel, err)
	}
	return ch, nil
}

func (b *Bot) findCategory(name string) string {
	channels, err := b.session.GuildChannels(b.config.GuildID)
	if err != nil {
		return ""
	}
	for _, ch := range channels {
		if ch.Type == discordgo.ChannelTypeGuildCategory && ch.Name == name {
			return ch.ID
		}
	}
	return ""
}
