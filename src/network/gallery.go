package network

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"
	shareddiscord "github.com/thronos-network/thronos-bot/src/discord"
)

const galleryColor = 0x9b59b6

// Gallery serves the token listing commands from the chain's registry.
type Gallery struct {
	client *Client
}

func NewGallery(client *Client) *Gallery { return &Gallery{client: client} }

// HandleTokens shows up to twelve registered tokens with their stats.
func (g *Gallery) HandleTokens(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := shareddiscord.DeferEphemeral(s, i); err != nil {
		log.Printf("network: defer tokens interaction: %v", err)
		return
	}
	ctx := context.Background()

	tokens, err := g.client.TokenList(ctx)
	if err != nil {
		log.Printf("network: fetch token list: %v", err)
		shareddiscord.EditResponse(s, i, "❌ Failed to fetch tokens.")
		return
	}
	stats := g.tokenStats(ctx)

	embed := &discordgo.MessageEmbed{
		Title:       "🪙 Thronos Token Gallery",
		Description: fmt.Sprintf("Total tokens: **%d**", len(tokens)),
		Color:       galleryColor,
	}
	for idx, token := range tokens {
		if idx >= 12 {
			embed.Footer = &discordgo.MessageEmbedFooter{
				Text: fmt.Sprintf("Showing 12 of %d tokens", len(tokens)),
			}
			break
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "🪙 " + token.Symbol,
			Value: fmt.Sprintf("**%s**\nSupply: `%s`\nHolders: `%s`",
				token.Name, supplyOf(stats, token.Symbol), holdersOf(stats, token.Symbol)),
			Inline: true,
		})
	}

	g.editEmbed(s, i, embed)
}

// HandleToken shows the details of one token looked up by symbol.
func (g *Gallery) HandleToken(s *discordgo.Session, i *discordgo.InteractionCreate) {
	symbol := strings.TrimSpace(shareddiscord.OptionMap(i)["symbol"].StringValue())

	if err := shareddiscord.DeferEphemeral(s, i); err != nil {
		log.Printf("network: defer token interaction: %v", err)
		return
	}
	ctx := context.Background()

	tokens, err := g.client.TokenList(ctx)
	if err != nil {
		log.Printf("network: fetch token list: %v", err)
		shareddiscord.EditResponse(s, i, "❌ Failed to fetch tokens.")
		return
	}

	var token *Token
	for idx := range tokens {
		if strings.EqualFold(tokens[idx].Symbol, symbol) {
			token = &tokens[idx]
			break
		}
	}
	if token == nil {
		shareddiscord.EditResponse(s, i, fmt.Sprintf("❌ Token `%s` not found.", symbol))
		return
	}
	stats := g.tokenStats(ctx)

	embed := &discordgo.MessageEmbed{
		Title:       "🪙 " + token.Symbol,
		Description: token.Name,
		Color:       galleryColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Total Supply", Value: "`" + supplyOf(stats, token.Symbol) + "`", Inline: true},
			{Name: "Holders", Value: "`" + holdersOf(stats, token.Symbol) + "`", Inline: true},
			{Name: "Decimals", Value: fmt.Sprintf("`%d`", token.Decimals), Inline: true},
		},
	}
	if token.Logo != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: token.Logo}
	}

	g.editEmbed(s, i, embed)
}

// tokenStats loads the stats map, degrading to empty on failure.
func (g *Gallery) tokenStats(ctx context.Context) map[string]TokenStats {
	stats, err := g.client.TokenStatsBySymbol(ctx)
	if err != nil {
		log.Printf("network: fetch token stats: %v", err)
		return nil
	}
	return stats
}

func (g *Gallery) editEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	}); err != nil {
		log.Printf("network: send gallery embed: %v", err)
	}
}

func supplyOf(stats map[string]TokenStats, symbol string) string {
	if s, ok := stats[symbol]; ok && s.TotalSupply != "" {
		return s.TotalSupply
	}
	return "N/A"
}

func holdersOf(stats map[string]TokenStats, symbol string) string {
	if s, ok := stats[symbol]; ok {
		return fmt.Sprintf("%d", s.HoldersCount)
	}
	return "N/A"
}
