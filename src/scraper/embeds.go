package scraper

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"
)

const embedFieldLimit = 1024

// RoadmapEmbed builds the roadmap channel embed from the live page. When the
// page cannot be fetched or parsed, a link-only fallback is returned.
func (sc *Scraper) RoadmapEmbed(ctx context.Context) *discordgo.MessageEmbed {
	url := sc.siteURL + "/roadmap"
	embed := &discordgo.MessageEmbed{
		Title:       "🗺️ Official Roadmap / Χάρτης / Mapa",
		Description: fmt.Sprintf("**Live Sync Source**: [Thronos Network](%s)\nUpdates from the dev team.", url),
		Color:       0x2ecc71,
	}

	doc, err := sc.Fetch(ctx, "/roadmap")
	if err != nil {
		log.Printf("scraper: roadmap: %v", err)
		return embed
	}

	items := sc.RoadmapItems(doc)
	var completed, inProgress []string
	for _, item := range items {
		if strings.Contains(item, "✅") {
			completed = append(completed, item)
		} else if strings.Contains(item, "⏳") {
			inProgress = append(inProgress, item)
		}
	}

	for idx, chunk := range chunkStrings(completed, 8) {
		name := "✅ Completed / Ολοκληρωμένα"
		if idx > 0 {
			name = "✅ Completed (cont.)"
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  name,
			Value: truncate(strings.Join(chunk, "\n"), embedFieldLimit),
		})
	}
	if len(inProgress) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "⏳ In Progress / Σε εξέλιξη",
			Value: truncate(strings.Join(inProgress, "\n"), embedFieldLimit),
		})
	}

	return embed
}

// WhitepaperEmbed builds the whitepaper channel embed from the live page.
func (sc *Scraper) WhitepaperEmbed(ctx context.Context) *discordgo.MessageEmbed {
	url := sc.siteURL + "/whitepaper"
	embed := &discordgo.MessageEmbed{
		Title: "📜 Thronos Whitepaper / Λευκή Βίβλος",
		URL:   url,
		Color: 0xecf0f1,
	}

	doc, err := sc.Fetch(ctx, "/whitepaper")
	if err != nil {
		log.Printf("scraper: whitepaper: %v", err)
		embed.Description = "Could not load the whitepaper page. Please view the website."
		return embed
	}

	sections := sc.WhitepaperSections(doc)
	if len(sections) == 0 {
		embed.Description = "Could not parse structure automatically. Please view the PDF or Website."
		return embed
	}

	embed.Description = fmt.Sprintf("**Executive Summary**\nRead full doc at [thronos.network](%s)", url)
	for _, section := range sections {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "🔹 " + section.Title,
			Value: truncate(section.Body, embedFieldLimit),
		})
	}
	return embed
}

func chunkStrings(items []string, size int) [][]string {
	var chunks [][]string
	for len(items) > size {
		chunks = append(chunks, items[:size])
		items = items[size:]
	}
	if len(items) > 0 {
		chunks = append(chunks, items)
	}
	return chunks
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit-3] + "..."
}
