package info

import (
	"github.com/bwmarrin/discordgo"
	shareddiscord "github.com/thronos-network/thronos-bot/src/discord"
	"github.com/thronos-network/thronos-bot/src/locales"
)

// Handler serves the localized roadmap/whitepaper/website link commands.
type Handler struct {
	guildID string
	siteURL string
}

func NewHandler(guildID, siteURL string) *Handler {
	return &Handler{guildID: guildID, siteURL: siteURL}
}

func (h *Handler) HandleRoadmap(s *discordgo.Session, i *discordgo.InteractionCreate) {
	h.respondLink(s, i, "roadmap_desc", "/roadmap")
}

func (h *Handler) HandleWhitepaper(s *discordgo.Session, i *discordgo.InteractionCreate) {
	h.respondLink(s, i, "whitepaper_desc", "/whitepaper")
}

func (h *Handler) HandleWebsite(s *discordgo.Session, i *discordgo.InteractionCreate) {
	h.respondLink(s, i, "website_desc", "")
}

func (h *Handler) respondLink(s *discordgo.Session, i *discordgo.InteractionCreate, key, path string) {
	lang := locales.MemberLang(s, h.guildID, i.Member)
	shareddiscord.RespondEphemeral(s, i, locales.Text(key, lang)+"\n"+h.siteURL+path)
}
