package announce

import (
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"
	shareddiscord "github.com/thronos-network/thronos-bot/src/discord"
)

const announcementsChannel = "announcements"

// Handler posts admin announcements to the announcements channel.
type Handler struct {
	guildID string
}

func NewHandler(guildID string) *Handler { return &Handler{guildID: guildID} }

func (h *Handler) HandleAnnounce(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !shareddiscord.IsAdmin(i) {
		shareddiscord.RespondEphemeral(s, i, "❌ You need administrator permissions to post announcements.")
		return
	}

	message := shareddiscord.OptionMap(i)["message"].StringValue()
	channel := shareddiscord.FindTextChannel(s, h.guildID, announcementsChannel)
	if channel == nil {
		shareddiscord.RespondEphemeral(s, i, "❌ Announcements channel not found.")
		return
	}

	authorName := i.Member.Nick
	if authorName == "" {
		authorName = i.Member.User.Username
	}

	embed := &discordgo.MessageEmbed{
		Title:       "📢 Official Announcement",
		Description: message,
		Color:       0xf39c12,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Footer:      &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Posted by %s", authorName)},
	}
	if _, err := s.ChannelMessageSendEmbed(channel.ID, embed); err != nil {
		log.Printf("announce: post announcement: %v", err)
		shareddiscord.RespondEphemeral(s, i, "❌ Failed to post the announcement.")
		return
	}

	shareddiscord.RespondEphemeral(s, i, "✅ Announcement posted!")
	log.Printf("announce: %s posted announcement: %.50s", i.Member.User.Username, message)
}
