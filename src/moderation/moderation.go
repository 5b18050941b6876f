package moderation

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	shareddiscord "github.com/thronos-network/thronos-bot/src/discord"
)

var defaultSpamKeywords = []string{"spam", "scam", "free money", "click here", "http://bit.ly"}

// Handler provides the admin moderation commands and the spam auto-filter.
type Handler struct {
	spamKeywords []string
}

func NewHandler() *Handler {
	return &Handler{spamKeywords: defaultSpamKeywords}
}

// HandlePurge deletes the last N messages in the channel.
func (h *Handler) HandlePurge(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !shareddiscord.IsAdmin(i) {
		shareddiscord.RespondEphemeral(s, i, "❌ You need manage messages permissions to use this.")
		return
	}

	amount := shareddiscord.OptionMap(i)["amount"].IntValue()
	if amount < 1 || amount > 100 {
		shareddiscord.RespondEphemeral(s, i, "❌ Please specify a number between 1 and 100.")
		return
	}

	if err := shareddiscord.DeferEphemeral(s, i); err != nil {
		log.Printf("moderation: defer purge: %v", err)
		return
	}

	messages, err := s.ChannelMessages(i.ChannelID, int(amount), "", "", "")
	if err != nil {
		log.Printf("moderation: list messages in %s: %v", i.ChannelID, err)
		shareddiscord.EditResponse(s, i, "❌ Failed to load messages.")
		return
	}

	ids := make([]string, 0, len(messages))
	for _, msg := range messages {
		ids = append(ids, msg.ID)
	}
	if err := s.ChannelMessagesBulkDelete(i.ChannelID, ids); err != nil {
		log.Printf("moderation: bulk delete in %s: %v", i.ChannelID, err)
		shareddiscord.EditResponse(s, i, "❌ Failed to delete messages.")
		return
	}

	shareddiscord.EditResponse(s, i, fmt.Sprintf("✅ Deleted %d messages.", len(ids)))
	log.Printf("moderation: %s purged %d messages in %s", i.Member.User.Username, len(ids), i.ChannelID)
}

// HandleSlowmode sets the channel's per-user message delay.
func (h *Handler) HandleSlowmode(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !shareddiscord.IsAdmin(i) {
		shareddiscord.RespondEphemeral(s, i, "❌ You need manage channels permissions to use this.")
		return
	}

	seconds := int(shareddiscord.OptionMap(i)["seconds"].IntValue())
	if seconds < 0 || seconds > 21600 {
		shareddiscord.RespondEphemeral(s, i, "❌ Slowmode must be between 0 and 21600 seconds.")
		return
	}

	_, err := s.ChannelEditComplex(i.ChannelID, &discordgo.ChannelEdit{RateLimitPerUser: &seconds})
	if err != nil {
		log.Printf("moderation: set slowmode in %s: %v", i.ChannelID, err)
		shareddiscord.RespondEphemeral(s, i, "❌ Failed to update slowmode.")
		return
	}

	if seconds == 0 {
		shareddiscord.RespondEphemeral(s, i, "✅ Slowmode disabled.")
	} else {
		shareddiscord.RespondEphemeral(s, i, fmt.Sprintf("✅ Slowmode set to %d seconds.", seconds))
	}
	log.Printf("moderation: %s set slowmode to %ds in %s", i.Member.User.Username, seconds, i.ChannelID)
}

// HandleMessage deletes messages containing spam keywords.
func (h *Handler) HandleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	content := strings.ToLower(m.Content)
	for _, keyword := range h.spamKeywords {
		if !strings.Contains(content, keyword) {
			continue
		}

		if err := s.ChannelMessageDelete(m.ChannelID, m.ID); err != nil {
			log.Printf("moderation: delete spam from %s: %v", m.Author.Username, err)
			return
		}
		log.Printf("moderation: deleted spam message from %s: %.50s", m.Author.Username, m.Content)

		notice, err := s.ChannelMessageSend(m.ChannelID, fmt.Sprintf(
			"%s, your message was removed for containing spam keywords.", m.Author.Mention()))
		if err == nil {
			time.AfterFunc(10*time.Second, func() {
				if err := s.ChannelMessageDelete(m.ChannelID, notice.ID); err != nil {
					log.Printf("moderation: clean up notice: %v", err)
				}
			})
		}
		return
	}
}
