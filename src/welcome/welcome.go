package welcome

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
	shareddiscord "github.com/thronos-network/thronos-bot/src/discord"
	"github.com/thronos-network/thronos-bot/src/locales"
)

const generalChannel = "general"

// Handler greets new members by DM and in the general channel.
type Handler struct {
	guildID string
}

func NewHandler(guildID string) *Handler { return &Handler{guildID: guildID} }

func (h *Handler) HandleMemberJoin(s *discordgo.Session, g *discordgo.GuildMemberAdd) {
	if g.User == nil || g.User.Bot {
		return
	}

	// The member has no language role yet, so greet in the default locale.
	embed := &discordgo.MessageEmbed{
		Title: "🎉 " + locales.Text("welcome", locales.DefaultLocale),
		Description: "Welcome! Please select your preferred language:\n\n" +
			"🇬🇧 **English** - Pick the English role\n" +
			"🇬🇷 **Ελληνικά** - Επιλέξτε τον ρόλο Ελληνικά\n" +
			"🇪🇸 **Español** - Elige el rol Español\n" +
			"🇷🇺 **Русский** - Выберите роль Русский\n" +
			"🇯🇵 **日本語** - 日本語ロールを選択\n\n" +
			"Then say hello in #general to start earning XP!",
		Color: 0x00ff00,
	}

	if dm, err := s.UserChannelCreate(g.User.ID); err == nil {
		if _, err := s.ChannelMessageSendEmbed(dm.ID, embed); err != nil {
			log.Printf("welcome: DM %s: %v", g.User.Username, err)
		}
	} else {
		log.Printf("welcome: open DM with %s: %v", g.User.Username, err)
	}

	channel := shareddiscord.FindTextChannel(s, h.guildID, generalChannel)
	if channel == nil {
		return
	}
	_, err := s.ChannelMessageSend(channel.ID, fmt.Sprintf(
		"👋 Welcome %s to **Thronos Network**! Pick a language role and join the conversation.",
		g.User.Mention()))
	if err != nil {
		log.Printf("welcome: post greeting for %s: %v", g.User.Username, err)
	}
}
