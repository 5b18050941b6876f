package bot

import (
	"github.com/bwmarrin/discordgo"
	shareddiscord "github.com/thronos-network/thronos-bot/src/discord"
	"github.com/thronos-network/thronos-bot/src/locales"
)

func (b *Bot) handleHelp(s *discordgo.Session, i *discordgo.InteractionCreate) {
	lang := locales.MemberLang(s, b.config.GuildID, i.Member)

	embed := &discordgo.MessageEmbed{
		Title:       locales.Text("help_title", lang),
		Description: locales.Text("help_description", lang),
		Color:       0x3498db,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  "Commands",
				Value: locales.Text("help_commands", lang),
			},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: locales.Text("help_footer", lang),
		},
	}

	shareddiscord.RespondEmbedEphemeral(s, i, embed)
}
