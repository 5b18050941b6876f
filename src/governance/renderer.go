package governance

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
	"github.com/thronos-network/thronos-bot/src/types"
)

const proposalColor = 0x9b59b6

// Button custom IDs carry the proposal ID so the buttons keep working across
// process restarts.
const (
	voteYesPrefix = "vote_yes:"
	voteNoPrefix  = "vote_no:"
)

// Renderer keeps a proposal's posted Discord message in sync with its stored
// tallies.
type Renderer struct {
	session *discordgo.Session
}

func NewRenderer(session *discordgo.Session) *Renderer {
	return &Renderer{session: session}
}

// ProposalEmbed builds the public representation of a proposal.
func ProposalEmbed(p *types.Proposal) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🏛️ Proposal #%d: %s", p.ID, p.Title),
		Description: p.Description,
		Color:       proposalColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "✅ For", Value: fmt.Sprintf("%d votes", p.VotesYes), Inline: true},
			{Name: "❌ Against", Value: fmt.Sprintf("%d votes", p.VotesNo), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Proposed by %s", p.AuthorName),
		},
	}
}

// VoteButtons returns the persistent yes/no button row for a proposal.
func VoteButtons(proposalID uint64) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Vote For",
					Style:    discordgo.SuccessButton,
					Emoji:    &discordgo.ComponentEmoji{Name: "✅"},
					CustomID: fmt.Sprintf("%s%d", voteYesPrefix, proposalID),
				},
				discordgo.Button{
					Label:    "Vote Against",
					Style:    discordgo.DangerButton,
					Emoji:    &discordgo.ComponentEmoji{Name: "❌"},
					CustomID: fmt.Sprintf("%s%d", voteNoPrefix, proposalID),
				},
			},
		},
	}
}

// Upsert refreshes the posted proposal message from current tallies. A stale
// or deleted message reference is logged and skipped; the ledger write that
// triggered the refresh already committed.
func (r *Renderer) Upsert(p *types.Proposal) {
	if p.MessageID == "" || p.ChannelID == "" {
		return
	}

	embed := ProposalEmbed(p)
	components := VoteButtons(p.ID)
	_, err := r.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		ID:         p.MessageID,
		Channel:    p.ChannelID,
		Embeds:     &[]*discordgo.MessageEmbed{embed},
		Components: &components,
	})
	if err != nil {
		log.Printf("governance: update rendering for proposal %d: %v", p.ID, err)
	}
}
