package governance

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	shareddiscord "github.com/thronos-network/thronos-bot/src/discord"
	"github.com/thronos-network/thronos-bot/src/types"
)

const governanceChannel = "governance"

// Handler wires the governance subsystem to Discord slash commands and the
// persistent vote buttons.
type Handler struct {
	manager  *Manager
	renderer *Renderer
	guildID  string
}

func NewHandler(manager *Manager, renderer *Renderer, guildID string) *Handler {
	return &Handler{manager: manager, renderer: renderer, guildID: guildID}
}

// HandlePropose creates a proposal and posts its voting message in the
// governance channel.
func (h *Handler) HandlePropose(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !shareddiscord.IsAdmin(i) {
		shareddiscord.RespondEphemeral(s, i, "❌ You need administrator permissions to create proposals.")
		return
	}

	opts := shareddiscord.OptionMap(i)
	title := strings.TrimSpace(opts["title"].StringValue())
	description := strings.TrimSpace(opts["description"].StringValue())
	if title == "" || description == "" {
		shareddiscord.RespondEphemeral(s, i, "❌ Title and description are required.")
		return
	}

	channel := shareddiscord.FindTextChannel(s, h.guildID, governanceChannel)
	if channel == nil {
		shareddiscord.RespondEphemeral(s, i, "❌ Governance channel not found.")
		return
	}

	author := i.Member.User
	authorName := i.Member.Nick
	if authorName == "" {
		authorName = author.Username
	}

	proposal, err := h.manager.Create(title, description, author.ID, authorName)
	if err != nil {
		log.Printf("governance: create proposal: %v", err)
		shareddiscord.RespondEphemeral(s, i, "❌ Failed to create proposal. Please try again later.")
		return
	}

	msg, err := s.ChannelMessageSendComplex(channel.ID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{ProposalEmbed(proposal)},
		Components: VoteButtons(proposal.ID),
	})
	if err != nil {
		log.Printf("governance: post proposal %d: %v", proposal.ID, err)
		shareddiscord.RespondEphemeral(s, i, fmt.Sprintf("⚠️ Proposal #%d stored but could not be posted.", proposal.ID))
		return
	}

	if err := h.manager.SetMessageRef(proposal.ID, msg.ID, channel.ID); err != nil {
		log.Printf("governance: link message for proposal %d: %v", proposal.ID, err)
	}

	shareddiscord.RespondEphemeral(s, i, fmt.Sprintf("✅ Proposal #%d created!", proposal.ID))
	log.Printf("governance: %s created proposal #%d: %s", author.Username, proposal.ID, title)
}

// HandleProposals lists all proposals, newest first.
func (h *Handler) HandleProposals(s *discordgo.Session, i *discordgo.InteractionCreate) {
	proposals, err := h.manager.List()
	if err != nil {
		log.Printf("governance: list proposals: %v", err)
		shareddiscord.RespondEphemeral(s, i, "❌ Failed to load proposals.")
		return
	}
	if len(proposals) == 0 {
		shareddiscord.RespondEphemeral(s, i, "No proposals found.")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: "🏛️ All Proposals",
		Color: proposalColor,
	}
	for idx := range proposals {
		if idx >= 10 {
			break
		}
		p := &proposals[idx]
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("#%d: %s", p.ID, p.Title),
			Value:  fmt.Sprintf("%s ✅%d | ❌%d", statusEmoji(p), p.VotesYes, p.VotesNo),
			Inline: true,
		})
	}

	shareddiscord.RespondEmbedEphemeral(s, i, embed)
}

// HandleComponent routes vote button presses. It reports whether the custom
// ID belonged to governance.
func (h *Handler) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	customID := i.MessageComponentData().CustomID
	var choice, rest string
	switch {
	case strings.HasPrefix(customID, voteYesPrefix):
		choice, rest = ChoiceYes, customID[len(voteYesPrefix):]
	case strings.HasPrefix(customID, voteNoPrefix):
		choice, rest = ChoiceNo, customID[len(voteNoPrefix):]
	default:
		return false
	}

	proposalID, err := strconv.ParseUint(rest, 10, 64)
	if err != nil {
		shareddiscord.RespondEphemeral(s, i, "❌ Could not identify proposal.")
		return true
	}

	h.registerVote(s, i, proposalID, choice)
	return true
}

func (h *Handler) registerVote(s *discordgo.Session, i *discordgo.InteractionCreate, proposalID uint64, choice string) {
	if i.Member == nil || i.Member.User == nil {
		shareddiscord.RespondEphemeral(s, i, "❌ Voting is only available inside the server.")
		return
	}
	userID := i.Member.User.ID

	duplicate, err := h.manager.Ledger().RecordVote(proposalID, userID, choice)
	if err != nil {
		if errors.Is(err, ErrProposalNotFound) {
			shareddiscord.RespondEphemeral(s, i, "❌ Proposal not found.")
			return
		}
		log.Printf("governance: record vote proposal=%d user=%s: %v", proposalID, userID, err)
		shareddiscord.RespondEphemeral(s, i, "❌ Vote failed. Please try again later.")
		return
	}
	if duplicate {
		shareddiscord.RespondEphemeral(s, i, "❌ You have already voted.")
		return
	}

	// Refresh the public rendering from the committed tallies. A rendering
	// failure does not undo the vote.
	if p, err := h.manager.Get(proposalID); err == nil {
		h.renderer.Upsert(p)
	} else {
		log.Printf("governance: reload proposal %d after vote: %v", proposalID, err)
	}

	shareddiscord.RespondEphemeral(s, i, "✅ Vote recorded!")
	log.Printf("governance: %s voted %s on proposal #%d", i.Member.User.Username, choice, proposalID)
}

func statusEmoji(p *types.Proposal) string {
	switch {
	case p.VotesYes > p.VotesNo:
		return "🟢"
	case p.VotesNo > p.VotesYes:
		return "🔴"
	default:
		return "⚪"
	}
}
