package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/redis/go-redis/v9"
	"github.com/thronos-network/thronos-bot/src/data"
	shareddiscord "github.com/thronos-network/thronos-bot/src/discord"
	"github.com/thronos-network/thronos-bot/src/types"
)

const (
	leaderboardCacheKey = "leaderboard:top10"
	leaderboardCacheTTL = 60 * time.Second
	redeemCooldown      = 30 * time.Second
)

// Handler feeds Discord activity into the accumulator and serves the
// leaderboard commands.
type Handler struct {
	acc       *Accumulator
	referrals *Referrals
	rdb       *redis.Client
	limiter   *RateLimiter
}

func NewHandler(acc *Accumulator, referrals *Referrals, rdb *redis.Client) *Handler {
	return &Handler{
		acc:       acc,
		referrals: referrals,
		rdb:       rdb,
		limiter:   NewRateLimiter(redeemCooldown),
	}
}

// HandleMessage credits one message to the author.
func (h *Handler) HandleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if err := h.acc.RecordActivity(m.Author.ID, m.Author.Username, 1, 0, 0); err != nil {
		log.Printf("leaderboard: message activity user=%s: %v", m.Author.ID, err)
	}
}

// HandleReactionAdd credits one reaction to the reacting user. Events that
// carry no member payload are dropped rather than risk crediting a bot.
func (h *Handler) HandleReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	if r.Member == nil || r.Member.User == nil || r.Member.User.Bot {
		return
	}
	if err := h.acc.RecordActivity(r.UserID, r.Member.User.Username, 0, 1, 0); err != nil {
		log.Printf("leaderboard: reaction activity user=%s: %v", r.UserID, err)
	}
}

// HandleLeaderboard shows the top community members.
func (h *Handler) HandleLeaderboard(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	var top []types.UserStats
	if !data.CachedJSON(ctx, h.rdb, leaderboardCacheKey, &top) {
		var err error
		top, err = h.acc.Leaderboard(10)
		if err != nil {
			log.Printf("leaderboard: load top users: %v", err)
			shareddiscord.RespondEphemeral(s, i, "❌ Failed to load leaderboard.")
			return
		}
		data.CacheJSON(ctx, h.rdb, leaderboardCacheKey, top, leaderboardCacheTTL)
	}

	if len(top) == 0 {
		shareddiscord.RespondEphemeral(s, i, "No leaderboard data yet. Start chatting to earn XP!")
		return
	}

	medals := []string{"🥇", "🥈", "🥉"}
	var b strings.Builder
	for idx, user := range top {
		medal := "🏅"
		if idx < len(medals) {
			medal = medals[idx]
		}
		fmt.Fprintf(&b, "%s **%s**\n", medal, user.Username)
		fmt.Fprintf(&b, "   XP: `%d` | 💬 %d | 👍 %d\n", user.XP, user.MessageCount, user.ReactionCount)
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🏆 Community Leaderboard",
		Description: b.String(),
		Color:       0xf1c40f,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("XP: Messages=%d, Reactions=%d, Referrals=%d", MessageXP, ReactionXP, ReferralXP),
		},
	}
	shareddiscord.RespondEmbed(s, i, embed)
}

// HandleRank shows the invoker's rank and counters.
func (h *Handler) HandleRank(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Member == nil || i.Member.User == nil {
		shareddiscord.RespondEphemeral(s, i, "❌ This command is only available inside the server.")
		return
	}

	rank, stats, err := h.acc.Rank(i.Member.User.ID)
	if err != nil {
		if errors.Is(err, ErrNoActivity) {
			shareddiscord.RespondEphemeral(s, i, "You haven't earned any XP yet. Start chatting!")
			return
		}
		log.Printf("leaderboard: rank user=%s: %v", i.Member.User.ID, err)
		shareddiscord.RespondEphemeral(s, i, "❌ Failed to load your stats.")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: "📊 Your Stats",
		Color: 0x3498db,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "🏆 Rank", Value: fmt.Sprintf("#%d", rank), Inline: true},
			{Name: "⭐ XP", Value: fmt.Sprintf("%d", stats.XP), Inline: true},
			{Name: "💬 Messages", Value: fmt.Sprintf("%d", stats.MessageCount), Inline: true},
			{Name: "👍 Reactions", Value: fmt.Sprintf("%d", stats.ReactionCount), Inline: true},
			{Name: "👥 Referrals", Value: fmt.Sprintf("%d", stats.ReferralCount), Inline: true},
		},
	}
	shareddiscord.RespondEmbedEphemeral(s, i, embed)
}

// HandleReferral hands the invoker their personal referral code.
func (h *Handler) HandleReferral(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Member == nil || i.Member.User == nil {
		shareddiscord.RespondEphemeral(s, i, "❌ This command is only available inside the server.")
		return
	}

	code, err := h.referrals.Issue(i.Member.User.ID)
	if err != nil {
		log.Printf("leaderboard: issue referral user=%s: %v", i.Member.User.ID, err)
		shareddiscord.RespondEphemeral(s, i, "❌ Failed to create your referral code.")
		return
	}
	shareddiscord.RespondEphemeral(s, i,
		fmt.Sprintf("🎟️ Your referral code: `%s`\nEach new member who redeems it earns you %d XP.", code, ReferralXP))
}

// HandleRedeem credits the code's issuer with a referral.
func (h *Handler) HandleRedeem(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Member == nil || i.Member.User == nil {
		shareddiscord.RespondEphemeral(s, i, "❌ This command is only available inside the server.")
		return
	}
	userID := i.Member.User.ID

	if ok, wait := h.limiter.Try(userID); !ok {
		shareddiscord.RespondEphemeral(s, i,
			fmt.Sprintf("⏳ Please wait %s before trying another code.", wait.Round(time.Second)))
		return
	}

	code := shareddiscord.OptionMap(i)["code"].StringValue()
	err := h.referrals.Redeem(code, userID)
	switch {
	case errors.Is(err, ErrCodeNotFound):
		shareddiscord.RespondEphemeral(s, i, "❌ That referral code does not exist.")
	case errors.Is(err, ErrSelfReferral):
		shareddiscord.RespondEphemeral(s, i, "❌ You cannot redeem your own code.")
	case errors.Is(err, ErrAlreadyRedeemed):
		shareddiscord.RespondEphemeral(s, i, "❌ You have already redeemed a referral code.")
	case err != nil:
		log.Printf("leaderboard: redeem code=%s user=%s: %v", code, userID, err)
		shareddiscord.RespondEphemeral(s, i, "❌ Failed to redeem the code. Please try again later.")
	default:
		shareddiscord.RespondEphemeral(s, i, "✅ Referral redeemed. Thanks for joining through a community member!")
	}
}
