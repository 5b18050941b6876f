package leaderboard

import (
	"errors"
	"fmt"
	"time"

	"github.com/thronos-network/thronos-bot/src/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// XP weights per activity kind.
const (
	MessageXP  = 10
	ReactionXP = 5
	ReferralXP = 50
)

var ErrNoActivity = errors.New("user has no recorded activity")

// Accumulator turns activity events into persistent, monotonically growing
// engagement counters.
type Accumulator struct {
	db *gorm.DB
}

func NewAccumulator(db *gorm.DB) *Accumulator { return &Accumulator{db: db} }

// RecordActivity upserts the user's counters in a single statement so xp and
// the raw counts can never drift apart. An empty username leaves the stored
// name untouched (used when crediting referrals for users we only know by ID).
func (a *Accumulator) RecordActivity(userID, username string, messages, reactions, referrals int64) error {
	now := time.Now()
	xp := messages*MessageXP + reactions*ReactionXP + referrals*ReferralXP

	assignments := map[string]interface{}{
		"message_count":  gorm.Expr("message_count + ?", messages),
		"reaction_count": gorm.Expr("reaction_count + ?", reactions),
		"referral_count": gorm.Expr("referral_count + ?", referrals),
		"xp":             gorm.Expr("xp + ?", xp),
		"last_active":    now,
	}
	if username != "" {
		assignments["username"] = username
	}

	row := types.UserStats{
		UserID:        userID,
		Username:      username,
		MessageCount:  uint64(messages),
		ReactionCount: uint64(reactions),
		ReferralCount: uint64(referrals),
		XP:            uint64(xp),
		LastActive:    now,
	}

	err := a.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(assignments),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("record activity user=%s: %w", userID, err)
	}
	return nil
}

// Leaderboard returns up to limit users ordered by xp descending. Ties break
// on user_id so the ordering is deterministic per query.
func (a *Accumulator) Leaderboard(limit int) ([]types.UserStats, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []types.UserStats
	err := a.db.Order("xp DESC, user_id ASC").Limit(limit).Find(&rows).Error
	return rows, err
}

// Rank returns the user's standing: 1 + the number of users with strictly
// greater xp. Users with no recorded activity yield ErrNoActivity.
func (a *Accumulator) Rank(userID string) (int64, *types.UserStats, error) {
	var stats types.UserStats
	if err := a.db.First(&stats, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil, ErrNoActivity
		}
		return 0, nil, fmt.Errorf("load stats user=%s: %w", userID, err)
	}

	var greater int64
	if err := a.db.Model(&types.UserStats{}).Where("xp > ?", stats.XP).Count(&greater).Error; err != nil {
		return 0, nil, fmt.Errorf("rank user=%s: %w", userID, err)
	}
	return greater + 1, &stats, nil
}
