package leaderboard

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"github.com/thronos-network/thronos-bot/src/types"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// A second connection would see a separate empty in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&types.UserStats{},
		&types.ReferralCode{},
		&types.ReferralRedemption{},
	))
	return db
}

func TestRecordActivityAccumulates(t *testing.T) {
	db := newTestDB(t)
	acc := NewAccumulator(db)

	require.NoError(t, acc.RecordActivity("100", "alice", 1, 0, 0))
	require.NoError(t, acc.RecordActivity("100", "alice", 1, 0, 0))
	require.NoError(t, acc.RecordActivity("100", "alice", 1, 1, 0))

	_, stats, err := acc.Rank("100")
	require.NoError(t, err)
	require.Equal(t, uint64(3), stats.MessageCount)
	require.Equal(t, uint64(1), stats.ReactionCount)
	require.Equal(t, uint64(3*MessageXP+1*ReactionXP), stats.XP)
}

func TestXPMatchesCounters(t *testing.T) {
	db := newTestDB(t)
	acc := NewAccumulator(db)

	require.NoError(t, acc.RecordActivity("100", "alice", 7, 3, 2))

	_, stats, err := acc.Rank("100")
	require.NoError(t, err)
	want := stats.MessageCount*MessageXP + stats.ReactionCount*ReactionXP + stats.ReferralCount*ReferralXP
	require.Equal(t, want, stats.XP)
}

func TestRecordActivityKeepsUsername(t *testing.T) {
	db := newTestDB(t)
	acc := NewAccumulator(db)

	require.NoError(t, acc.RecordActivity("100", "alice", 1, 0, 0))
	require.NoError(t, acc.RecordActivity("100", "", 0, 0, 1))

	_, stats, err := acc.Rank("100")
	require.NoError(t, err)
	require.Equal(t, "alice", stats.Username)
	require.Equal(t, uint64(1), stats.ReferralCount)
}

func TestRankCountsStrictlyGreater(t *testing.T) {
	db := newTestDB(t)
	acc := NewAccumulator(db)

	// U1 and U3 tie at 100 xp, U2 sits at 50.
	require.NoError(t, acc.RecordActivity("U1", "u1", 10, 0, 0))
	require.NoError(t, acc.RecordActivity("U2", "u2", 5, 0, 0))
	require.NoError(t, acc.RecordActivity("U3", "u3", 10, 0, 0))

	rank, _, err := acc.Rank("U1")
	require.NoError(t, err)
	require.Equal(t, int64(1), rank)

	rank, _, err = acc.Rank("U3")
	require.NoError(t, err)
	require.Equal(t, int64(1), rank)

	rank, _, err = acc.Rank("U2")
	require.NoError(t, err)
	require.Equal(t, int64(3), rank)
}

func TestRankNoActivity(t *testing.T) {
	db := newTestDB(t)
	acc := NewAccumulator(db)

	_, _, err := acc.Rank("ghost")
	require.ErrorIs(t, err, ErrNoActivity)
}

func TestLeaderboardOrderAndLimit(t *testing.T) {
	db := newTestDB(t)
	acc := NewAccumulator(db)

	require.NoError(t, acc.RecordActivity("A", "a", 1, 0, 0))
	require.NoError(t, acc.RecordActivity("B", "b", 3, 0, 0))
	require.NoError(t, acc.RecordActivity("C", "c", 2, 0, 0))
	require.NoError(t, acc.RecordActivity("D", "d", 3, 0, 0))

	rows, err := acc.Leaderboard(3)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Ties break on user_id ascending.
	require.Equal(t, "B", rows[0].UserID)
	require.Equal(t, "D", rows[1].UserID)
	require.Equal(t, "C", rows[2].UserID)
}
