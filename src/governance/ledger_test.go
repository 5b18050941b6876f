package governance

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
		&types.Proposal{},
		&types.Vote{},
	))
	return db
}

func TestRecordVoteCountsOncePerUser(t *testing.T) {
	db := newTestDB(t)
	manager := NewManager(db)

	p, err := manager.Create("Upgrade Fee Model", "Reduce base fee by 20%", "100", "alice")
	require.NoError(t, err)

	ledger := manager.Ledger()

	dup, err := ledger.RecordVote(p.ID, "200", ChoiceYes)
	require.NoError(t, err)
	require.False(t, dup)

	// Same user pressing the button again must not move the tally.
	dup, err = ledger.RecordVote(p.ID, "200", ChoiceYes)
	require.NoError(t, err)
	require.True(t, dup)

	// Switching sides does not help either.
	dup, err = ledger.RecordVote(p.ID, "200", ChoiceNo)
	require.NoError(t, err)
	require.True(t, dup)

	dup, err = ledger.RecordVote(p.ID, "300", ChoiceNo)
	require.NoError(t, err)
	require.False(t, dup)

	yes, no, err := ledger.Tally(p.ID)
	require.NoError(t, err)
	require.Equal(t, uint64(1), yes)
	require.Equal(t, uint64(1), no)

	stored, err := manager.Get(p.ID)
	require.NoError(t, err)
	require.Equal(t, uint64(1), stored.VotesYes)
	require.Equal(t, uint64(1), stored.VotesNo)
}

func TestRecordVoteRejectsBadChoice(t *testing.T) {
	db := newTestDB(t)
	manager := NewManager(db)

	p, err := manager.Create("Treasury Top-up", "", "100", "alice")
	require.NoError(t, err)

	_, err = manager.Ledger().RecordVote(p.ID, "200", "abstain")
	require.Error(t, err)

	yes, no, err := manager.Ledger().Tally(p.ID)
	require.NoError(t, err)
	require.Zero(t, yes)
	require.Zero(t, no)
}

func TestRecordVoteUnknownProposal(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedger(db)

	_, err := ledger.RecordVote(9999, "200", ChoiceYes)
	require.ErrorIs(t, err, ErrProposalNotFound)

	// The rolled-back transaction must not leave a vote row behind.
	voted, err := ledger.HasVoted(9999, "200")
	require.NoError(t, err)
	require.False(t, voted)
}

func TestDuplicateVoteLeavesTallyUntouched(t *testing.T) {
	db := newTestDB(t)
	manager := NewManager(db)

	p, err := manager.Create("Upgrade Fee Model", "", "100", "alice")
	require.NoError(t, err)
	ledger := manager.Ledger()

	for i := 0; i < 5; i++ {
		_, err := ledger.RecordVote(p.ID, "200", ChoiceYes)
		require.NoError(t, err)
	}

	stored, err := manager.Get(p.ID)
	require.NoError(t, err)
	require.Equal(t, uint64(1), stored.VotesYes)

	yes, _, err := ledger.Tally(p.ID)
	require.NoError(t, err)
	require.Equal(t, yes, stored.VotesYes)
}

func TestHasVoted(t *testing.T) {
	db := newTestDB(t)
	manager := NewManager(db)

	p, err := manager.Create("Listing Vote", "", "100", "alice")
	require.NoError(t, err)
	ledger := manager.Ledger()

	voted, err := ledger.HasVoted(p.ID, "200")
	require.NoError(t, err)
	require.False(t, voted)

	_, err = ledger.RecordVote(p.ID, "200", ChoiceNo)
	require.NoError(t, err)

	voted, err = ledger.HasVoted(p.ID, "200")
	require.NoError(t, err)
	require.True(t, voted)
}
