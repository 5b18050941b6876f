package governance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/thronos-network/thronos-bot/src/types"
)

func TestCreateAndGetProposal(t *testing.T) {
	db := newTestDB(t)
	manager := NewManager(db)

	p, err := manager.Create("Upgrade Fee Model", "Reduce base fee by 20%", "100", "alice")
	require.NoError(t, err)
	require.NotZero(t, p.ID)
	require.Zero(t, p.VotesYes)
	require.Zero(t, p.VotesNo)

	stored, err := manager.Get(p.ID)
	require.NoError(t, err)
	require.Equal(t, "Upgrade Fee Model", stored.Title)
	require.Equal(t, "alice", stored.AuthorName)
}

func TestGetMissingProposal(t *testing.T) {
	db := newTestDB(t)
	manager := NewManager(db)

	_, err := manager.Get(42)
	require.ErrorIs(t, err, ErrProposalNotFound)
}

func TestListNewestFirst(t *testing.T) {
	db := newTestDB(t)
	manager := NewManager(db)

	base := time.Now().Add(-time.Hour)
	for i, title := range []string{"first", "second", "third"} {
		p := types.Proposal{
			Title:     title,
			AuthorID:  "100",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(&p).Error)
	}

	proposals, err := manager.List()
	require.NoError(t, err)
	require.Len(t, proposals, 3)
	require.Equal(t, "third", proposals[0].Title)
	require.Equal(t, "first", proposals[2].Title)
}

func TestSetMessageRef(t *testing.T) {
	db := newTestDB(t)
	manager := NewManager(db)

	p, err := manager.Create("Listing Vote", "", "100", "alice")
	require.NoError(t, err)

	require.NoError(t, manager.SetMessageRef(p.ID, "msg-1", "chan-1"))

	stored, err := manager.Get(p.ID)
	require.NoError(t, err)
	require.Equal(t, "msg-1", stored.MessageID)
	require.Equal(t, "chan-1", stored.ChannelID)

	require.ErrorIs(t, manager.SetMessageRef(999, "msg-2", "chan-2"), ErrProposalNotFound)
}
