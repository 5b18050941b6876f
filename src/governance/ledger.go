package governance

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/thronos-network/thronos-bot/src/types"
	"gorm.io/gorm"
)

const (
	ChoiceYes = "yes"
	ChoiceNo  = "no"
)

var (
	ErrProposalNotFound = errors.New("proposal not found")

	errDuplicateVote = errors.New("duplicate vote")
)

// Ledger is the append-only record of who voted on what. The unique index on
// (proposal_id, user_id) is the single source of the one-vote-per-user
// guarantee; the application never locks around it.
type Ledger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) *Ledger { return &Ledger{db: db} }

// RecordVote inserts the vote and bumps the proposal's cached tally in one
// transaction. A second vote from the same user reports duplicate=true and
// commits nothing.
func (l *Ledger) RecordVote(proposalID uint64, userID, choice string) (duplicate bool, err error) {
	if choice != ChoiceYes && choice != ChoiceNo {
		return false, fmt.Errorf("governance: invalid vote choice %q", choice)
	}

	err = l.db.Transaction(func(tx *gorm.DB) error {
		vote := types.Vote{
			ProposalID: proposalID,
			UserID:     userID,
			Choice:     choice,
			CreatedAt:  time.Now(),
		}
		if err := tx.Create(&vote).Error; err != nil {
			if isDuplicateKeyErr(err) {
				return errDuplicateVote
			}
			return fmt.Errorf("insert vote proposal=%d user=%s: %w", proposalID, userID, err)
		}

		column := "votes_yes"
		if choice == ChoiceNo {
			column = "votes_no"
		}
		res := tx.Model(&types.Proposal{}).
			Where("id = ?", proposalID).
			UpdateColumn(column, gorm.Expr(column+" + 1"))
		if res.Error != nil {
			return fmt.Errorf("update tally proposal=%d: %w", proposalID, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrProposalNotFound
		}
		return nil
	})

	if errors.Is(err, errDuplicateVote) {
		return true, nil
	}
	return false, err
}

// HasVoted reports whether the user already voted on the proposal.
func (l *Ledger) HasVoted(proposalID uint64, userID string) (bool, error) {
	var count int64
	err := l.db.Model(&types.Vote{}).
		Where("proposal_id = ? AND user_id = ?", proposalID, userID).
		Count(&count).Error
	return count > 0, err
}

// Tally counts votes per choice straight from the ledger, bypassing the
// cached columns on the proposal row.
func (l *Ledger) Tally(proposalID uint64) (yes, no uint64, err error) {
	type agg struct {
		Choice string
		Count  uint64
	}
	var rows []agg
	err = l.db.Model(&types.Vote{}).
		Select("choice, count(*) as count").
		Where("proposal_id = ?", proposalID).
		Group("choice").
		Scan(&rows).Error
	if err != nil {
		return 0, 0, err
	}
	for _, r := range rows {
		switch r.Choice {
		case ChoiceYes:
			yes = r.Count
		case ChoiceNo:
			no = r.Count
		}
	}
	return yes, no, nil
}

func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint")
}
