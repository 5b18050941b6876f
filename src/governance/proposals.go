package governance

import (
	"errors"
	"fmt"
	"time"

	"github.com/thronos-network/thronos-bot/src/types"
	"gorm.io/gorm"
)

// Manager owns proposal rows and their linkage to the posted Discord
// message. It does not post messages itself.
type Manager struct {
	db     *gorm.DB
	ledger *Ledger
}

func NewManager(db *gorm.DB) *Manager {
	return &Manager{db: db, ledger: NewLedger(db)}
}

func (m *Manager) Ledger() *Ledger { return m.ledger }

// Create stores a new proposal with zero tallies and returns it.
func (m *Manager) Create(title, description, authorID, authorName string) (*types.Proposal, error) {
	p := types.Proposal{
		Title:       title,
		Description: description,
		AuthorID:    authorID,
		AuthorName:  authorName,
		CreatedAt:   time.Now(),
	}
	if err := m.db.Create(&p).Error; err != nil {
		return nil, fmt.Errorf("create proposal %q: %w", title, err)
	}
	return &p, nil
}

// SetMessageRef records where the proposal's public rendering lives.
func (m *Manager) SetMessageRef(id uint64, messageID, channelID string) error {
	res := m.db.Model(&types.Proposal{}).Where("id = ?", id).
		Updates(map[string]interface{}{"message_id": messageID, "channel_id": channelID})
	if res.Error != nil {
		return fmt.Errorf("set message ref proposal=%d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrProposalNotFound
	}
	return nil
}

func (m *Manager) Get(id uint64) (*types.Proposal, error) {
	var p types.Proposal
	if err := m.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProposalNotFound
		}
		return nil, fmt.Errorf("load proposal %d: %w", id, err)
	}
	return &p, nil
}

// List returns all proposals, newest first.
func (m *Manager) List() ([]types.Proposal, error) {
	var proposals []types.Proposal
	err := m.db.Order("created_at DESC, id DESC").Find(&proposals).Error
	return proposals, err
}
