package types

import "time"

// Proposal is a governance item open for binary voting. VotesYes/VotesNo are
// a denormalized cache of the votes table, maintained in the same
// transaction as each vote insert.
type Proposal struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	AuthorID    string    `gorm:"size:32;not null" json:"authorId"`
	AuthorName  string    `gorm:"size:100" json:"authorName"`
	VotesYes    uint64    `gorm:"not null;default:0" json:"votesYes"`
	VotesNo     uint64    `gorm:"not null;default:0" json:"votesNo"`
	MessageID   string    `gorm:"size:32" json:"-"`
	ChannelID   string    `gorm:"size:32" json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Vote is append-only: at most one row per (proposal, user), never updated.
type Vote struct {
	ID         uint64 `gorm:"primaryKey"`
	ProposalID uint64 `gorm:"not null;uniqueIndex:idx_votes_proposal_user"`
	UserID     string `gorm:"size:32;not null;uniqueIndex:idx_votes_proposal_user"`
	Choice     string `gorm:"size:8;not null"`
	CreatedAt  time.Time
}

// UserStats holds per-user engagement counters. XP is kept equal to
// message_count*10 + reaction_count*5 + referral_count*50 by updating both
// in the same statement.
type UserStats struct {
	UserID        string    `gorm:"primaryKey;size:32" json:"userId"`
	Username      string    `gorm:"size:100" json:"username"`
	MessageCount  uint64    `gorm:"not null;default:0" json:"messageCount"`
	ReactionCount uint64    `gorm:"not null;default:0" json:"reactionCount"`
	ReferralCount uint64    `gorm:"not null;default:0" json:"referralCount"`
	XP            uint64    `gorm:"column:xp;not null;default:0" json:"xp"`
	LastActive    time.Time `json:"lastActive"`
}

func (UserStats) TableName() string { return "user_stats" }

// ReferralCode links an invite code to the member who issued it.
type ReferralCode struct {
	Code      string `gorm:"primaryKey;size:36"`
	UserID    string `gorm:"size:32;not null;index"`
	Uses      uint64 `gorm:"not null;default:0"`
	CreatedAt time.Time
}

// ReferralRedemption records which code a member redeemed. The primary key
// on user_id caps every member at one redemption.
type ReferralRedemption struct {
	UserID    string `gorm:"primaryKey;size:32"`
	Code      string `gorm:"size:36;not null;index"`
	CreatedAt time.Time
}

type Setting struct {
	ID    uint8  `gorm:"primaryKey"`
	Name  string `gorm:"size:64;uniqueIndex"`
	Value string `gorm:"type:text"`
}
