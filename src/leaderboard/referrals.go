package leaderboard

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/thronos-network/thronos-bot/src/types"
	"gorm.io/gorm"
)

var (
	ErrCodeNotFound    = errors.New("referral code not found")
	ErrSelfReferral    = errors.New("cannot redeem your own referral code")
	ErrAlreadyRedeemed = errors.New("referral code already redeemed by this user")
)

// Referrals issues per-member invite codes and credits the issuer when a new
// member redeems one.
type Referrals struct {
	db  *gorm.DB
	acc *Accumulator
}

func NewReferrals(db *gorm.DB, acc *Accumulator) *Referrals {
	return &Referrals{db: db, acc: acc}
}

// Issue returns the member's referral code, creating one on first use.
func (r *Referrals) Issue(userID string) (string, error) {
	var existing types.ReferralCode
	err := r.db.First(&existing, "user_id = ?", userID).Error
	if err == nil {
		return existing.Code, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("lookup referral code user=%s: %w", userID, err)
	}

	code := types.ReferralCode{
		Code:      uuid.NewString(),
		UserID:    userID,
		CreatedAt: time.Now(),
	}
	if err := r.db.Create(&code).Error; err != nil {
		return "", fmt.Errorf("create referral code user=%s: %w", userID, err)
	}
	return code.Code, nil
}

// Redeem credits the code's issuer with one referral. Each member can redeem
// at most one code, enforced by the redemptions primary key; trying again
// reports ErrAlreadyRedeemed without crediting anyone.
func (r *Referrals) Redeem(code, redeemerID string) error {
	code = strings.TrimSpace(code)

	var ref types.ReferralCode
	if err := r.db.First(&ref, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCodeNotFound
		}
		return fmt.Errorf("lookup referral code %s: %w", code, err)
	}
	if ref.UserID == redeemerID {
		return ErrSelfReferral
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		redemption := types.ReferralRedemption{
			UserID:    redeemerID,
			Code:      code,
			CreatedAt: time.Now(),
		}
		if err := tx.Create(&redemption).Error; err != nil {
			if isDuplicateKeyErr(err) {
				return ErrAlreadyRedeemed
			}
			return fmt.Errorf("record redemption user=%s: %w", redeemerID, err)
		}
		return tx.Model(&types.ReferralCode{}).Where("code = ?", code).
			UpdateColumn("uses", gorm.Expr("uses + 1")).Error
	})
	if err != nil {
		return err
	}

	// Credit the issuer, keeping whatever display name we already stored.
	return r.acc.RecordActivity(ref.UserID, "", 0, 0, 1)
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
