package leaderboard

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIssueIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	referrals := NewReferrals(db, NewAccumulator(db))

	code, err := referrals.Issue("100")
	require.NoError(t, err)
	require.NotEmpty(t, code)

	again, err := referrals.Issue("100")
	require.NoError(t, err)
	require.Equal(t, code, again)

	other, err := referrals.Issue("200")
	require.NoError(t, err)
	require.NotEqual(t, code, other)
}

func TestRedeemCreditsIssuer(t *testing.T) {
	db := newTestDB(t)
	acc := NewAccumulator(db)
	referrals := NewReferrals(db, acc)

	code, err := referrals.Issue("100")
	require.NoError(t, err)

	require.NoError(t, referrals.Redeem(code, "200"))

	_, stats, err := acc.Rank("100")
	require.NoError(t, err)
	require.Equal(t, uint64(1), stats.ReferralCount)
	require.Equal(t, uint64(ReferralXP), stats.XP)
}

func TestRedeemRejectsSelf(t *testing.T) {
	db := newTestDB(t)
	referrals := NewReferrals(db, NewAccumulator(db))

	code, err := referrals.Issue("100")
	require.NoError(t, err)

	require.ErrorIs(t, referrals.Redeem(code, "100"), ErrSelfReferral)
}

func TestRedeemOncePerMember(t *testing.T) {
	db := newTestDB(t)
	acc := NewAccumulator(db)
	referrals := NewReferrals(db, acc)

	codeA, err := referrals.Issue("100")
	require.NoError(t, err)
	codeB, err := referrals.Issue("300")
	require.NoError(t, err)

	require.NoError(t, referrals.Redeem(codeA, "200"))

	// The same member cannot redeem twice, not even a different code.
	require.ErrorIs(t, referrals.Redeem(codeA, "200"), ErrAlreadyRedeemed)
	require.ErrorIs(t, referrals.Redeem(codeB, "200"), ErrAlreadyRedeemed)

	_, stats, err := acc.Rank("100")
	require.NoError(t, err)
	require.Equal(t, uint64(1), stats.ReferralCount)

	_, _, err = acc.Rank("300")
	require.ErrorIs(t, err, ErrNoActivity)
}

func TestRedeemUnknownCode(t *testing.T) {
	db := newTestDB(t)
	referrals := NewReferrals(db, NewAccumulator(db))

	require.ErrorIs(t, referrals.Redeem("not-a-code", "200"), ErrCodeNotFound)
}
