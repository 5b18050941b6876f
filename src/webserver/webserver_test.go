package webserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"github.com/thronos-network/thronos-bot/src/governance"
	"github.com/thronos-network/thronos-bot/src/leaderboard"
	"github.com/thronos-network/thronos-bot/src/types"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "test-secret"

func newTestServer(t *testing.T, alertNotify func(TradeAlert) error) (*Server, *governance.Manager, *leaderboard.Accumulator) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&types.Proposal{},
		&types.Vote{},
		&types.UserStats{},
	))

	proposals := governance.NewManager(db)
	acc := leaderboard.NewAccumulator(db)
	return New(proposals, acc, testSecret, alertNotify), proposals, acc
}

func doRequest(t *testing.T, s *Server, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func signToken(t *testing.T, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss": "pytheia",
		"exp": time.Now().Add(time.Minute).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestHealthz(t *testing.T) {
	s, _, _ := newTestServer(t, nil)

	rec := doRequest(t, s, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestProposalEndpoints(t *testing.T) {
	s, proposals, _ := newTestServer(t, nil)

	p, err := proposals.Create("Upgrade Fee Model", "Reduce base fee by 20%", "100", "alice")
	require.NoError(t, err)

	_, err = proposals.Ledger().RecordVote(p.ID, "200", governance.ChoiceYes)
	require.NoError(t, err)

	rec := doRequest(t, s, http.MethodGet, "/v1/proposals", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []types.Proposal
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	require.Equal(t, "Upgrade Fee Model", list[0].Title)

	rec = doRequest(t, s, http.MethodGet, "/v1/proposals/1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, s, http.MethodGet, "/v1/proposals/1/votes", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var tally map[string]uint64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tally))
	require.Equal(t, uint64(1), tally["yes"])
	require.Zero(t, tally["no"])

	rec = doRequest(t, s, http.MethodGet, "/v1/proposals/42", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, s, http.MethodGet, "/v1/proposals/abc", "", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLeaderboardEndpoint(t *testing.T) {
	s, _, acc := newTestServer(t, nil)

	require.NoError(t, acc.RecordActivity("100", "alice", 3, 0, 0))
	require.NoError(t, acc.RecordActivity("200", "bob", 1, 0, 0))

	rec := doRequest(t, s, http.MethodGet, "/v1/leaderboard", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var rows []types.UserStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 2)
	require.Equal(t, "alice", rows[0].Username)

	rec = doRequest(t, s, http.MethodGet, "/v1/leaderboard?limit=1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rows = nil
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 1)

	rec = doRequest(t, s, http.MethodGet, "/v1/leaderboard?limit=0", "", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRankEndpoint(t *testing.T) {
	s, _, acc := newTestServer(t, nil)

	require.NoError(t, acc.RecordActivity("100", "alice", 2, 1, 0))

	rec := doRequest(t, s, http.MethodGet, "/v1/users/100/rank", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Rank int64           `json:"rank"`
		User types.UserStats `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, int64(1), body.Rank)
	require.Equal(t, "alice", body.User.Username)

	rec = doRequest(t, s, http.MethodGet, "/v1/users/ghost/rank", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAlertRequiresJWT(t *testing.T) {
	s, _, _ := newTestServer(t, func(TradeAlert) error { return nil })

	payload := `{"trade_type":"buy","amount":"100","token":"THR"}`

	rec := doRequest(t, s, http.MethodPost, "/v1/alerts", payload, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, s, http.MethodPost, "/v1/alerts", payload, map[string]string{
		"Authorization": "Bearer " + signToken(t, "wrong-secret"),
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAlertDelivery(t *testing.T) {
	var got TradeAlert
	s, _, _ := newTestServer(t, func(a TradeAlert) error {
		got = a
		return nil
	})

	headers := map[string]string{
		"Authorization": "Bearer " + signToken(t, testSecret),
		"Content-Type":  "application/json",
	}

	payload := `{"trade_type":"buy","amount":"250","token":"THR","profit_estimate":"+4.2%","tx_hash":"0xabc"}`
	rec := doRequest(t, s, http.MethodPost, "/v1/alerts", payload, headers)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "buy", got.TradeType)
	require.Equal(t, "0xabc", got.TxHash)

	// trade_type is mandatory.
	rec = doRequest(t, s, http.MethodPost, "/v1/alerts", `{"amount":"1"}`, headers)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAlertDeliveryFailure(t *testing.T) {
	s, _, _ := newTestServer(t, func(TradeAlert) error {
		return errors.New("discord unavailable")
	})

	rec := doRequest(t, s, http.MethodPost, "/v1/alerts", `{"trade_type":"sell"}`, map[string]string{
		"Authorization": "Bearer " + signToken(t, testSecret),
		"Content-Type":  "application/json",
	})
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
