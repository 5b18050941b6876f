package webserver

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/thronos-network/thronos-bot/src/governance"
	"github.com/thronos-network/thronos-bot/src/leaderboard"
)

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) listProposals(c *gin.Context) {
	proposals, err := s.proposals.List()
	if err != nil {
		log.Printf("webserver: list proposals: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"err": "failed to load proposals"})
		return
	}
	c.JSON(http.StatusOK, proposals)
}

func (s *Server) getProposal(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "bad proposal id"})
		return
	}

	proposal, err := s.proposals.Get(id)
	if err != nil {
		if errors.Is(err, governance.ErrProposalNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"err": "proposal not found"})
			return
		}
		log.Printf("webserver: get proposal %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"err": "failed to load proposal"})
		return
	}
	c.JSON(http.StatusOK, proposal)
}

func (s *Server) voteSummary(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "bad proposal id"})
		return
	}

	if _, err := s.proposals.Get(id); err != nil {
		if errors.Is(err, governance.ErrProposalNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"err": "proposal not found"})
			return
		}
		log.Printf("webserver: get proposal %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"err": "failed to load proposal"})
		return
	}

	yes, no, err := s.proposals.Ledger().Tally(id)
	if err != nil {
		log.Printf("webserver: tally proposal %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"err": "failed to count votes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"yes": yes, "no": no})
}

func (s *Server) leaderboard(c *gin.Context) {
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"err": "limit must be 1-100"})
			return
		}
		limit = parsed
	}

	rows, err := s.acc.Leaderboard(limit)
	if err != nil {
		log.Printf("webserver: leaderboard: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"err": "failed to load leaderboard"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (s *Server) rank(c *gin.Context) {
	userID := c.Param("id")
	rank, stats, err := s.acc.Rank(userID)
	if err != nil {
		if errors.Is(err, leaderboard.ErrNoActivity) {
			c.JSON(http.StatusNotFound, gin.H{"err": "no recorded activity"})
			return
		}
		log.Printf("webserver: rank user=%s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"err": "failed to load rank"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rank": rank, "user": stats})
}

// TradeAlert is the payload pushed by the Pytheia autonomous trading agent.
type TradeAlert struct {
	TradeType      string `json:"trade_type" binding:"required"`
	Amount         string `json:"amount"`
	Token          string `json:"token"`
	ProfitEstimate string `json:"profit_estimate"`
	TxHash         string `json:"tx_hash"`
}

func (s *Server) postAlert(c *gin.Context) {
	var alert TradeAlert
	if err := c.ShouldBindJSON(&alert); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	if s.alertNotify == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"err": "alert delivery not configured"})
		return
	}
	if err := s.alertNotify(alert); err != nil {
		log.Printf("webserver: deliver alert: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"err": "failed to deliver alert"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "delivered"})
}
