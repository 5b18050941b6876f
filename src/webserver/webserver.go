package webserver

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/thronos-network/thronos-bot/src/governance"
	"github.com/thronos-network/thronos-bot/src/leaderboard"
)

// Server exposes a read-only view of the governance and leaderboard data
// plus the authenticated trade-alert webhook.
type Server struct {
	router    *gin.Engine
	proposals *governance.Manager
	acc       *leaderboard.Accumulator
	jwtSecret []byte

	// alertNotify relays a validated trade alert to the chat surface.
	alertNotify func(TradeAlert) error
}

func New(proposals *governance.Manager, acc *leaderboard.Accumulator, jwtSecret string, alertNotify func(TradeAlert) error) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		router:      gin.New(),
		proposals:   proposals,
		acc:         acc,
		jwtSecret:   []byte(jwtSecret),
		alertNotify: alertNotify,
	}

	s.router.Use(gin.Recovery())
	s.router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}))

	s.router.GET("/healthz", s.health)

	v1 := s.router.Group("/v1")
	{
		v1.GET("/proposals", s.listProposals)
		v1.GET("/proposals/:id", s.getProposal)
		v1.GET("/proposals/:id/votes", s.voteSummary)
		v1.GET("/leaderboard", s.leaderboard)
		v1.GET("/users/:id/rank", s.rank)
		v1.POST("/alerts", s.requireJWT(), s.postAlert)
	}

	return s
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	log.Printf("webserver: listening on :%s", port)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
