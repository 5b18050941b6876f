package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/thronos-network/thronos-bot/src/bot"
	"github.com/thronos-network/thronos-bot/src/config"
	"github.com/thronos-network/thronos-bot/src/data"
	"github.com/thronos-network/thronos-bot/src/webserver"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	// Single DB connection shared by every module
	db, err := data.ConnectMySQL(config.GetMySQLDSN())
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	if err := data.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	cfg := config.Load(db)
	if cfg.Token == "" {
		log.Fatal("discord token not configured")
	}

	rdb := data.MustRedis(cfg.RedisURL)

	b, err := bot.New(cfg, db, rdb)
	if err != nil {
		log.Fatalf("bot init: %v", err)
	}
	if err := b.Start(); err != nil {
		log.Fatalf("bot start: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	api := webserver.New(b.Proposals(), b.Accumulator(), cfg.JWTSecret, b.PostTradeAlert)
	go func() {
		if err := api.Run(ctx, cfg.APIPort); err != nil {
			log.Fatalf("webserver: %v", err)
		}
	}()

	// Wait for termination
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs

	cancel()
	b.Stop()
}
