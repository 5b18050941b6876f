package bot

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/redis/go-redis/v9"
	"github.com/thronos-network/thronos-bot/src/announce"
	"github.com/thronos-network/thronos-bot/src/config"
	shareddiscord "github.com/thronos-network/thronos-bot/src/discord"
	"github.com/thronos-network/thronos-bot/src/governance"
	"github.com/thronos-network/thronos-bot/src/info"
	"github.com/thronos-network/thronos-bot/src/leaderboard"
	"github.com/thronos-network/thronos-bot/src/moderation"
	"github.com/thronos-network/thronos-bot/src/network"
	"github.com/thronos-network/thronos-bot/src/scraper"
	"github.com/thronos-network/thronos-bot/src/setup"
	"github.com/thronos-network/thronos-bot/src/welcome"
	"gorm.io/gorm"
)

const (
	statsInterval     = 5 * time.Minute
	presenceInterval  = 2 * time.Minute
	contractsInterval = 3 * time.Minute
	contentInterval   = time.Hour
)

type Bot struct {
	session *discordgo.Session
	db      *gorm.DB
	rdb     *redis.Client
	config  config.Config

	proposals   *governance.Manager
	govHandler  *governance.Handler
	lbHandler   *leaderboard.Handler
	accumulator *leaderboard.Accumulator
	stats       *network.StatsPublisher
	ticker      *network.Ticker
	contracts   *network.ContractWatcher
	gallery     *network.Gallery
	infoHandler *info.Handler
	provisioner *setup.Provisioner
	welcomer    *welcome.Handler
	moderator   *moderation.Handler
	announcer   *announce.Handler

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started bool
	mu      sync.Mutex
}

func New(cfg config.Config, db *gorm.DB, rdb *redis.Client) (*Bot, error) {
	dg, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())

	bot := &Bot{
		session: dg,
		db:      db,
		rdb:     rdb,
		config:  cfg,
		ctx:     ctx,
		cancel:  cancel,
	}

	bot.initializeComponents()
	bot.registerHandlers()

	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsMessageContent |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentsGuildMembers

	return bot, nil
}

func (b *Bot) initializeComponents() {
	b.proposals = governance.NewManager(b.db)
	b.govHandler = governance.NewHandler(b.proposals, governance.NewRenderer(b.session), b.config.GuildID)

	b.accumulator = leaderboard.NewAccumulator(b.db)
	referrals := leaderboard.NewReferrals(b.db, b.accumulator)
	b.lbHandler = leaderboard.NewHandler(b.accumulator, referrals, b.rdb)

	apiClient := network.NewClient(b.config.ThronosAPIURL, b.rdb)
	b.stats = network.NewStatsPublisher(apiClient, b.config.GuildID)
	b.ticker = network.NewTicker(apiClient)
	b.contracts = network.NewContractWatcher(apiClient, b.config.GuildID)
	b.gallery = network.NewGallery(apiClient)
	b.infoHandler = info.NewHandler(b.config.GuildID, b.config.ThronosSiteURL)

	sc := scraper.New(b.config.ThronosSiteURL)
	b.provisioner = setup.NewProvisioner(sc, b.config.GuildID)

	b.welcomer = welcome.NewHandler(b.config.GuildID)
	b.moderator = moderation.NewHandler()
	b.announcer = announce.NewHandler(b.config.GuildID)
}

func (b *Bot) registerHandlers() {
	b.session.AddHandler(b.handleReady)
	b.session.AddHandler(b.handleInteraction)
	b.session.AddHandler(b.handleMessage)
	b.session.AddHandler(b.lbHandler.HandleReactionAdd)
	b.session.AddHandler(b.welcomer.HandleMemberJoin)
}

// Proposals exposes the proposal manager for the webserver wiring.
func (b *Bot) Proposals() *governance.Manager { return b.proposals }

// Accumulator exposes the engagement accumulator for the webserver wiring.
func (b *Bot) Accumulator() *leaderboard.Accumulator { return b.accumulator }

func (b *Bot) Start() error {
	return b.session.Open()
}

func (b *Bot) Stop() {
	b.cancel()
	b.wg.Wait()
	b.session.Close()
}

func (b *Bot) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	b.moderator.HandleMessage(s, m)
	b.lbHandler.HandleMessage(s, m)
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		switch i.ApplicationCommandData().Name {
		case shareddiscord.CommandPropose:
			b.govHandler.HandlePropose(s, i)
		case shareddiscord.CommandProposals:
			b.govHandler.HandleProposals(s, i)
		case shareddiscord.CommandLeaderboard:
			b.lbHandler.HandleLeaderboard(s, i)
		case shareddiscord.CommandRank:
			b.lbHandler.HandleRank(s, i)
		case shareddiscord.CommandReferral:
			b.lbHandler.HandleReferral(s, i)
		case shareddiscord.CommandRedeem:
			b.lbHandler.HandleRedeem(s, i)
		case shareddiscord.CommandStats:
			b.stats.HandleStats(s, i)
		case shareddiscord.CommandTokens:
			b.gallery.HandleTokens(s, i)
		case shareddiscord.CommandToken:
			b.gallery.HandleToken(s, i)
		case shareddiscord.CommandRoadmap:
			b.infoHandler.HandleRoadmap(s, i)
		case shareddiscord.CommandWhitepaper:
			b.infoHandler.HandleWhitepaper(s, i)
		case shareddiscord.CommandWebsite:
			b.infoHandler.HandleWebsite(s, i)
		case shareddiscord.CommandAnnounce:
			b.announcer.HandleAnnounce(s, i)
		case shareddiscord.CommandPurge:
			b.moderator.HandlePurge(s, i)
		case shareddiscord.CommandSlowmode:
			b.moderator.HandleSlowmode(s, i)
		case shareddiscord.CommandSetupServer:
			b.provisioner.HandleSetup(s, i)
		case shareddiscord.CommandHelp:
			b.handleHelp(s, i)
		}
	case discordgo.InteractionMessageComponent:
		if b.govHandler.HandleComponent(s, i) {
			return
		}
	}
}

func (b *Bot) handleReady(s *discordgo.Session, event *discordgo.Ready) {
	log.Printf("Discord bot logged in as %s", event.User.Username)

	if err := shareddiscord.RegisterSlashCommands(s, b.config.GuildID); err != nil {
		log.Printf("Failed to register slash commands: %v", err)
	}

	b.mu.Lock()
	if b.started {
		b.mu.Unlock()
		return
	}
	b.started = true
	b.mu.Unlock()

	b.startLoop("network stats", statsInterval, func(ctx context.Context) {
		b.stats.Refresh(ctx, s)
	})
	b.startLoop("presence ticker", presenceInterval, func(ctx context.Context) {
		b.ticker.Update(ctx, s)
	})
	b.startLoop("contract watcher", contractsInterval, func(ctx context.Context) {
		b.contracts.Poll(ctx, s)
	})
	b.startLoop("content sync", contentInterval, func(ctx context.Context) {
		if err := b.provisioner.Provision(ctx, s); err != nil {
			log.Printf("Content sync failed: %v", err)
		}
	})
}

// startLoop runs fn immediately and then on every tick until shutdown.
func (b *Bot) startLoop(name string, interval time.Duration, fn func(context.Context)) {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()

		fn(b.ctx)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-b.ctx.Done():
				log.Printf("Stopping %s loop", name)
				return
			case <-ticker.C:
				fn(b.ctx)
			}
		}
	}()
}
