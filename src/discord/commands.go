package discord

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"
)

const (
	CommandPropose     = "propose"
	CommandProposals   = "proposals"
	CommandLeaderboard = "leaderboard"
	CommandRank        = "rank"
	CommandReferral    = "referral"
	CommandRedeem      = "redeem"
	CommandStats       = "stats"
	CommandTokens      = "tokens"
	CommandToken       = "token"
	CommandRoadmap     = "roadmap"
	CommandWhitepaper  = "whitepaper"
	CommandWebsite     = "website"
	CommandAnnounce    = "announce"
	CommandPurge       = "purge"
	CommandSlowmode    = "slowmode"
	CommandSetupServer = "setup-server"
	CommandHelp        = "help"
)

var commandDefinitions = map[string]*discordgo.ApplicationCommand{
	CommandPropose: {
		Name:        CommandPropose,
		Description: "Create a new governance proposal (Admin only)",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "title",
				Description: "Short title of the proposal",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "description",
				Description: "What the community is voting on",
				Required:    true,
			},
		},
	},
	CommandProposals: {
		Name:        CommandProposals,
		Description: "List all governance proposals",
	},
	CommandLeaderboard: {
		Name:        CommandLeaderboard,
		Description: "Show top community members",
	},
	CommandRank: {
		Name:        CommandRank,
		Description: "Show your rank and stats",
	},
	CommandReferral: {
		Name:        CommandReferral,
		Description: "Get your personal referral code",
	},
	CommandRedeem: {
		Name:        CommandRedeem,
		Description: "Redeem a referral code from the member who invited you",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "code",
				Description: "The referral code",
				Required:    true,
			},
		},
	},
	CommandStats: {
		Name:        CommandStats,
		Description: "Show current network statistics",
	},
	CommandTokens: {
		Name:        CommandTokens,
		Description: "Show all tokens on the network",
	},
	CommandToken: {
		Name:        CommandToken,
		Description: "Show details for a specific token",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "symbol",
				Description: "Token symbol, e.g. THR",
				Required:    true,
			},
		},
	},
	CommandRoadmap: {
		Name:        CommandRoadmap,
		Description: "Get the Thronos roadmap",
	},
	CommandWhitepaper: {
		Name:        CommandWhitepaper,
		Description: "Get the Thronos whitepaper",
	},
	CommandWebsite: {
		Name:        CommandWebsite,
		Description: "Get the Thronos website link",
	},
	CommandAnnounce: {
		Name:        CommandAnnounce,
		Description: "Post an announcement (Admin only)",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "message",
				Description: "Announcement text",
				Required:    true,
			},
		},
	},
	CommandPurge: {
		Name:        CommandPurge,
		Description: "Delete the last N messages (Admin only)",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "amount",
				Description: "Number of messages to delete (1-100)",
				Required:    true,
			},
		},
	},
	CommandSlowmode: {
		Name:        CommandSlowmode,
		Description: "Set channel slowmode in seconds (Admin only)",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "seconds",
				Description: "Delay between messages (0 to disable, max 21600)",
				Required:    true,
			},
		},
	},
	CommandSetupServer: {
		Name:        CommandSetupServer,
		Description: "Auto-configure server channels and content (Admin only)",
	},
	CommandHelp: {
		Name:        CommandHelp,
		Description: "Show bot commands and usage",
	},
}

var defaultCommandOrder = []string{
	CommandPropose,
	CommandProposals,
	CommandLeaderboard,
	CommandRank,
	CommandReferral,
	CommandRedeem,
	CommandStats,
	CommandTokens,
	CommandToken,
	CommandRoadmap,
	CommandWhitepaper,
	CommandWebsite,
	CommandAnnounce,
	CommandPurge,
	CommandSlowmode,
	CommandSetupServer,
	CommandHelp,
}

// RegisterSlashCommands registers the requested slash commands for a guild.
// When no command names are provided, all known commands are registered.
func RegisterSlashCommands(s *discordgo.Session, guildID string, names ...string) error {
	if guildID == "" {
		return fmt.Errorf("discord: guildID is required to register slash commands")
	}

	if len(names) == 0 {
		names = defaultCommandOrder
	}

	var failures []string
	for _, name := range names {
		definition, ok := commandDefinitions[name]
		if !ok {
			log.Printf("discord: unknown slash command %q", name)
			continue
		}

		_, err := s.ApplicationCommandCreate(s.State.User.ID, guildID, definition)
		if err != nil {
			if isDuplicateCommandError(err) {
				log.Printf("discord: slash command %q already registered", name)
				continue
			}
			failures = append(failures, fmt.Sprintf("%s: %v", name, err))
			log.Printf("discord: failed to register command %q: %v", name, err)
		}
	}

	if len(failures) > 0 {
		return fmt.Errorf("discord: slash command registration errors: %s", strings.Join(failures, "; "))
	}

	return nil
}

// DeleteSlashCommands removes all registered slash commands for a guild.
func DeleteSlashCommands(s *discordgo.Session, guildID string) error {
	if guildID == "" {
		return fmt.Errorf("discord: guildID is required to delete slash commands")
	}

	commands, err := s.ApplicationCommands(s.State.User.ID, guildID)
	if err != nil {
		return err
	}

	for _, cmd := range commands {
		if err := s.ApplicationCommandDelete(s.State.User.ID, guildID, cmd.ID); err != nil {
			return err
		}
	}

	return nil
}

func isDuplicateCommandError(err error) bool {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) {
		if restErr.Message != nil {
			msg := strings.ToLower(restErr.Message.Message)
			if strings.Contains(msg, "already exists") {
				return true
			}
		}
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "50035") && strings.Contains(msg, "already exists")
}
