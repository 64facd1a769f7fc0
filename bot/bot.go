package bot

import (
	"fmt"
	"strings"

	"streambot/bot/features/points"
	"streambot/bot/features/ssp"
	"streambot/domain/interfaces"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Config holds bot configuration
type Config struct {
	Token         string
	GuildID       string // Empty registers commands globally
	ApplicationID string // Defaults to the bot user's ID
}

// Bot manages the Discord session and all feature modules
type Bot struct {
	config  Config
	session *discordgo.Session

	ssp    *ssp.Feature
	points *points.Feature

	commandIDs []string
}

// NewSession creates a Discord session that is not connected yet
func NewSession(token string) (*discordgo.Session, error) {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds
	return dg, nil
}

// New wires the features to session, opens the gateway connection and
// registers slash commands
func New(config Config, session *discordgo.Session, duels interfaces.DuelManager, ledger interfaces.PointsLedger) (*Bot, error) {
	bot := &Bot{
		config:  config,
		session: session,
		ssp:     ssp.NewFeature(duels),
		points:  points.New(ledger),
	}

	session.AddHandler(bot.handleReady)
	session.AddHandler(bot.handleCommands)
	session.AddHandler(bot.handleInteractions)

	if err := session.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	if err := bot.registerCommands(); err != nil {
		session.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	return bot, nil
}

// Close gracefully shuts down the bot
func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) handleReady(s *discordgo.Session, r *discordgo.Ready) {
	log.WithFields(log.Fields{
		"user":   r.User.Username,
		"guilds": len(r.Guilds),
	}).Info("Discord session ready")
}

// handleCommands routes slash commands to appropriate handlers
func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "ssp":
		b.ssp.HandleCommand(s, i)
	case "points":
		b.points.HandleCommand(s, i)
	}
}

// handleInteractions routes component interactions to appropriate features
func (b *Bot) handleInteractions(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}

	customID := i.MessageComponentData().CustomID
	switch {
	case strings.HasPrefix(customID, ssp.CustomIDPrefix):
		b.ssp.HandleInteraction(s, i)
	default:
		log.Debugf("Ignoring component interaction %s", customID)
	}
}
