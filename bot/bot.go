package bot

import (
	"fmt"

	"lotobot/application"
	"lotobot/bot/features/game"
	"lotobot/bot/features/round"
	"lotobot/domain/interfaces"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Config holds bot configuration
type Config struct {
	Token           string
	GuildID         string // empty registers commands globally
	LeaderboardSize int
}

// Bot manages the Discord session and the feature modules
type Bot struct {
	config  Config
	session *discordgo.Session

	// Feature modules
	game  *game.Feature
	round *round.Feature

	registered []*discordgo.ApplicationCommand
}

// New creates a bot, opens the gateway connection and registers slash commands
func New(config Config, controller application.GameController, subscriber interfaces.EventSubscriber) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers

	bot := &Bot{
		config:  config,
		session: dg,
		game:    game.NewFeature(controller, config.LeaderboardSize),
		round:   round.NewFeature(controller, config.LeaderboardSize),
	}

	dg.AddHandler(bot.handleCommands)
	dg.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.WithFields(log.Fields{
			"user":   r.User.Username,
			"guilds": len(r.Guilds),
		}).Info("Discord session ready")
	})

	if subscriber != nil {
		RegisterBotSubscriptions(subscriber, dg)
	}

	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	return bot, nil
}

// Close gracefully shuts down the bot
func (b *Bot) Close() error {
	return b.session.Close()
}

// GetSession returns the Discord session
func (b *Bot) GetSession() *discordgo.Session {
	return b.session
}

// handleCommands routes slash commands to the owning feature
func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	name := i.ApplicationCommandData().Name
	switch {
	case name == round.CommandRound:
		b.round.HandleCommand(s, i)
	case b.game.Handles(name):
		b.game.HandleCommand(s, i)
	default:
		log.WithField("command", name).Warn("Received unknown command")
	}
}
