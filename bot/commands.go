package bot

import (
	"fmt"

	"lotobot/domain/entities"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func ptr[T any](v T) *T {
	return &v
}

// ticketChoices lists every ticket code as a command choice
func ticketChoices() []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, len(entities.TicketCodes))
	for i, code := range entities.TicketCodes {
		choices[i] = &discordgo.ApplicationCommandOptionChoice{
			Name:  entities.TicketDisplayName(code),
			Value: code,
		}
	}
	return choices
}

func numbersOption(description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "numbers",
		Description: description,
		Required:    true,
	}
}

// commandDefinitions returns every slash command the bot serves
func commandDefinitions() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "round",
			Description: "Run a round of loto games with a shared token ledger",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "start",
					Description: "Start a round and reset token balances",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "name",
							Description: "Round name",
							Required:    true,
							MaxLength:   64,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "end",
					Description: "Close the round and show the final standings",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "summary",
					Description: "List the games played in this round",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "leaderboard",
					Description: "Show this round's gainers and losers",
				},
			},
		},
		{
			Name:        "game",
			Description: "Host and play a loto game",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "new",
					Description: "Create a game and become its host",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "name",
							Description: "Game name",
							MaxLength:   64,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "start",
							Description: "Lowest number (default 1)",
							MinValue:    ptr(0.0),
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "end",
							Description: "Highest number (default 90)",
							MinValue:    ptr(0.0),
						},
						{
							Type:        discordgo.ApplicationCommandOptionBoolean,
							Name:        "remove",
							Description: "Remove numbers from the pool once drawn (default on)",
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "range",
					Description: "Change the number range before the first draw",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "start",
							Description: "Lowest number",
							Required:    true,
							MinValue:    ptr(0.0),
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "end",
							Description: "Highest number",
							Required:    true,
							MinValue:    ptr(0.0),
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "start",
					Description: "Start the game once players hold tickets",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "draw",
					Description: "Draw the next number",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "reset",
					Description: "Put every drawn number back in the pool",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "toggle",
					Description: "Toggle whether drawn numbers leave the pool",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "end",
					Description: "End the game and pay out",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "abandon",
					Description: "Drop the game without paying out",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "status",
					Description: "Show the live game",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "history",
					Description: "Show the latest draws",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "limit",
							Description: "How many draws to show",
							MinValue:    ptr(1.0),
							MaxValue:    200,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "players",
					Description: "List the players and their tickets",
				},
			},
		},
		{
			Name:        "ticket",
			Description: "Pick or give back a ticket",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "claim",
					Description: "Take a free ticket, swapping out the one you hold",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "code",
							Description: "Ticket",
							Required:    true,
							Choices:     ticketChoices(),
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "release",
					Description: "Give back your ticket",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "Show every ticket and who holds it",
				},
			},
		},
		{
			Name:        "check",
			Description: "Check the numbers on your ticket and claim a win",
			Options:     []*discordgo.ApplicationCommandOption{numbersOption("Numbers on your ticket, separated by spaces or commas")},
		},
		{
			Name:        "wait",
			Description: "Get pinged when any of these numbers is drawn",
			Options:     []*discordgo.ApplicationCommandOption{numbersOption("Numbers to wait for")},
		},
		{
			Name:        "unwin",
			Description: "Take back your last win in this game",
		},
		{
			Name:        "lastresult",
			Description: "Show the last finished game",
		},
		{
			Name:        "leaderboard",
			Description: "Show lifetime wins in this channel",
		},
	}
}

// registerCommands registers all slash commands with Discord
func (b *Bot) registerCommands() error {
	commands := commandDefinitions()
	b.registered = make([]*discordgo.ApplicationCommand, 0, len(commands))

	for _, cmd := range commands {
		created, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, cmd)
		if err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
		}
		b.registered = append(b.registered, created)
	}

	log.WithFields(log.Fields{
		"count":    len(b.registered),
		"guild_id": b.config.GuildID,
	}).Info("Slash commands registered")
	return nil
}
