package game

import (
	"context"

	"lotobot/application"
	"lotobot/bot/common"
	"lotobot/domain/entities"

	"github.com/bwmarrin/discordgo"
)

// Commands handled by this feature
const (
	CommandGame        = "game"
	CommandTicket      = "ticket"
	CommandCheck       = "check"
	CommandWait        = "wait"
	CommandUnwin       = "unwin"
	CommandLastResult  = "lastresult"
	CommandLeaderboard = "leaderboard"
)

const defaultHistoryLimit = 20

// Feature handles the game, ticket and claim commands
type Feature struct {
	controller      application.GameController
	leaderboardSize int
}

// NewFeature creates a new game feature
func NewFeature(controller application.GameController, leaderboardSize int) *Feature {
	return &Feature{
		controller:      controller,
		leaderboardSize: leaderboardSize,
	}
}

// Handles reports whether the command belongs to this feature
func (f *Feature) Handles(command string) bool {
	switch command {
	case CommandGame, CommandTicket, CommandCheck, CommandWait, CommandUnwin, CommandLastResult, CommandLeaderboard:
		return true
	}
	return false
}

// HandleCommand handles a slash command owned by this feature
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	chatID, err := common.ChatID(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	player, err := common.ParticipantFromInteraction(i)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	data := i.ApplicationCommandData()
	reply, err := f.Dispatch(context.Background(), chatID, player, data.Name, data.Options)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	common.Send(s, i, reply)
}

// Dispatch runs one command and returns what to answer
func (f *Feature) Dispatch(ctx context.Context, chatID int64, player entities.Participant, command string, opts []*discordgo.ApplicationCommandInteractionDataOption) (*common.Reply, error) {
	switch command {
	case CommandGame:
		sub, subOpts := common.Subcommand(opts)
		return f.dispatchGame(ctx, chatID, player, sub, common.Options(subOpts))
	case CommandTicket:
		sub, subOpts := common.Subcommand(opts)
		return f.dispatchTicket(ctx, chatID, player, sub, common.Options(subOpts))
	case CommandCheck:
		return f.check(ctx, chatID, player, common.StringOption(common.Options(opts), "numbers", ""))
	case CommandWait:
		return f.wait(ctx, chatID, player, common.StringOption(common.Options(opts), "numbers", ""))
	case CommandUnwin:
		return f.unwin(ctx, chatID, player)
	case CommandLastResult:
		return f.lastResult(ctx, chatID)
	case CommandLeaderboard:
		return f.leaderboard(ctx, chatID)
	}
	return nil, common.NewUserError("Unknown command", "unknown command "+command)
}

func (f *Feature) dispatchGame(ctx context.Context, chatID int64, player entities.Participant, sub string, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) (*common.Reply, error) {
	switch sub {
	case "new":
		return f.newGame(ctx, chatID, player, opts)
	case "range":
		return f.setRange(ctx, chatID, player, opts)
	case "start":
		return f.startGame(ctx, chatID, player)
	case "draw":
		return f.draw(ctx, chatID, player)
	case "reset":
		return f.resetDraws(ctx, chatID, player)
	case "toggle":
		return f.toggleRemove(ctx, chatID, player)
	case "end":
		return f.endGame(ctx, chatID, player)
	case "abandon":
		return f.abandonGame(ctx, chatID, player)
	case "status":
		return f.status(ctx, chatID)
	case "history":
		return f.history(ctx, chatID, opts)
	case "players":
		return f.players(ctx, chatID)
	}
	return nil, common.NewUserError("Please pick a /game subcommand", "unknown game subcommand "+sub)
}

func (f *Feature) dispatchTicket(ctx context.Context, chatID int64, player entities.Participant, sub string, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) (*common.Reply, error) {
	switch sub {
	case "claim":
		return f.claimTicket(ctx, chatID, player, common.StringOption(opts, "code", ""))
	case "release":
		return f.releaseTicket(ctx, chatID, player)
	case "list":
		return f.listTickets(ctx, chatID)
	}
	return nil, common.NewUserError("Please pick a /ticket subcommand", "unknown ticket subcommand "+sub)
}
