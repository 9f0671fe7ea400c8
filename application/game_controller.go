package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lotobot/domain/entities"
	"lotobot/domain/interfaces"
	"lotobot/domain/services"

	log "github.com/sirupsen/logrus"
)

// gameController runs game and round operations one chat at a time
type gameController struct {
	uowFactory UnitOfWorkFactory
	locker     *ChatLocker
	cooldowns  *CooldownGuard
	settings   interfaces.GameSettings
	metrics    Metrics
}

// NewGameController creates a controller. A nil cooldown guard or metrics disables them.
func NewGameController(uowFactory UnitOfWorkFactory, settings interfaces.GameSettings, cooldowns *CooldownGuard, metrics Metrics) GameController {
	if cooldowns == nil {
		cooldowns = NewCooldownGuard(nil)
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &gameController{
		uowFactory: uowFactory,
		locker:     NewChatLocker(),
		cooldowns:  cooldowns,
		settings:   settings,
		metrics:    metrics,
	}
}

// scope holds services bound to one unit of work
type scope struct {
	games  interfaces.GameService
	rounds interfaces.RoundService
}

// run executes fn under the chat lock in a fresh unit of work. The work is
// committed on success and when the session expired, since discarding an
// expired session is itself a write.
func run[T any](ctx context.Context, c *gameController, chatID int64, operation string, fn func(scope) (T, error)) (T, error) {
	var zero T

	unlock := c.locker.Lock(chatID)
	defer unlock()

	start := time.Now()
	uow := c.uowFactory.CreateForChat(chatID)
	if err := uow.Begin(ctx); err != nil {
		c.record(ctx, chatID, operation, err, start)
		return zero, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	s := scope{
		games: services.NewGameService(
			uow.GameSessionRepository(),
			uow.RoundRepository(),
			uow.LedgerRepository(),
			uow.ResultRepository(),
			uow.PlayerStatsRepository(),
			uow.EventBus(),
			c.settings,
		),
		rounds: services.NewRoundService(
			uow.RoundRepository(),
			uow.GameSessionRepository(),
			uow.LedgerRepository(),
			uow.EventBus(),
			c.settings.SessionTimeout,
		),
	}

	result, err := fn(s)
	if err != nil && !errors.Is(err, entities.ErrExpired) {
		c.record(ctx, chatID, operation, err, start)
		return zero, err
	}

	if cerr := uow.Commit(); cerr != nil {
		cerr = fmt.Errorf("failed to commit transaction: %w", cerr)
		c.record(ctx, chatID, operation, cerr, start)
		return zero, cerr
	}

	c.record(ctx, chatID, operation, err, start)
	if err != nil {
		return zero, err
	}
	return result, nil
}

func (c *gameController) record(ctx context.Context, chatID int64, operation string, err error, start time.Time) {
	outcome := "ok"
	if err != nil {
		outcome = string(entities.KindOf(err))
		if outcome == "" {
			outcome = "error"
			log.WithError(err).WithFields(log.Fields{
				"chat_id":   chatID,
				"operation": operation,
			}).Error("Game operation failed")
		}
	}
	c.metrics.RecordOperation(ctx, operation, outcome, time.Since(start))
}

// run0 adapts operations that return only an error
func run0(ctx context.Context, c *gameController, chatID int64, operation string, fn func(scope) error) error {
	_, err := run(ctx, c, chatID, operation, func(s scope) (struct{}, error) {
		return struct{}{}, fn(s)
	})
	return err
}

func (c *gameController) StartRound(ctx context.Context, chatID int64, name string, owner entities.Participant) (*entities.Round, error) {
	return run(ctx, c, chatID, "round_start", func(s scope) (*entities.Round, error) {
		return s.rounds.StartRound(ctx, chatID, name, owner)
	})
}

func (c *gameController) EndRound(ctx context.Context, chatID int64) (*interfaces.RoundEndResult, error) {
	return run(ctx, c, chatID, "round_end", func(s scope) (*interfaces.RoundEndResult, error) {
		return s.rounds.EndRound(ctx, chatID)
	})
}

func (c *gameController) GetActiveRound(ctx context.Context, chatID int64) (*entities.Round, error) {
	return run(ctx, c, chatID, "round_get", func(s scope) (*entities.Round, error) {
		return s.rounds.GetActiveRound(ctx, chatID)
	})
}

func (c *gameController) RoundSummary(ctx context.Context, chatID int64) (*interfaces.RoundSummary, error) {
	return run(ctx, c, chatID, "round_summary", func(s scope) (*interfaces.RoundSummary, error) {
		return s.rounds.RoundSummary(ctx, chatID)
	})
}

func (c *gameController) RoundLeaderboard(ctx context.Context, chatID int64, n int) (*interfaces.Leaderboard, error) {
	return run(ctx, c, chatID, "round_leaderboard", func(s scope) (*interfaces.Leaderboard, error) {
		return s.rounds.RoundLeaderboard(ctx, chatID, n)
	})
}

func (c *gameController) CreateGame(ctx context.Context, chatID int64, req interfaces.CreateGameRequest) (*entities.GameSession, error) {
	return run(ctx, c, chatID, "game_create", func(s scope) (*entities.GameSession, error) {
		return s.games.CreateGame(ctx, chatID, req)
	})
}

func (c *gameController) SetRange(ctx context.Context, chatID, callerID int64, start, end int) (*entities.GameSession, error) {
	return run(ctx, c, chatID, "game_range", func(s scope) (*entities.GameSession, error) {
		return s.games.SetRange(ctx, chatID, callerID, start, end)
	})
}

func (c *gameController) StartGame(ctx context.Context, chatID, callerID int64) (*entities.GameSession, error) {
	return run(ctx, c, chatID, "game_start", func(s scope) (*entities.GameSession, error) {
		return s.games.StartGame(ctx, chatID, callerID)
	})
}

// Draw draws a number, subject to the caller's draw cooldown
func (c *gameController) Draw(ctx context.Context, chatID, callerID int64) (*interfaces.DrawResult, error) {
	if err := c.cooldowns.Allow(chatID, callerID, ActionDraw); err != nil {
		c.metrics.RecordOperation(ctx, "game_draw", string(entities.KindRateLimited), 0)
		return nil, err
	}
	result, err := run(ctx, c, chatID, "game_draw", func(s scope) (*interfaces.DrawResult, error) {
		return s.games.Draw(ctx, chatID, callerID)
	})
	if err == nil {
		c.metrics.RecordDraw(ctx)
	}
	return result, err
}

func (c *gameController) ResetDraws(ctx context.Context, chatID, callerID int64) (*entities.GameSession, error) {
	return run(ctx, c, chatID, "game_reset", func(s scope) (*entities.GameSession, error) {
		return s.games.ResetDraws(ctx, chatID, callerID)
	})
}

func (c *gameController) ToggleRemove(ctx context.Context, chatID, callerID int64) (*entities.GameSession, error) {
	return run(ctx, c, chatID, "game_toggle", func(s scope) (*entities.GameSession, error) {
		return s.games.ToggleRemove(ctx, chatID, callerID)
	})
}

// CheckTicket checks a claim, subject to the player's check cooldown
func (c *gameController) CheckTicket(ctx context.Context, chatID int64, player entities.Participant, claim string) (*entities.ClaimResult, error) {
	if err := c.cooldowns.Allow(chatID, player.PlayerID, ActionCheck); err != nil {
		c.metrics.RecordOperation(ctx, "game_check", string(entities.KindRateLimited), 0)
		return nil, err
	}
	return run(ctx, c, chatID, "game_check", func(s scope) (*entities.ClaimResult, error) {
		return s.games.CheckTicket(ctx, chatID, player, claim)
	})
}

func (c *gameController) UndoLastWin(ctx context.Context, chatID, playerID int64) (*entities.WinnerRecord, error) {
	return run(ctx, c, chatID, "game_unwin", func(s scope) (*entities.WinnerRecord, error) {
		return s.games.UndoLastWin(ctx, chatID, playerID)
	})
}

func (c *gameController) WaitForNumbers(ctx context.Context, chatID int64, player entities.Participant, numbers string) (*entities.WaitResult, error) {
	return run(ctx, c, chatID, "game_wait", func(s scope) (*entities.WaitResult, error) {
		return s.games.WaitForNumbers(ctx, chatID, player, numbers)
	})
}

func (c *gameController) EndGame(ctx context.Context, chatID, callerID int64) (*interfaces.GameEndResult, error) {
	result, err := run(ctx, c, chatID, "game_end", func(s scope) (*interfaces.GameEndResult, error) {
		return s.games.EndGame(ctx, chatID, callerID)
	})
	if err == nil {
		holders := len(result.Record.Participants)
		c.metrics.RecordGameEnded(ctx, holders, len(result.Record.DistinctWinnerNames()), float64(holders)*result.Record.Bet)
	}
	return result, err
}

func (c *gameController) AbandonGame(ctx context.Context, chatID, callerID int64) error {
	return run0(ctx, c, chatID, "game_abandon", func(s scope) error {
		return s.games.AbandonGame(ctx, chatID, callerID)
	})
}

func (c *gameController) ClaimTicket(ctx context.Context, chatID int64, player entities.Participant, code string) (*interfaces.TicketClaimResult, error) {
	return run(ctx, c, chatID, "ticket_claim", func(s scope) (*interfaces.TicketClaimResult, error) {
		return s.games.ClaimTicket(ctx, chatID, player, code)
	})
}

func (c *gameController) ReleaseTicket(ctx context.Context, chatID, playerID int64) (string, error) {
	return run(ctx, c, chatID, "ticket_release", func(s scope) (string, error) {
		return s.games.ReleaseTicket(ctx, chatID, playerID)
	})
}

func (c *gameController) ListTickets(ctx context.Context, chatID int64) ([]entities.TicketSlot, error) {
	return run(ctx, c, chatID, "ticket_list", func(s scope) ([]entities.TicketSlot, error) {
		return s.games.ListTickets(ctx, chatID)
	})
}

func (c *gameController) GetStatus(ctx context.Context, chatID int64) (*interfaces.GameStatus, error) {
	return run(ctx, c, chatID, "game_status", func(s scope) (*interfaces.GameStatus, error) {
		return s.games.GetStatus(ctx, chatID)
	})
}

func (c *gameController) GetHistory(ctx context.Context, chatID int64, limit int) ([]entities.DrawEntry, error) {
	return run(ctx, c, chatID, "game_history", func(s scope) ([]entities.DrawEntry, error) {
		return s.games.GetHistory(ctx, chatID, limit)
	})
}

func (c *gameController) GetParticipants(ctx context.Context, chatID int64) ([]interfaces.ParticipantView, error) {
	return run(ctx, c, chatID, "game_players", func(s scope) ([]interfaces.ParticipantView, error) {
		return s.games.GetParticipants(ctx, chatID)
	})
}

func (c *gameController) GetLastResult(ctx context.Context, chatID int64) (*entities.GameRecord, error) {
	return run(ctx, c, chatID, "last_result", func(s scope) (*entities.GameRecord, error) {
		return s.games.GetLastResult(ctx, chatID)
	})
}

func (c *gameController) LifetimeLeaderboard(ctx context.Context, chatID int64, n int) ([]*entities.PlayerStatEntry, error) {
	return run(ctx, c, chatID, "lifetime_leaderboard", func(s scope) ([]*entities.PlayerStatEntry, error) {
		return s.games.LifetimeLeaderboard(ctx, chatID, n)
	})
}
