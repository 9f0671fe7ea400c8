package services

import (
	"context"
	"fmt"
	"time"

	"lotobot/domain/entities"
	"lotobot/domain/events"
	"lotobot/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// gameService implements the game session state machine on top of chat-scoped repositories
type gameService struct {
	sessionRepo    interfaces.GameSessionRepository
	roundRepo      interfaces.RoundRepository
	ledgerRepo     interfaces.LedgerRepository
	resultRepo     interfaces.ResultRepository
	statsRepo      interfaces.PlayerStatsRepository
	eventPublisher interfaces.EventPublisher
	settings       interfaces.GameSettings
}

// NewGameService creates a new game service
func NewGameService(
	sessionRepo interfaces.GameSessionRepository,
	roundRepo interfaces.RoundRepository,
	ledgerRepo interfaces.LedgerRepository,
	resultRepo interfaces.ResultRepository,
	statsRepo interfaces.PlayerStatsRepository,
	eventPublisher interfaces.EventPublisher,
	settings interfaces.GameSettings,
) interfaces.GameService {
	if settings.WinThreshold <= 0 {
		settings.WinThreshold = entities.DefaultWinThreshold
	}
	return &gameService{
		sessionRepo:    sessionRepo,
		roundRepo:      roundRepo,
		ledgerRepo:     ledgerRepo,
		resultRepo:     resultRepo,
		statsRepo:      statsRepo,
		eventPublisher: eventPublisher,
		settings:       settings,
	}
}

// CreateGame opens a new game in the active round with the host as first participant
func (s *gameService) CreateGame(ctx context.Context, chatID int64, req interfaces.CreateGameRequest) (*entities.GameSession, error) {
	round, err := s.roundRepo.LoadActiveRound(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load active round: %w", err)
	}
	if round == nil {
		return nil, entities.NewGameError(entities.KindPrecondition, "start a round before creating a game")
	}

	existing, err := s.sessionRepo.LoadGameSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load game session: %w", err)
	}
	if existing != nil {
		if !existing.IsExpired(time.Now(), s.settings.SessionTimeout) {
			return nil, entities.NewGameError(entities.KindConflict, "a game is already open in this chat")
		}
		if err := s.discard(ctx, existing, events.DiscardReasonExpired); err != nil {
			return nil, err
		}
	}

	start, end := entities.DefaultRangeStart, entities.DefaultRangeEnd
	if req.Start != nil {
		start = *req.Start
	}
	if req.End != nil {
		end = *req.End
	}

	session, err := entities.NewGameSession(chatID, req.Name, round.Name, start, end, req.RemoveAfterDraw, req.Host, time.Now())
	if err != nil {
		return nil, err
	}
	if err := s.sessionRepo.SaveGameSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save game session: %w", err)
	}

	log.WithFields(log.Fields{
		"chat_id":    chatID,
		"session_id": session.ID,
		"host_id":    req.Host.PlayerID,
		"range":      fmt.Sprintf("%d-%d", start, end),
	}).Info("Game created")

	s.publish(events.GameCreatedEvent{
		ChatID:      chatID,
		SessionID:   session.ID,
		HostID:      req.Host.PlayerID,
		StartNumber: start,
		EndNumber:   end,
	})
	return session, nil
}

// SetRange changes the number range before the game starts
func (s *gameService) SetRange(ctx context.Context, chatID, callerID int64, start, end int) (*entities.GameSession, error) {
	session, err := s.loadLiveSession(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireHost(session, callerID, "change the range"); err != nil {
		return nil, err
	}
	if err := session.SetRange(start, end, time.Now()); err != nil {
		return nil, err
	}
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// StartGame locks tickets and allows draws
func (s *gameService) StartGame(ctx context.Context, chatID, callerID int64) (*entities.GameSession, error) {
	session, err := s.loadLiveSession(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireHost(session, callerID, "start the game"); err != nil {
		return nil, err
	}
	if err := session.Start(time.Now()); err != nil {
		return session, err
	}
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"chat_id":        chatID,
		"session_id":     session.ID,
		"ticket_holders": len(session.PlayerTickets),
	}).Info("Game started")

	s.publish(events.GameStartedEvent{
		ChatID:        chatID,
		SessionID:     session.ID,
		TicketHolders: len(session.PlayerTickets),
	})
	return session, nil
}

// Draw draws the next number
func (s *gameService) Draw(ctx context.Context, chatID, callerID int64) (*interfaces.DrawResult, error) {
	session, err := s.loadLiveSession(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireHost(session, callerID, "draw numbers"); err != nil {
		return nil, err
	}

	number, waiters, err := session.Draw(time.Now())
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"chat_id":    chatID,
		"session_id": session.ID,
		"number":     number,
		"draw_count": session.DrawCount,
		"remaining":  session.RemainingCount(),
	}).Debug("Number drawn")

	s.publish(events.NumberDrawnEvent{
		ChatID:    chatID,
		SessionID: session.ID,
		Number:    number,
		DrawCount: session.DrawCount,
		Remaining: session.RemainingCount(),
	})

	return &interfaces.DrawResult{
		Number:    number,
		DrawCount: session.DrawCount,
		Remaining: session.RemainingCount(),
		Waiters:   waiters,
	}, nil
}

// ResetDraws returns every number to the pool
func (s *gameService) ResetDraws(ctx context.Context, chatID, callerID int64) (*entities.GameSession, error) {
	session, err := s.loadLiveSession(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireHost(session, callerID, "reset the draws"); err != nil {
		return nil, err
	}
	session.ResetDraws(time.Now())
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// ToggleRemove flips draw-without-replacement mode
func (s *gameService) ToggleRemove(ctx context.Context, chatID, callerID int64) (*entities.GameSession, error) {
	session, err := s.loadLiveSession(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireHost(session, callerID, "change the draw mode"); err != nil {
		return nil, err
	}
	session.ToggleRemove(time.Now())
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// CheckTicket checks a ticket holder's numbers against the draws so far
func (s *gameService) CheckTicket(ctx context.Context, chatID int64, player entities.Participant, claim string) (*entities.ClaimResult, error) {
	session, err := s.loadLiveSession(ctx)
	if err != nil {
		return nil, err
	}

	result, err := session.CheckClaim(player, entities.SplitClaimTokens(claim), s.settings.WinThreshold, time.Now())
	if err != nil {
		return nil, err
	}
	if !result.IsWin {
		return &result, nil
	}

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"chat_id":    chatID,
		"session_id": session.ID,
		"player_id":  player.PlayerID,
		"numbers":    result.Matched,
	}).Info("Winner declared")

	s.publish(events.WinnerDeclaredEvent{
		ChatID:    chatID,
		SessionID: session.ID,
		PlayerID:  player.PlayerID,
		Numbers:   result.Matched,
	})
	return &result, nil
}

// UndoLastWin removes a player's most recent win
func (s *gameService) UndoLastWin(ctx context.Context, chatID, playerID int64) (*entities.WinnerRecord, error) {
	session, err := s.loadLiveSession(ctx)
	if err != nil {
		return nil, err
	}
	removed, err := session.UndoLastWin(playerID, time.Now())
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"chat_id":   chatID,
		"player_id": playerID,
	}).Info("Win withdrawn")
	return &removed, nil
}

// WaitForNumbers registers a player to be pinged when numbers are drawn
func (s *gameService) WaitForNumbers(ctx context.Context, chatID int64, player entities.Participant, numbers string) (*entities.WaitResult, error) {
	session, err := s.loadLiveSession(ctx)
	if err != nil {
		return nil, err
	}
	result, err := session.RegisterWaiter(player, entities.SplitClaimTokens(numbers), time.Now())
	if err != nil {
		return nil, err
	}
	if len(result.Registered) > 0 {
		if err := s.save(ctx, session); err != nil {
			return nil, err
		}
	}
	return &result, nil
}

// EndGame settles the game: ledger payouts, lifetime stats, archive and last result
func (s *gameService) EndGame(ctx context.Context, chatID, callerID int64) (*interfaces.GameEndResult, error) {
	session, err := s.loadLiveSession(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireHost(session, callerID, "end the game"); err != nil {
		return nil, err
	}

	now := time.Now()
	holders := session.TicketHolders()
	payouts := CalculatePayouts(holders, session.Winners, s.settings.Bet)

	ledger, err := s.ledgerRepo.LoadTokenLedger(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load token ledger: %w", err)
	}
	ledger.RecordParticipation(session.Participants)
	ledger.ApplyPayouts(payouts)
	if err := s.ledgerRepo.SaveTokenLedger(ctx, ledger); err != nil {
		return nil, fmt.Errorf("failed to save token ledger: %w", err)
	}

	stats, err := s.statsRepo.LoadPlayerStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load player stats: %w", err)
	}
	stats.RecordGame(session.Participants, session.Winners)
	if err := s.statsRepo.SavePlayerStats(ctx, stats); err != nil {
		return nil, fmt.Errorf("failed to save player stats: %w", err)
	}

	record := entities.NewGameRecord(session, payouts, s.settings.Bet, now)
	round, err := s.roundRepo.LoadActiveRound(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load active round: %w", err)
	}
	if round != nil {
		record.RoundID = &round.ID
		record.RoundName = round.Name
		if err := s.roundRepo.AppendGameRecord(ctx, record); err != nil {
			return nil, fmt.Errorf("failed to archive game: %w", err)
		}
	} else {
		log.WithField("chat_id", chatID).Warn("Game ended without an active round, archiving as last result only")
	}

	if err := s.resultRepo.SaveLastResult(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save last result: %w", err)
	}
	if err := s.sessionRepo.DeleteGameSession(ctx); err != nil {
		return nil, fmt.Errorf("failed to delete game session: %w", err)
	}

	winnerCount := len(session.DistinctWinnerIDs())
	log.WithFields(log.Fields{
		"chat_id":        chatID,
		"session_id":     session.ID,
		"ticket_holders": len(holders),
		"winners":        winnerCount,
		"draws":          session.DrawCount,
	}).Info("Game ended")

	s.publish(events.GameEndedEvent{
		ChatID:       chatID,
		SessionID:    session.ID,
		Participants: len(holders),
		Winners:      winnerCount,
		Bet:          s.settings.Bet,
		Draws:        session.DrawCount,
	})

	return &interfaces.GameEndResult{
		Record:  record,
		Payouts: payouts,
	}, nil
}

// AbandonGame drops the live game without archiving or paying out
func (s *gameService) AbandonGame(ctx context.Context, chatID, callerID int64) error {
	session, err := s.loadLiveSession(ctx)
	if err != nil {
		return err
	}
	if err := requireHost(session, callerID, "abandon the game"); err != nil {
		return err
	}
	return s.discard(ctx, session, events.DiscardReasonAbandoned)
}

// ClaimTicket gives a player a ticket, swapping out any code they already hold
func (s *gameService) ClaimTicket(ctx context.Context, chatID int64, player entities.Participant, code string) (*interfaces.TicketClaimResult, error) {
	session, err := s.loadLiveSession(ctx)
	if err != nil {
		return nil, err
	}
	released, err := session.ClaimTicket(player, code, time.Now())
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	claimed, _ := session.TicketOf(player.PlayerID)
	log.WithFields(log.Fields{
		"chat_id":   chatID,
		"player_id": player.PlayerID,
		"code":      claimed,
		"released":  released,
	}).Debug("Ticket claimed")

	s.publish(events.TicketChangedEvent{ChatID: chatID, PlayerID: player.PlayerID, Code: claimed, Claimed: true})
	return &interfaces.TicketClaimResult{
		Code:         claimed,
		DisplayName:  entities.TicketDisplayName(claimed),
		ReleasedCode: released,
	}, nil
}

// ReleaseTicket removes a player and their ticket from the game
func (s *gameService) ReleaseTicket(ctx context.Context, chatID, playerID int64) (string, error) {
	session, err := s.loadLiveSession(ctx)
	if err != nil {
		return "", err
	}
	code, err := session.ReleaseTicket(playerID, time.Now())
	if err != nil {
		return "", err
	}
	if err := s.save(ctx, session); err != nil {
		return "", err
	}

	s.publish(events.TicketChangedEvent{ChatID: chatID, PlayerID: playerID, Code: code, Claimed: false})
	return code, nil
}

// ListTickets returns every ticket and its holder
func (s *gameService) ListTickets(ctx context.Context, chatID int64) ([]entities.TicketSlot, error) {
	session, err := s.loadSession(ctx)
	if err != nil {
		return nil, err
	}
	return session.ListTickets(), nil
}

// GetStatus summarizes the live game
func (s *gameService) GetStatus(ctx context.Context, chatID int64) (*interfaces.GameStatus, error) {
	session, err := s.loadSession(ctx)
	if err != nil {
		return nil, err
	}
	return &interfaces.GameStatus{
		GameName:        session.GameName,
		RoundName:       session.RoundName,
		HostID:          session.OwnerID,
		HostName:        session.OwnerName,
		State:           session.State(),
		StartNumber:     session.StartNumber,
		EndNumber:       session.EndNumber,
		RemoveAfterDraw: session.RemoveAfterDraw,
		DrawCount:       session.DrawCount,
		Remaining:       session.RemainingCount(),
		LastDrawn:       session.LastDrawn,
		Participants:    len(session.Participants),
		TicketHolders:   len(session.PlayerTickets),
		Winners:         len(session.DistinctWinnerIDs()),
	}, nil
}

// GetHistory returns the most recent draws, oldest first
func (s *gameService) GetHistory(ctx context.Context, chatID int64, limit int) ([]entities.DrawEntry, error) {
	session, err := s.loadSession(ctx)
	if err != nil {
		return nil, err
	}
	return session.RecentHistory(limit), nil
}

// GetParticipants lists the players with the host first
func (s *gameService) GetParticipants(ctx context.Context, chatID int64) ([]interfaces.ParticipantView, error) {
	session, err := s.loadSession(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]interfaces.ParticipantView, 0, len(session.Participants))
	for _, p := range session.Participants {
		code, _ := session.TicketOf(p.PlayerID)
		view := interfaces.ParticipantView{
			Participant: p,
			IsHost:      session.IsHost(p.PlayerID),
			TicketCode:  code,
		}
		if view.IsHost {
			views = append([]interfaces.ParticipantView{view}, views...)
		} else {
			views = append(views, view)
		}
	}
	return views, nil
}

// GetLastResult returns the chat's most recently finished game
func (s *gameService) GetLastResult(ctx context.Context, chatID int64) (*entities.GameRecord, error) {
	record, err := s.resultRepo.LoadLastResult(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load last result: %w", err)
	}
	if record == nil {
		return nil, entities.NewGameError(entities.KindNotFound, "no game has finished in this chat yet")
	}
	return record, nil
}

// LifetimeLeaderboard ranks players by wins across all rounds
func (s *gameService) LifetimeLeaderboard(ctx context.Context, chatID int64, n int) ([]*entities.PlayerStatEntry, error) {
	stats, err := s.statsRepo.LoadPlayerStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load player stats: %w", err)
	}
	return TopWinners(stats.Entries, n), nil
}

// loadSession loads the chat's session for reading
func (s *gameService) loadSession(ctx context.Context) (*entities.GameSession, error) {
	session, err := s.sessionRepo.LoadGameSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load game session: %w", err)
	}
	if session == nil {
		return nil, entities.NewGameError(entities.KindNotFound, "no game is open in this chat")
	}
	return session, nil
}

// loadLiveSession loads the session for a mutation, discarding it if it has expired
func (s *gameService) loadLiveSession(ctx context.Context) (*entities.GameSession, error) {
	session, err := s.loadSession(ctx)
	if err != nil {
		return nil, err
	}
	if session.IsExpired(time.Now(), s.settings.SessionTimeout) {
		if err := s.discard(ctx, session, events.DiscardReasonExpired); err != nil {
			return nil, err
		}
		return nil, entities.NewGameError(entities.KindExpired, "the game expired after %s without a draw", s.settings.SessionTimeout)
	}
	return session, nil
}

func (s *gameService) discard(ctx context.Context, session *entities.GameSession, reason string) error {
	if err := s.sessionRepo.DeleteGameSession(ctx); err != nil {
		return fmt.Errorf("failed to delete game session: %w", err)
	}

	log.WithFields(log.Fields{
		"chat_id":    session.ChatID,
		"session_id": session.ID,
		"reason":     reason,
	}).Info("Game discarded")

	s.publish(events.GameDiscardedEvent{ChatID: session.ChatID, SessionID: session.ID, Reason: reason})
	return nil
}

func (s *gameService) save(ctx context.Context, session *entities.GameSession) error {
	if err := s.sessionRepo.SaveGameSession(ctx, session); err != nil {
		return fmt.Errorf("failed to save game session: %w", err)
	}
	return nil
}

func (s *gameService) publish(event events.Event) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(event); err != nil {
		log.WithError(err).WithField("eventType", event.Type()).Error("Failed to publish event")
	}
}

func requireHost(session *entities.GameSession, callerID int64, action string) error {
	if !session.IsHost(callerID) {
		return entities.NewGameError(entities.KindPermission, "only the host can %s", action)
	}
	return nil
}
