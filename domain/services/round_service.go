package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lotobot/domain/entities"
	"lotobot/domain/events"
	"lotobot/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

type roundService struct {
	roundRepo      interfaces.RoundRepository
	sessionRepo    interfaces.GameSessionRepository
	ledgerRepo     interfaces.LedgerRepository
	eventPublisher interfaces.EventPublisher
	sessionTimeout time.Duration
}

// NewRoundService creates a new round service
func NewRoundService(
	roundRepo interfaces.RoundRepository,
	sessionRepo interfaces.GameSessionRepository,
	ledgerRepo interfaces.LedgerRepository,
	eventPublisher interfaces.EventPublisher,
	sessionTimeout time.Duration,
) interfaces.RoundService {
	return &roundService{
		roundRepo:      roundRepo,
		sessionRepo:    sessionRepo,
		ledgerRepo:     ledgerRepo,
		eventPublisher: eventPublisher,
		sessionTimeout: sessionTimeout,
	}
}

// StartRound opens a round and resets the chat's token ledger
func (s *roundService) StartRound(ctx context.Context, chatID int64, name string, owner entities.Participant) (*entities.Round, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, entities.NewGameError(entities.KindValidation, "round name cannot be empty")
	}

	existing, err := s.roundRepo.LoadActiveRound(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load active round: %w", err)
	}
	if existing != nil {
		return nil, entities.NewGameError(entities.KindConflict, "round %q is still active, end it first", existing.Name)
	}

	session, err := s.loadOpenSession(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if session != nil {
		return nil, entities.NewGameError(entities.KindConflict, "a game is still open in this chat")
	}

	if err := s.ledgerRepo.ResetTokenLedger(ctx); err != nil {
		return nil, fmt.Errorf("failed to reset token ledger: %w", err)
	}

	round := &entities.Round{
		ChatID:    chatID,
		Name:      name,
		OwnerID:   owner.PlayerID,
		OwnerName: owner.Name,
	}
	if err := s.roundRepo.SaveActiveRound(ctx, round); err != nil {
		return nil, fmt.Errorf("failed to save round: %w", err)
	}

	log.WithFields(log.Fields{
		"chat_id":  chatID,
		"round_id": round.ID,
		"name":     round.Name,
		"owner_id": owner.PlayerID,
	}).Info("Round started")

	s.publish(events.RoundStartedEvent{
		ChatID:    chatID,
		RoundID:   round.ID,
		RoundName: round.Name,
		OwnerID:   owner.PlayerID,
	})
	return round, nil
}

// EndRound closes the active round, returning its final leaderboard
func (s *roundService) EndRound(ctx context.Context, chatID int64) (*interfaces.RoundEndResult, error) {
	round, err := s.requireActiveRound(ctx)
	if err != nil {
		return nil, err
	}

	session, err := s.loadOpenSession(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if session != nil {
		return nil, entities.NewGameError(entities.KindConflict, "end or abandon the open game before ending the round")
	}

	games, err := s.roundRepo.ListGameRecords(ctx, round.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list game records: %w", err)
	}
	ledger, err := s.ledgerRepo.LoadTokenLedger(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load token ledger: %w", err)
	}

	if err := s.roundRepo.DeleteActiveRound(ctx); err != nil {
		return nil, fmt.Errorf("failed to delete round: %w", err)
	}

	log.WithFields(log.Fields{
		"chat_id":  chatID,
		"round_id": round.ID,
		"games":    len(games),
	}).Info("Round ended")

	s.publish(events.RoundEndedEvent{
		ChatID:    chatID,
		RoundID:   round.ID,
		RoundName: round.Name,
		GameCount: len(games),
	})

	return &interfaces.RoundEndResult{
		Round:       round,
		Games:       games,
		Leaderboard: BuildLeaderboard(ledger, 0),
	}, nil
}

// GetActiveRound returns the active round or nil
func (s *roundService) GetActiveRound(ctx context.Context, chatID int64) (*entities.Round, error) {
	round, err := s.roundRepo.LoadActiveRound(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load active round: %w", err)
	}
	return round, nil
}

// RoundSummary lists the games archived in the active round
func (s *roundService) RoundSummary(ctx context.Context, chatID int64) (*interfaces.RoundSummary, error) {
	round, err := s.requireActiveRound(ctx)
	if err != nil {
		return nil, err
	}
	games, err := s.roundRepo.ListGameRecords(ctx, round.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list game records: %w", err)
	}
	return &interfaces.RoundSummary{Round: round, Games: games}, nil
}

// RoundLeaderboard ranks the active round's ledger
func (s *roundService) RoundLeaderboard(ctx context.Context, chatID int64, n int) (*interfaces.Leaderboard, error) {
	if _, err := s.requireActiveRound(ctx); err != nil {
		return nil, err
	}
	ledger, err := s.ledgerRepo.LoadTokenLedger(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load token ledger: %w", err)
	}
	return BuildLeaderboard(ledger, n), nil
}

func (s *roundService) requireActiveRound(ctx context.Context) (*entities.Round, error) {
	round, err := s.roundRepo.LoadActiveRound(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load active round: %w", err)
	}
	if round == nil {
		return nil, entities.NewGameError(entities.KindNotFound, "no round is active in this chat")
	}
	return round, nil
}

// loadOpenSession returns the chat's session, deleting it first if it has expired
func (s *roundService) loadOpenSession(ctx context.Context, chatID int64) (*entities.GameSession, error) {
	session, err := s.sessionRepo.LoadGameSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load game session: %w", err)
	}
	if session == nil || !session.IsExpired(time.Now(), s.sessionTimeout) {
		return session, nil
	}

	if err := s.sessionRepo.DeleteGameSession(ctx); err != nil {
		return nil, fmt.Errorf("failed to delete expired game session: %w", err)
	}
	log.WithFields(log.Fields{
		"chat_id":    chatID,
		"session_id": session.ID,
	}).Info("Expired game cleared")
	s.publish(events.GameDiscardedEvent{ChatID: chatID, SessionID: session.ID, Reason: events.DiscardReasonExpired})
	return nil, nil
}

func (s *roundService) publish(event events.Event) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(event); err != nil {
		log.WithError(err).WithField("eventType", event.Type()).Error("Failed to publish event")
	}
}
