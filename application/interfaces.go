package application

import (
	"context"
	"time"

	"lotobot/domain/interfaces"
)

// GameController is the entry point the chat transport calls. Every operation
// runs under the chat's lock inside its own unit of work.
type GameController interface {
	interfaces.GameService
	interfaces.RoundService
}

// Metrics records controller level measurements
type Metrics interface {
	// RecordOperation records one controller operation and its outcome kind ("" on success)
	RecordOperation(ctx context.Context, operation string, outcome string, duration time.Duration)

	// RecordDraw records a drawn number
	RecordDraw(ctx context.Context)

	// RecordGameEnded records a settled game
	RecordGameEnded(ctx context.Context, ticketHolders, winners int, pot float64)
}

type noopMetrics struct{}

func (noopMetrics) RecordOperation(context.Context, string, string, time.Duration) {}
func (noopMetrics) RecordDraw(context.Context)                                      {}
func (noopMetrics) RecordGameEnded(context.Context, int, int, float64)              {}
