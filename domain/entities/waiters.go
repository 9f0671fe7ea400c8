package entities

import (
	"slices"
	"strconv"
	"strings"
	"time"
)

// Waiter is a player waiting for a specific number to be drawn
type Waiter struct {
	PlayerID int64  `json:"playerId"`
	Name     string `json:"name"`
}

// WaitResult reports how a wait registration was handled per token
type WaitResult struct {
	Registered     []int
	AlreadyWaiting []int
	AlreadyDrawn   []int
	Invalid        []string
}

// RegisterWaiter records that p wants to be notified when any of the numbers in
// tokens is drawn. Each player is registered at most once per number.
func (s *GameSession) RegisterWaiter(p Participant, tokens []string, now time.Time) (WaitResult, error) {
	if len(tokens) == 0 {
		return WaitResult{}, NewGameError(KindValidation, "no numbers to wait for")
	}

	drawn := s.DrawnNumbers()
	result := WaitResult{}
	seen := make(map[int]bool)
	for _, token := range tokens {
		n, err := strconv.Atoi(strings.TrimSpace(token))
		if err != nil || !s.InRange(n) {
			result.Invalid = append(result.Invalid, token)
			continue
		}
		if seen[n] {
			continue
		}
		seen[n] = true

		if drawn[n] && s.RemoveAfterDraw {
			result.AlreadyDrawn = append(result.AlreadyDrawn, n)
			continue
		}
		waiters := s.WaitingNumbers[n]
		if slices.ContainsFunc(waiters, func(w Waiter) bool { return w.PlayerID == p.PlayerID }) {
			result.AlreadyWaiting = append(result.AlreadyWaiting, n)
			continue
		}
		s.WaitingNumbers[n] = append(waiters, Waiter{PlayerID: p.PlayerID, Name: p.Name})
		result.Registered = append(result.Registered, n)
	}

	if len(result.Registered) > 0 {
		s.UpdatedAt = now
	}
	return result, nil
}

func (s *GameSession) popWaiters(number int) []Waiter {
	waiters, ok := s.WaitingNumbers[number]
	if !ok {
		return nil
	}
	delete(s.WaitingNumbers, number)
	return waiters
}
