package entities

import (
	"slices"
	"strconv"
	"strings"
	"time"
)

// DefaultWinThreshold is the number of distinct drawn numbers a winning claim needs
const DefaultWinThreshold = 5

// ClaimResult is the outcome of checking a player's claimed numbers
type ClaimResult struct {
	Matched []int    // distinct, drawn
	Pending []int    // distinct, in range but not drawn yet
	Invalid []string // malformed or out of range tokens, as given
	IsWin   bool
	Winner  *WinnerRecord
}

// SplitClaimTokens splits free text on whitespace and the separators , ; |
func SplitClaimTokens(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		switch r {
		case ',', ';', '|', ' ', '\t', '\n', '\r':
			return true
		}
		return false
	})
}

// EvaluateClaim partitions tokens into matched, pending and invalid. A claim
// wins when it has at least threshold distinct matched numbers and nothing
// pending or invalid.
func (s *GameSession) EvaluateClaim(tokens []string, threshold int) ClaimResult {
	drawn := s.DrawnNumbers()
	matchedSet := make(map[int]bool)
	pendingSet := make(map[int]bool)
	result := ClaimResult{Matched: []int{}, Pending: []int{}, Invalid: []string{}}

	for _, token := range tokens {
		n, err := strconv.Atoi(strings.TrimSpace(token))
		if err != nil || !s.InRange(n) {
			result.Invalid = append(result.Invalid, token)
			continue
		}
		if drawn[n] {
			matchedSet[n] = true
		} else {
			pendingSet[n] = true
		}
	}

	for n := range matchedSet {
		result.Matched = append(result.Matched, n)
	}
	for n := range pendingSet {
		result.Pending = append(result.Pending, n)
	}
	slices.Sort(result.Matched)
	slices.Sort(result.Pending)

	result.IsWin = len(result.Matched) >= threshold && len(result.Pending) == 0 && len(result.Invalid) == 0
	return result
}

// CheckClaim evaluates a ticket holder's claim on a started game and records a
// WinnerRecord when it wins. Repeat wins by the same player are all recorded.
func (s *GameSession) CheckClaim(p Participant, tokens []string, threshold int, now time.Time) (ClaimResult, error) {
	if !s.Started {
		return ClaimResult{}, NewGameError(KindNotStarted, "game has not started yet")
	}
	if _, ok := s.PlayerTickets[p.PlayerID]; !ok {
		return ClaimResult{}, NewGameError(KindPermission, "only ticket holders can check numbers")
	}
	if len(tokens) == 0 {
		return ClaimResult{}, NewGameError(KindValidation, "no numbers to check")
	}

	result := s.EvaluateClaim(tokens, threshold)
	if result.IsWin {
		name := p.Name
		if stored, ok := s.Participant(p.PlayerID); ok && name == "" {
			name = stored.Name
		}
		winner := WinnerRecord{
			PlayerID: p.PlayerID,
			Name:     name,
			Numbers:  slices.Clone(result.Matched),
			Time:     now,
		}
		s.Winners = append(s.Winners, winner)
		s.UpdatedAt = now
		result.Winner = &winner
	}
	return result, nil
}
