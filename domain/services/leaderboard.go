package services

import (
	"slices"

	"lotobot/domain/entities"
	"lotobot/domain/interfaces"
)

// TopGainers returns entries with a positive balance, highest first
func TopGainers(entries []*entities.LedgerEntry, n int) []*entities.LedgerEntry {
	gainers := filterEntries(entries, func(e *entities.LedgerEntry) bool { return e.WinBalance > 0 })
	slices.SortStableFunc(gainers, func(a, b *entities.LedgerEntry) int {
		return compareFloatDesc(a.WinBalance, b.WinBalance)
	})
	return limit(gainers, n)
}

// TopLosers returns entries with a negative balance, most negative first
func TopLosers(entries []*entities.LedgerEntry, n int) []*entities.LedgerEntry {
	losers := filterEntries(entries, func(e *entities.LedgerEntry) bool { return e.WinBalance < 0 })
	slices.SortStableFunc(losers, func(a, b *entities.LedgerEntry) int {
		return compareFloatDesc(b.WinBalance, a.WinBalance)
	})
	return limit(losers, n)
}

// TopParticipants returns entries by participation count, highest first
func TopParticipants(entries []*entities.LedgerEntry, n int) []*entities.LedgerEntry {
	all := filterEntries(entries, func(*entities.LedgerEntry) bool { return true })
	slices.SortStableFunc(all, func(a, b *entities.LedgerEntry) int {
		return b.ParticipationCount - a.ParticipationCount
	})
	return limit(all, n)
}

// TopWinners returns lifetime stats entries with at least one win, most wins first
func TopWinners(entries []*entities.PlayerStatEntry, n int) []*entities.PlayerStatEntry {
	winners := make([]*entities.PlayerStatEntry, 0, len(entries))
	for _, e := range entries {
		if e.Wins > 0 {
			winners = append(winners, e)
		}
	}
	slices.SortStableFunc(winners, func(a, b *entities.PlayerStatEntry) int {
		return a.Position - b.Position
	})
	slices.SortStableFunc(winners, func(a, b *entities.PlayerStatEntry) int {
		return b.Wins - a.Wins
	})
	return limit(winners, n)
}

// BuildLeaderboard computes all three ledger rankings
func BuildLeaderboard(ledger *entities.TokenLedger, n int) *interfaces.Leaderboard {
	return &interfaces.Leaderboard{
		Gainers:      TopGainers(ledger.Entries, n),
		Losers:       TopLosers(ledger.Entries, n),
		Participants: TopParticipants(ledger.Entries, n),
	}
}

// filterEntries copies matching entries in first-seen order so ties stay deterministic
func filterEntries(entries []*entities.LedgerEntry, keep func(*entities.LedgerEntry) bool) []*entities.LedgerEntry {
	out := make([]*entities.LedgerEntry, 0, len(entries))
	for _, e := range entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, func(a, b *entities.LedgerEntry) int {
		return a.Position - b.Position
	})
	return out
}

func compareFloatDesc(a, b float64) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	default:
		return 0
	}
}

func limit[T any](items []T, n int) []T {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}
