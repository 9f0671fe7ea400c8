package entities

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"slices"
	"time"
)

// Draw picks a uniformly random number from the available pool. With removal
// on, the number moves to the removed set; otherwise the pool is untouched and
// the number may come up again. Waiters registered on the number are returned
// and cleared.
func (s *GameSession) Draw(now time.Time) (int, []Waiter, error) {
	if !s.Started {
		return 0, nil, NewGameError(KindNotStarted, "game has not started yet")
	}
	if len(s.AvailableNumbers) == 0 {
		return 0, nil, NewGameError(KindPoolExhausted, "all %d numbers have been drawn", s.TotalNumbers())
	}

	idx, err := randomIndex(len(s.AvailableNumbers))
	if err != nil {
		return 0, nil, err
	}
	number := s.AvailableNumbers[idx]

	if s.RemoveAfterDraw {
		s.AvailableNumbers = slices.Delete(s.AvailableNumbers, idx, idx+1)
		s.RemovedNumbers = insertSorted(s.RemovedNumbers, number)
	}

	s.History = append(s.History, DrawEntry{Number: number, Time: now})
	if len(s.History) > HistoryLimit {
		s.History = slices.Clone(s.History[len(s.History)-HistoryLimit:])
	}
	s.LastDrawn = &number
	s.DrawCount++
	s.UpdatedAt = now
	s.LastActivityAt = now

	return number, s.popWaiters(number), nil
}

// ResetDraws restores the full pool and clears all draw history. Participants,
// tickets, winners and waiters are kept.
func (s *GameSession) ResetDraws(now time.Time) {
	s.AvailableNumbers = fullRange(s.StartNumber, s.EndNumber)
	s.RemovedNumbers = []int{}
	s.History = []DrawEntry{}
	s.LastDrawn = nil
	s.DrawCount = 0
	s.UpdatedAt = now
}

// SetRange changes the number range of a game that has not started and resets its draws
func (s *GameSession) SetRange(start, end int, now time.Time) error {
	if s.Started {
		return NewGameError(KindGameStarted, "the range cannot change after the game has started")
	}
	if err := ValidateRange(start, end); err != nil {
		return err
	}
	s.StartNumber = start
	s.EndNumber = end
	s.WaitingNumbers = make(map[int][]Waiter)
	s.ResetDraws(now)
	return nil
}

// ToggleRemove flips draw-without-replacement mode. Turning it off restores the
// full pool; turning it on removes every number drawn since the last reset.
func (s *GameSession) ToggleRemove(now time.Time) bool {
	s.RemoveAfterDraw = !s.RemoveAfterDraw
	if s.RemoveAfterDraw {
		drawn := s.DrawnNumbers()
		s.AvailableNumbers = s.AvailableNumbers[:0]
		s.RemovedNumbers = []int{}
		for n := s.StartNumber; n <= s.EndNumber; n++ {
			if drawn[n] {
				s.RemovedNumbers = append(s.RemovedNumbers, n)
			} else {
				s.AvailableNumbers = append(s.AvailableNumbers, n)
			}
		}
	} else {
		s.AvailableNumbers = fullRange(s.StartNumber, s.EndNumber)
		s.RemovedNumbers = []int{}
	}
	s.UpdatedAt = now
	return s.RemoveAfterDraw
}

// DrawnNumbers returns the set of numbers drawn since the last reset
func (s *GameSession) DrawnNumbers() map[int]bool {
	drawn := make(map[int]bool, len(s.History))
	for _, entry := range s.History {
		drawn[entry.Number] = true
	}
	return drawn
}

// InRange reports whether n lies within the game's number range
func (s *GameSession) InRange(n int) bool {
	return n >= s.StartNumber && n <= s.EndNumber
}

// TotalNumbers returns the size of the number range
func (s *GameSession) TotalNumbers() int {
	return s.EndNumber - s.StartNumber + 1
}

// RemainingCount returns how many numbers can still be drawn
func (s *GameSession) RemainingCount() int {
	return len(s.AvailableNumbers)
}

// RecentHistory returns at most the last limit draws, oldest first. A
// non-positive limit returns the whole history.
func (s *GameSession) RecentHistory(limit int) []DrawEntry {
	if limit <= 0 || limit >= len(s.History) {
		return slices.Clone(s.History)
	}
	return slices.Clone(s.History[len(s.History)-limit:])
}

func randomIndex(n int) (int, error) {
	idx, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("failed to generate random index: %w", err)
	}
	return int(idx.Int64()), nil
}

func insertSorted(numbers []int, n int) []int {
	idx, found := slices.BinarySearch(numbers, n)
	if found {
		return numbers
	}
	return slices.Insert(numbers, idx, n)
}
