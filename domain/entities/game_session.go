package entities

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

const (
	// MaxPoolSize is the largest number range a game may use
	MaxPoolSize = 90

	// HistoryLimit caps the number of draws kept in a session's history
	HistoryLimit = 1000

	DefaultRangeStart = 1
	DefaultRangeEnd   = 90
)

// GameState is the lifecycle state of a live game session
type GameState string

const (
	GameStateCreated GameState = "created"
	GameStateStarted GameState = "started"
)

// DrawEntry is one number drawn from the pool
type DrawEntry struct {
	Number int       `json:"number"`
	Time   time.Time `json:"time"`
}

// Participant is a player taking part in a game
type Participant struct {
	PlayerID int64  `json:"playerId"`
	Name     string `json:"name"`
}

// WinnerRecord is a successful win declaration
type WinnerRecord struct {
	PlayerID int64     `json:"playerId"`
	Name     string    `json:"name"`
	Numbers  []int     `json:"numbers"`
	Time     time.Time `json:"time"`
}

// GameSession is the live state of one game in a chat. The JSON form is the
// persisted session state.
type GameSession struct {
	ID               string              `json:"id"`
	ChatID           int64               `json:"chatId"`
	StartNumber      int                 `json:"startNumber"`
	EndNumber        int                 `json:"endNumber"`
	RemoveAfterDraw  bool                `json:"removeAfterDraw"`
	AvailableNumbers []int               `json:"availableNumbers"`
	RemovedNumbers   []int               `json:"removedNumbers"`
	LastDrawn        *int                `json:"lastDrawn"`
	DrawCount        int                 `json:"drawCount"`
	CreatedAt        time.Time           `json:"createdAt"`
	UpdatedAt        time.Time           `json:"updatedAt"`
	LastActivityAt   time.Time           `json:"lastActivityAt"`
	History          []DrawEntry         `json:"history"`
	GameName         string              `json:"gameName"`
	OwnerID          int64               `json:"ownerId"`
	OwnerName        string              `json:"ownerName"`
	RoundName        string              `json:"roundName"`
	Participants     []Participant       `json:"participants"`
	Started          bool                `json:"started"`
	Winners          []WinnerRecord      `json:"winners"`
	Tickets          map[string]int64    `json:"tickets"`
	PlayerTickets    map[int64]string    `json:"playerTickets"`
	WaitingNumbers   map[int][]Waiter    `json:"waitingNumbers"`
}

// ValidateRange checks that [start, end] is a usable number range
func ValidateRange(start, end int) error {
	if start < 0 {
		return NewGameError(KindValidation, "range start must not be negative (got %d)", start)
	}
	if start > end {
		return NewGameError(KindValidation, "range start %d is greater than end %d", start, end)
	}
	if size := end - start + 1; size > MaxPoolSize {
		return NewGameError(KindValidation, "range holds %d numbers, at most %d allowed", size, MaxPoolSize)
	}
	return nil
}

// NewGameSession creates a session in the created state with the host as its first participant
func NewGameSession(chatID int64, gameName, roundName string, start, end int, removeAfterDraw bool, host Participant, now time.Time) (*GameSession, error) {
	if err := ValidateRange(start, end); err != nil {
		return nil, err
	}

	s := &GameSession{
		ID:              uuid.New().String(),
		ChatID:          chatID,
		StartNumber:     start,
		EndNumber:       end,
		RemoveAfterDraw: removeAfterDraw,
		CreatedAt:       now,
		UpdatedAt:       now,
		LastActivityAt:  now,
		GameName:        gameName,
		OwnerID:         host.PlayerID,
		OwnerName:       host.Name,
		RoundName:       roundName,
	}
	s.Normalize()
	s.AvailableNumbers = fullRange(start, end)
	s.AddParticipant(host)
	return s, nil
}

// Normalize replaces nil collections with empty ones, e.g. after decoding
func (s *GameSession) Normalize() {
	if s.AvailableNumbers == nil {
		s.AvailableNumbers = []int{}
	}
	if s.RemovedNumbers == nil {
		s.RemovedNumbers = []int{}
	}
	if s.History == nil {
		s.History = []DrawEntry{}
	}
	if s.Participants == nil {
		s.Participants = []Participant{}
	}
	if s.Winners == nil {
		s.Winners = []WinnerRecord{}
	}
	if s.Tickets == nil {
		s.Tickets = make(map[string]int64)
	}
	if s.PlayerTickets == nil {
		s.PlayerTickets = make(map[int64]string)
	}
	if s.WaitingNumbers == nil {
		s.WaitingNumbers = make(map[int][]Waiter)
	}
}

// State returns the lifecycle state
func (s *GameSession) State() GameState {
	if s.Started {
		return GameStateStarted
	}
	return GameStateCreated
}

// IsHost reports whether playerID created this game
func (s *GameSession) IsHost(playerID int64) bool {
	return s.OwnerID == playerID
}

// IsExpired reports whether the session has been idle for longer than timeout.
// A non-positive timeout disables expiry.
func (s *GameSession) IsExpired(now time.Time, timeout time.Duration) bool {
	if timeout <= 0 || s.LastActivityAt.IsZero() {
		return false
	}
	return now.Sub(s.LastActivityAt) > timeout
}

// Start moves the session from created to started
func (s *GameSession) Start(now time.Time) error {
	if s.Started {
		return NewGameError(KindAlreadyStarted, "game has already started")
	}
	s.Started = true
	s.UpdatedAt = now
	return nil
}

// Host returns the host as a participant
func (s *GameSession) Host() Participant {
	return Participant{PlayerID: s.OwnerID, Name: s.OwnerName}
}

// AddParticipant registers p, refreshing the stored name if already present.
// Returns true when p was newly added.
func (s *GameSession) AddParticipant(p Participant) bool {
	for i := range s.Participants {
		if s.Participants[i].PlayerID == p.PlayerID {
			if p.Name != "" {
				s.Participants[i].Name = p.Name
			}
			return false
		}
	}
	s.Participants = append(s.Participants, p)
	return true
}

// RemoveParticipant drops the participant with playerID, returning true if found
func (s *GameSession) RemoveParticipant(playerID int64) bool {
	idx := slices.IndexFunc(s.Participants, func(p Participant) bool {
		return p.PlayerID == playerID
	})
	if idx < 0 {
		return false
	}
	s.Participants = slices.Delete(s.Participants, idx, idx+1)
	return true
}

// Participant returns the participant record for playerID
func (s *GameSession) Participant(playerID int64) (Participant, bool) {
	for _, p := range s.Participants {
		if p.PlayerID == playerID {
			return p, true
		}
	}
	return Participant{}, false
}

// DistinctWinnerIDs returns each winning player once, in first-win order
func (s *GameSession) DistinctWinnerIDs() []int64 {
	seen := make(map[int64]bool, len(s.Winners))
	ids := make([]int64, 0, len(s.Winners))
	for _, w := range s.Winners {
		if seen[w.PlayerID] {
			continue
		}
		seen[w.PlayerID] = true
		ids = append(ids, w.PlayerID)
	}
	return ids
}

// UndoLastWin removes the most recent win declared by playerID
func (s *GameSession) UndoLastWin(playerID int64, now time.Time) (WinnerRecord, error) {
	for i := len(s.Winners) - 1; i >= 0; i-- {
		if s.Winners[i].PlayerID == playerID {
			removed := s.Winners[i]
			s.Winners = slices.Delete(s.Winners, i, i+1)
			s.UpdatedAt = now
			return removed, nil
		}
	}
	return WinnerRecord{}, NewGameError(KindNotFound, "no win recorded for this player")
}

func fullRange(start, end int) []int {
	numbers := make([]int, 0, end-start+1)
	for n := start; n <= end; n++ {
		numbers = append(numbers, n)
	}
	return numbers
}
