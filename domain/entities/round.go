package entities

import (
	"slices"
	"time"
)

// Round is a named grouping of games in one chat with its own token economy
type Round struct {
	ID        int64     `db:"id"`
	ChatID    int64     `db:"chat_id"`
	Name      string    `db:"name"`
	OwnerID   int64     `db:"owner_id"`
	OwnerName string    `db:"owner_name"`
	CreatedAt time.Time `db:"created_at"`
}

// PlayerPayout is one player's token delta for a finished game
type PlayerPayout struct {
	PlayerID int64   `json:"playerId"`
	Name     string  `json:"name"`
	Delta    float64 `json:"delta"`
	Won      bool    `json:"won"`
}

// GameRecord is the immutable archive of a finished game
type GameRecord struct {
	ID            int64          `json:"id"`
	RoundID       *int64         `json:"roundId,omitempty"`
	ChatID        int64          `json:"chatId"`
	RoundName     string         `json:"roundName"`
	GameName      string         `json:"gameName"`
	HostID        int64          `json:"hostId"`
	HostName      string         `json:"hostName"`
	Winners       []WinnerRecord `json:"winners"`
	Participants  []Participant  `json:"participants"` // ticket holders only
	NumberOfDraws int            `json:"numberOfDraws"`
	Bet           float64        `json:"bet"`
	Payouts       []PlayerPayout `json:"payouts"`
	EndedAt       time.Time      `json:"endedAt"`
}

// NewGameRecord snapshots a finished session. Slices are copied so later
// changes to the session or ledger never reach the archive.
func NewGameRecord(s *GameSession, payouts []PlayerPayout, bet float64, now time.Time) *GameRecord {
	winners := make([]WinnerRecord, len(s.Winners))
	for i, w := range s.Winners {
		winners[i] = w
		winners[i].Numbers = slices.Clone(w.Numbers)
	}

	return &GameRecord{
		ChatID:        s.ChatID,
		RoundName:     s.RoundName,
		GameName:      s.GameName,
		HostID:        s.OwnerID,
		HostName:      s.OwnerName,
		Winners:       winners,
		Participants:  s.TicketHolders(),
		NumberOfDraws: s.DrawCount,
		Bet:           bet,
		Payouts:       slices.Clone(payouts),
		EndedAt:       now,
	}
}

// DistinctWinnerNames returns winner names once each, in first-win order
func (r *GameRecord) DistinctWinnerNames() []string {
	seen := make(map[int64]bool)
	var names []string
	for _, w := range r.Winners {
		if seen[w.PlayerID] {
			continue
		}
		seen[w.PlayerID] = true
		names = append(names, w.Name)
	}
	return names
}
