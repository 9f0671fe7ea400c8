package entities

// PlayerStatEntry is a player's lifetime record in a chat. Rounds never reset it.
type PlayerStatEntry struct {
	PlayerID       int64  `db:"player_id"`
	DisplayName    string `db:"display_name"`
	Wins           int    `db:"wins"`
	Participations int    `db:"participations"`
	Position       int    `db:"position"`
}

// PlayerStats holds the lifetime entries of one chat in first-seen order
type PlayerStats struct {
	ChatID  int64
	Entries []*PlayerStatEntry
}

// NewPlayerStats returns empty stats for chatID
func NewPlayerStats(chatID int64) *PlayerStats {
	return &PlayerStats{ChatID: chatID, Entries: []*PlayerStatEntry{}}
}

// Entry returns the entry for playerID, or nil
func (ps *PlayerStats) Entry(playerID int64) *PlayerStatEntry {
	for _, e := range ps.Entries {
		if e.PlayerID == playerID {
			return e
		}
	}
	return nil
}

// RecordGame counts a participation for every participant and one win for each
// distinct winner
func (ps *PlayerStats) RecordGame(participants []Participant, winners []WinnerRecord) {
	for _, p := range participants {
		ps.ensure(p.PlayerID, p.Name).Participations++
	}
	counted := make(map[int64]bool)
	for _, w := range winners {
		if counted[w.PlayerID] {
			continue
		}
		counted[w.PlayerID] = true
		ps.ensure(w.PlayerID, w.Name).Wins++
	}
}

func (ps *PlayerStats) ensure(playerID int64, name string) *PlayerStatEntry {
	if e := ps.Entry(playerID); e != nil {
		if name != "" {
			e.DisplayName = name
		}
		return e
	}
	e := &PlayerStatEntry{
		PlayerID:    playerID,
		DisplayName: name,
		Position:    len(ps.Entries),
	}
	ps.Entries = append(ps.Entries, e)
	return e
}
