package entities

// LedgerEntry is a player's running token balance within the active round
type LedgerEntry struct {
	PlayerID           int64   `db:"player_id"`
	DisplayName        string  `db:"display_name"`
	WinBalance         float64 `db:"win_balance"`
	ParticipationCount int     `db:"participation_count"`
	Position           int     `db:"position"` // first-seen order
}

// TokenLedger holds every ledger entry of one chat, in first-seen order
type TokenLedger struct {
	ChatID  int64
	Entries []*LedgerEntry
}

// NewTokenLedger returns an empty ledger for chatID
func NewTokenLedger(chatID int64) *TokenLedger {
	return &TokenLedger{ChatID: chatID, Entries: []*LedgerEntry{}}
}

// Entry returns the entry for playerID, or nil
func (l *TokenLedger) Entry(playerID int64) *LedgerEntry {
	for _, e := range l.Entries {
		if e.PlayerID == playerID {
			return e
		}
	}
	return nil
}

func (l *TokenLedger) ensure(playerID int64, name string) *LedgerEntry {
	if e := l.Entry(playerID); e != nil {
		if name != "" {
			e.DisplayName = name
		}
		return e
	}
	e := &LedgerEntry{
		PlayerID:    playerID,
		DisplayName: name,
		Position:    len(l.Entries),
	}
	l.Entries = append(l.Entries, e)
	return e
}

// RecordParticipation adds one participation for every participant
func (l *TokenLedger) RecordParticipation(participants []Participant) {
	for _, p := range participants {
		l.ensure(p.PlayerID, p.Name).ParticipationCount++
	}
}

// ApplyPayouts adds each payout delta to the player's balance
func (l *TokenLedger) ApplyPayouts(payouts []PlayerPayout) {
	for _, p := range payouts {
		l.ensure(p.PlayerID, p.Name).WinBalance += p.Delta
	}
}

// Reset clears every entry
func (l *TokenLedger) Reset() {
	l.Entries = []*LedgerEntry{}
}
