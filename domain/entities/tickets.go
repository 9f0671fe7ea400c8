package entities

import (
	"strings"
	"time"
)

// TicketCodes is the fixed set of ticket codes, in display order
var TicketCodes = []string{
	"cam1", "cam2",
	"do1", "do2",
	"duong1", "duong2",
	"hong1", "hong2",
	"luc1", "luc2",
	"tim1", "tim2",
	"vang1", "vang2",
	"xanh1", "xanh2",
}

var ticketDisplayNames = map[string]string{
	"cam1":   "Cam số 1",
	"cam2":   "Cam số 2",
	"do1":    "Đỏ số 1",
	"do2":    "Đỏ số 2",
	"duong1": "Dương số 1",
	"duong2": "Dương số 2",
	"hong1":  "Hồng số 1",
	"hong2":  "Hồng số 2",
	"luc1":   "Lục số 1",
	"luc2":   "Lục số 2",
	"tim1":   "Tím số 1",
	"tim2":   "Tím số 2",
	"vang1":  "Vàng số 1",
	"vang2":  "Vàng số 2",
	"xanh1":  "Xanh số 1",
	"xanh2":  "Xanh số 2",
}

// TicketSlot describes one ticket code and who holds it
type TicketSlot struct {
	Code        string
	DisplayName string
	Holder      *Participant // nil when free
}

// TicketDisplayName returns the human readable name of a code, or the code itself
func TicketDisplayName(code string) string {
	if name, ok := ticketDisplayNames[code]; ok {
		return name
	}
	return code
}

// NormalizeTicketCode lower-cases and trims code, reporting whether it is a known ticket
func NormalizeTicketCode(code string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(code))
	_, ok := ticketDisplayNames[normalized]
	return normalized, ok
}

// ClaimTicket assigns code to p and registers p as a participant. A player
// holding another code releases it in the same step; the released code is
// returned ("" if none).
func (s *GameSession) ClaimTicket(p Participant, code string, now time.Time) (string, error) {
	normalized, ok := NormalizeTicketCode(code)
	if !ok {
		return "", NewGameError(KindInvalidCode, "unknown ticket code %q", code)
	}
	if s.Started {
		return "", NewGameError(KindGameStarted, "tickets are locked once the game has started")
	}
	if holder, taken := s.Tickets[normalized]; taken && holder != p.PlayerID {
		return "", NewGameError(KindTicketTaken, "ticket %s is already taken", TicketDisplayName(normalized))
	}

	previous := s.PlayerTickets[p.PlayerID]
	if previous != "" && previous != normalized {
		delete(s.Tickets, previous)
	} else {
		previous = ""
	}

	s.Tickets[normalized] = p.PlayerID
	s.PlayerTickets[p.PlayerID] = normalized
	s.AddParticipant(p)
	s.UpdatedAt = now
	return previous, nil
}

// ReleaseTicket removes the player's ticket and participant record, returning the released code
func (s *GameSession) ReleaseTicket(playerID int64, now time.Time) (string, error) {
	if s.Started {
		return "", NewGameError(KindGameStarted, "players cannot leave once the game has started")
	}
	if s.IsHost(playerID) {
		return "", NewGameError(KindHostCannotLeave, "the host cannot leave; end the game instead")
	}

	code, hasTicket := s.PlayerTickets[playerID]
	removed := s.RemoveParticipant(playerID)
	if !hasTicket && !removed {
		return "", NewGameError(KindNotFound, "player is not in this game")
	}
	if hasTicket {
		delete(s.PlayerTickets, playerID)
		delete(s.Tickets, code)
	}
	s.UpdatedAt = now
	return code, nil
}

// TicketOf returns the code held by playerID
func (s *GameSession) TicketOf(playerID int64) (string, bool) {
	code, ok := s.PlayerTickets[playerID]
	return code, ok
}

// ListTickets returns every ticket code with its holder, in fixed code order
func (s *GameSession) ListTickets() []TicketSlot {
	slots := make([]TicketSlot, 0, len(TicketCodes))
	for _, code := range TicketCodes {
		slot := TicketSlot{Code: code, DisplayName: TicketDisplayName(code)}
		if holderID, ok := s.Tickets[code]; ok {
			holder, found := s.Participant(holderID)
			if !found {
				holder = Participant{PlayerID: holderID}
			}
			slot.Holder = &holder
		}
		slots = append(slots, slot)
	}
	return slots
}

// TicketHolders returns the participants holding a ticket, in join order
func (s *GameSession) TicketHolders() []Participant {
	holders := make([]Participant, 0, len(s.PlayerTickets))
	for _, p := range s.Participants {
		if _, ok := s.PlayerTickets[p.PlayerID]; ok {
			holders = append(holders, p)
		}
	}
	return holders
}
