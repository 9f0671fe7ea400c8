package events

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeRoundStarted   EventType = "round_started"
	EventTypeRoundEnded     EventType = "round_ended"
	EventTypeGameCreated    EventType = "game_created"
	EventTypeGameStarted    EventType = "game_started"
	EventTypeNumberDrawn    EventType = "number_drawn"
	EventTypeWinnerDeclared EventType = "winner_declared"
	EventTypeGameEnded      EventType = "game_ended"
	EventTypeGameDiscarded  EventType = "game_discarded"
	EventTypeTicketChanged  EventType = "ticket_changed"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// RoundStartedEvent is published when a chat opens a new round
type RoundStartedEvent struct {
	ChatID    int64  `json:"chat_id"`
	RoundID   int64  `json:"round_id"`
	RoundName string `json:"round_name"`
	OwnerID   int64  `json:"owner_id"`
}

func (e RoundStartedEvent) Type() EventType {
	return EventTypeRoundStarted
}

// RoundEndedEvent is published when a round is closed
type RoundEndedEvent struct {
	ChatID    int64  `json:"chat_id"`
	RoundID   int64  `json:"round_id"`
	RoundName string `json:"round_name"`
	GameCount int    `json:"game_count"`
}

func (e RoundEndedEvent) Type() EventType {
	return EventTypeRoundEnded
}

// GameCreatedEvent is published when a host opens a game
type GameCreatedEvent struct {
	ChatID      int64  `json:"chat_id"`
	SessionID   string `json:"session_id"`
	HostID      int64  `json:"host_id"`
	StartNumber int    `json:"start_number"`
	EndNumber   int    `json:"end_number"`
}

func (e GameCreatedEvent) Type() EventType {
	return EventTypeGameCreated
}

// GameStartedEvent is published when ticket sales close and draws begin
type GameStartedEvent struct {
	ChatID        int64  `json:"chat_id"`
	SessionID     string `json:"session_id"`
	TicketHolders int    `json:"ticket_holders"`
}

func (e GameStartedEvent) Type() EventType {
	return EventTypeGameStarted
}

// NumberDrawnEvent is published for every draw
type NumberDrawnEvent struct {
	ChatID    int64  `json:"chat_id"`
	SessionID string `json:"session_id"`
	Number    int    `json:"number"`
	DrawCount int    `json:"draw_count"`
	Remaining int    `json:"remaining"`
}

func (e NumberDrawnEvent) Type() EventType {
	return EventTypeNumberDrawn
}

// WinnerDeclaredEvent is published when a claim satisfies the win rule
type WinnerDeclaredEvent struct {
	ChatID    int64  `json:"chat_id"`
	SessionID string `json:"session_id"`
	PlayerID  int64  `json:"player_id"`
	Numbers   []int  `json:"numbers"`
}

func (e WinnerDeclaredEvent) Type() EventType {
	return EventTypeWinnerDeclared
}

// GameEndedEvent is published when a game is archived and paid out
type GameEndedEvent struct {
	ChatID       int64   `json:"chat_id"`
	SessionID    string  `json:"session_id"`
	Participants int     `json:"participants"`
	Winners      int     `json:"winners"`
	Bet          float64 `json:"bet"`
	Draws        int     `json:"draws"`
}

func (e GameEndedEvent) Type() EventType {
	return EventTypeGameEnded
}

// Reasons a game is discarded
const (
	DiscardReasonExpired   = "expired"
	DiscardReasonAbandoned = "abandoned"
)

// GameDiscardedEvent is published when a game is dropped without an archive
type GameDiscardedEvent struct {
	ChatID    int64  `json:"chat_id"`
	SessionID string `json:"session_id"`
	Reason    string `json:"reason"`
}

func (e GameDiscardedEvent) Type() EventType {
	return EventTypeGameDiscarded
}

// TicketChangedEvent is published when a ticket is claimed or released
type TicketChangedEvent struct {
	ChatID   int64  `json:"chat_id"`
	PlayerID int64  `json:"player_id"`
	Code     string `json:"code"`
	Claimed  bool   `json:"claimed"`
}

func (e TicketChangedEvent) Type() EventType {
	return EventTypeTicketChanged
}
