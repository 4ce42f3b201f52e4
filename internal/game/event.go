package game

// EventKind is the type of a committer event.
type EventKind string

const (
	EventPlaced    EventKind = "placed"
	EventRejected  EventKind = "rejected"
	EventReturned  EventKind = "returned"
	EventCompleted EventKind = "completed"
	EventReset     EventKind = "reset"
)

// Event is what the committer tells the outside world after each action.
// Scoreboard, progression and the session journal consume these.
type Event struct {
	Kind     EventKind `json:"kind"`
	ItemID   string    `json:"itemId,omitempty"`
	Value    string    `json:"value,omitempty"`
	ZoneID   string    `json:"zoneId,omitempty"`
	FromZone string    `json:"fromZone,omitempty"`
	Reason   string    `json:"reason,omitempty"`
	Counts   Counts    `json:"counts"`
}
