package session

import "github.com/google/uuid"

// Phase is the position of the controller in its state machine.
type Phase int

const (
	Unauthenticated Phase = iota
	MenuIdle
	InDialogue
	InMinigame
	InReports
	Terminated
)

func (p Phase) String() string {
	switch p {
	case Unauthenticated:
		return "unauthenticated"
	case MenuIdle:
		return "menu"
	case InDialogue:
		return "dialogue"
	case InMinigame:
		return "minigame"
	case InReports:
		return "reports"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// feature reports whether the phase requires an authenticated user.
func (p Phase) feature() bool {
	return p != Unauthenticated && p != Terminated
}

// State is the data of one login session. CurrentUser is set exactly when
// Authenticated is true.
type State struct {
	ID            uuid.UUID
	Authenticated bool
	CurrentUser   string
}

func newState() State {
	return State{ID: uuid.New()}
}
