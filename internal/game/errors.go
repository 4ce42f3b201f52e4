package game

import (
	"errors"
	"fmt"
)

var (
	ErrRoundCompleted    = errors.New("round already completed")
	ErrRoundNotCompleted = errors.New("round not completed yet")
	ErrNotDraggable      = errors.New("item cannot be moved")
	ErrNoZones           = errors.New("board has no drop zones")
)

type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// ConfigError reports level content that cannot be played.
type ConfigError struct {
	What   string
	Reason string
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.What, e.Reason)
}
