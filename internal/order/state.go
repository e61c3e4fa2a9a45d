package order

import (
	"fmt"
	"strings"

	"github.com/Veraticus/fintrack/internal/common"
	"github.com/Veraticus/fintrack/internal/model"
)

// Direction represents sort order.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection validates a direction read from user input.
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case Asc:
		return Asc, nil
	case Desc:
		return Desc, nil
	default:
		return "", fmt.Errorf("%w: direction %q (must be asc or desc)", common.ErrInvalidSort, s)
	}
}

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Asc {
		return Desc
	}
	return Asc
}

// Indicator returns the arrow shown next to an active column header.
func (d Direction) Indicator() string {
	if d == Asc {
		return "▲"
	}
	return "▼"
}

// State is the active (key, direction) pair. There is no multi-column sort.
type State struct {
	Key       model.FieldKey
	Direction Direction
}

// DefaultState returns the default sort (date descending, newest first).
func DefaultState() State {
	return State{
		Key:       model.FieldDate,
		Direction: Desc,
	}
}

// Select returns the state after the header for key is chosen.
// A new column always starts descending; the active column flips direction.
func (s State) Select(key model.FieldKey) State {
	if s.Key == key {
		return State{Key: key, Direction: s.Direction.Flip()}
	}
	return State{Key: key, Direction: Desc}
}

// String returns the state as "field:direction" (e.g., "date:desc").
func (s State) String() string {
	return string(s.Key) + ":" + string(s.Direction)
}

// ParseState parses a sort string like "amount:asc". A bare field name
// defaults to descending.
func ParseState(s string) (State, error) {
	if strings.TrimSpace(s) == "" {
		return State{}, fmt.Errorf("%w: sort string cannot be empty", common.ErrInvalidSort)
	}

	field, dir, hasDir := strings.Cut(s, ":")

	key, err := model.ParseFieldKey(field)
	if err != nil {
		return State{}, fmt.Errorf("%w: %w", common.ErrInvalidSort, err)
	}

	if !hasDir {
		return State{Key: key, Direction: Desc}, nil
	}

	direction, err := ParseDirection(dir)
	if err != nil {
		return State{}, err
	}

	return State{Key: key, Direction: direction}, nil
}
