package engine

import (
	"errors"
	"fmt"

	"github.com/miniapp-factory/square-invasion/internal/object"
)

// ErrUnknownEvent is returned when an input name does not map to an Event.
var ErrUnknownEvent = errors.New("unknown input event")

// Event is a discrete player input.
type Event int

const (
	EventNone Event = iota
	EventMoveLeft
	EventMoveRight
	EventFire
	EventStart
	EventRestart
)

var eventNames = [...]string{
	EventNone:      "none",
	EventMoveLeft:  "left",
	EventMoveRight: "right",
	EventFire:      "fire",
	EventStart:     "start",
	EventRestart:   "restart",
}

func (ev Event) String() string {
	if ev < 0 || int(ev) >= len(eventNames) {
		return fmt.Sprintf("Event(%d)", int(ev))
	}
	return eventNames[ev]
}

// MarshalText encodes the event by its wire name.
func (ev Event) MarshalText() ([]byte, error) {
	return []byte(ev.String()), nil
}

// UnmarshalText decodes a wire name.
func (ev *Event) UnmarshalText(text []byte) error {
	parsed, err := ParseEvent(string(text))
	if err != nil {
		return err
	}
	*ev = parsed
	return nil
}

// ParseEvent maps a wire name to an Event.
func ParseEvent(name string) (Event, error) {
	for i := EventMoveLeft; int(i) < len(eventNames); i++ {
		if eventNames[i] == name {
			return i, nil
		}
	}
	return EventNone, fmt.Errorf("parse %q: %w", name, ErrUnknownEvent)
}

// OnInput dispatches an event and reports whether it changed anything.
// Events that do not apply to the current phase are ignored.
func (e *Engine) OnInput(ev Event) bool {
	switch ev {
	case EventMoveLeft:
		return e.Move(-e.cfg.MoveStep)
	case EventMoveRight:
		return e.Move(e.cfg.MoveStep)
	case EventFire:
		return e.Fire() > 0
	case EventStart:
		return e.Start()
	case EventRestart:
		return e.Restart()
	default:
		return false
	}
}

// Move shifts the player horizontally, clamped to the field.
func (e *Engine) Move(dx float64) bool {
	if e.phase != PhasePlaying {
		return false
	}
	before := e.player.X
	e.player.Move(dx, e.field)
	return e.player.X != before
}

// Fire launches one projectile per offset of the active pattern and returns
// how many were launched.
func (e *Engine) Fire() int {
	if e.phase != PhasePlaying {
		return 0
	}
	offsets := e.weapon.Offsets()
	for _, off := range offsets {
		x, y := e.player.Muzzle(off)
		e.projectiles = append(e.projectiles, object.NewProjectile(e.ids.projectile.Next(), x, y, e.cfg.ProjectileSpeed))
	}
	return len(offsets)
}

// Start begins the first match. Only valid on the start screen.
func (e *Engine) Start() bool {
	if e.phase != PhaseStart {
		return false
	}
	e.begin()
	return true
}

// Restart begins a new match after the previous one ended.
func (e *Engine) Restart() bool {
	if !e.phase.Terminal() {
		return false
	}
	e.begin()
	return true
}
