package client

import (
	"github.com/miniapp-factory/square-invasion/internal/engine"
	"github.com/miniapp-factory/square-invasion/internal/input"
)

// eventsFor translates key presses into match inputs for the given phase.
// Space doubles as start and restart on the title and end screens.
func eventsFor(keys []input.Key, phase engine.Phase) []engine.Event {
	var events []engine.Event
	for _, k := range keys {
		var ev engine.Event
		switch phase {
		case engine.PhaseStart:
			if k == input.KeySpace || k == input.KeyEnter {
				ev = engine.EventStart
			}
		case engine.PhasePlaying:
			switch k {
			case input.KeyLeft:
				ev = engine.EventMoveLeft
			case input.KeyRight:
				ev = engine.EventMoveRight
			case input.KeySpace:
				ev = engine.EventFire
			}
		case engine.PhaseGameOver, engine.PhaseWon:
			if k == input.KeySpace || k == input.KeyEnter {
				ev = engine.EventRestart
			}
		}
		if ev != engine.EventNone {
			events = append(events, ev)
		}
	}
	return events
}
