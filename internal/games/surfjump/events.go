package surfjump

import "github.com/vovakirdan/surfjump/internal/core"

// Listener receives semantic game events as they happen during Step.
// Implementations must not block; sound and network layers hook in here.
type Listener interface {
	OnEvent(ev core.Event)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(ev core.Event)

// OnEvent calls f(ev).
func (f ListenerFunc) OnEvent(ev core.Event) { f(ev) }

// Listeners fans an event out to several listeners in order.
type Listeners []Listener

// OnEvent forwards ev to every non-nil listener.
func (ls Listeners) OnEvent(ev core.Event) {
	for _, l := range ls {
		if l != nil {
			l.OnEvent(ev)
		}
	}
}

type nopListener struct{}

func (nopListener) OnEvent(core.Event) {}

func (g *Game) emit(kind core.EventKind, rate float64) {
	ev := core.Event{Kind: kind, Level: g.level, Rate: rate}
	g.events = append(g.events, ev)
	g.listener.OnEvent(ev)
}
