package app

import "github.com/gdamore/tcell/v2"

// EventSource supplies the selector's input one event at a time. A nil
// event means no more input will arrive.
type EventSource interface {
	NextEvent() tcell.Event
}

type screenSource struct {
	screen tcell.Screen
}

// NewScreenSource blocks on the terminal for each event.
func NewScreenSource(screen tcell.Screen) EventSource {
	return &screenSource{screen: screen}
}

func (s *screenSource) NextEvent() tcell.Event {
	return s.screen.PollEvent()
}

type scriptSource struct {
	events []*tcell.EventKey
	next   int
}

// NewScriptSource replays a fixed key sequence.
func NewScriptSource(events []*tcell.EventKey) EventSource {
	return &scriptSource{events: events}
}

func (s *scriptSource) NextEvent() tcell.Event {
	if s.next >= len(s.events) {
		return nil
	}
	ev := s.events[s.next]
	s.next++
	return ev
}
