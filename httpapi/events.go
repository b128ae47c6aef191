package httpapi

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/katalvlaran/stepwise/replay"
)

// broker fans controller events out to event-stream subscribers. publish
// runs under the controller lock, so it never blocks: a subscriber whose
// queue is full misses the event.
type broker struct {
	mu     sync.Mutex
	subs   map[chan replay.Event]struct{}
	buffer int
	closed bool
	log    *slog.Logger
}

func newBroker(buffer int, log *slog.Logger) *broker {
	return &broker{subs: make(map[chan replay.Event]struct{}), buffer: buffer, log: log}
}

func (b *broker) subscribe() (<-chan replay.Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch := make(chan replay.Event, b.buffer)
	if b.closed {
		close(ch)
		return ch, func() {}
	}
	b.subs[ch] = struct{}{}

	return ch, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.subs[ch]; ok {
			delete(b.subs, ch)
			close(ch)
		}
	}
}

func (b *broker) publish(ev replay.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- ev:
		default:
			b.log.Warn("event dropped", "session", ev.Status.SessionID, "index", ev.Frame.Index)
		}
	}
}

func (b *broker) close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	for ch := range b.subs {
		delete(b.subs, ch)
		close(ch)
	}
}

// handleEvents streams one "frame" event per controller event. The
// current frame, if any, is sent first.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	rc := http.NewResponseController(w)
	events, cancel := s.events.subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	if snap, err := s.ctrl.Snapshot(); err == nil {
		if err := writeEvent(w, "frame", snap); err != nil {
			return
		}
	} else if _, err := fmt.Fprint(w, ": no session loaded\n\n"); err != nil {
		return
	}
	if err := rc.Flush(); err != nil {
		s.log.Debug("event stream not flushable", "err", err)
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := writeEvent(w, "frame", ev); err != nil {
				return
			}
			if err := rc.Flush(); err != nil {
				return
			}
		}
	}
}

func writeEvent(w http.ResponseWriter, name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, data)
	return err
}
