package cpu

import (
	"sync/atomic"
	"time"

	"github.com/Amr-9/crat/pkg/generator"
)

// search is the coordinator state of one run. handle is only ever called
// from the coordinator goroutine, in inbox order.
type search struct {
	id       string
	req      generator.SearchRequest
	started  time.Time
	throttle time.Duration
	events   chan generator.Event
	observer Observer

	total        uint64
	attempts     *atomic.Uint64 // mirror of total for Pool.Stats
	lastProgress time.Time
	claimed      atomic.Bool
}

// handle folds one worker message into the search. It returns the terminal
// event when the message ends the search. Once a terminal event has been
// claimed, every further message is ignored.
func (s *search) handle(m message) (generator.Event, bool) {
	if s.claimed.Load() {
		return generator.Event{}, false
	}

	switch m.kind {
	case msgStatus:
		s.add(m.attempts)
		s.progress()
		return generator.Event{}, false

	case msgFound:
		if !s.claimed.CompareAndSwap(false, true) {
			return generator.Event{}, false
		}
		s.add(m.attempts)
		return generator.Event{
			Kind: generator.EventCompleted,
			Result: &generator.Result{
				Chain:         s.req.Chain,
				Address:       m.candidate.Address,
				Secret:        m.candidate.Secret,
				Mnemonic:      m.candidate.Mnemonic,
				TotalAttempts: s.total,
				Elapsed:       time.Since(s.started),
			},
		}, true

	case msgError:
		if !s.claimed.CompareAndSwap(false, true) {
			return generator.Event{}, false
		}
		s.add(m.attempts)
		return generator.Event{Kind: generator.EventFailed, Err: m.err}, true
	}
	return generator.Event{}, false
}

// cancelled claims the search for an external stop.
func (s *search) cancelled() generator.Event {
	s.claimed.Store(true)
	return generator.Event{Kind: generator.EventFailed, Err: ErrSearchCancelled}
}

func (s *search) add(n uint64) {
	if n == 0 {
		return
	}
	s.total += n
	s.attempts.Store(s.total)
	s.observer.AttemptsAdded(s.req.Chain, n)
}

// progress emits a throttled, non-blocking progress event. The last buffer
// slot stays reserved for the terminal event.
func (s *search) progress() {
	now := time.Now()
	if !s.lastProgress.IsZero() && now.Sub(s.lastProgress) < s.throttle {
		return
	}
	if len(s.events) >= cap(s.events)-1 {
		return
	}
	s.lastProgress = now
	s.events <- generator.Event{Kind: generator.EventProgress, TotalAttempts: s.total}
}
