package cpu

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/Amr-9/crat/pkg/generator"
)

var (
	// ErrSearchCancelled is the failure reason when a search is stopped
	// before any worker found a match.
	ErrSearchCancelled = errors.New("search cancelled")
	// ErrGeneratorInit marks a chain backend that could not be created.
	ErrGeneratorInit = errors.New("address generator initialization failed")
)

// GenerationError carries a worker failure up to the coordinator.
type GenerationError struct {
	Worker int
	Err    error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("worker %d: %v", e.Worker, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

type messageKind int

const (
	msgStatus messageKind = iota
	msgFound
	msgError
)

// message is what a worker sends to the coordinator. Attempts is always a
// delta since the worker's previous message.
type message struct {
	kind      messageKind
	worker    int
	attempts  uint64
	candidate generator.Candidate
	err       error
}

// worker owns one AddressGenerator and runs the generate/match loop until
// it finds a match, fails, or ctx is cancelled.
type worker struct {
	id             int
	chain          generator.Chain
	factory        generator.Factory
	matcher        *generator.Matcher
	reportInterval uint64
	out            chan<- message
}

func (w *worker) run(ctx context.Context) {
	gen, err := w.factory(w.chain)
	if err != nil {
		w.send(ctx, message{
			kind:   msgError,
			worker: w.id,
			err:    &GenerationError{Worker: w.id, Err: fmt.Errorf("%w: %w", ErrGeneratorInit, err)},
		})
		return
	}

	var local uint64
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		candidate, err := gen.Generate()
		if err != nil {
			w.send(ctx, message{
				kind:     msgError,
				worker:   w.id,
				attempts: local,
				err:      &GenerationError{Worker: w.id, Err: err},
			})
			return
		}
		local++

		if w.matcher.Matches(candidate.Address) {
			if ctx.Err() != nil {
				return
			}
			w.send(ctx, message{kind: msgFound, worker: w.id, attempts: local, candidate: candidate})
			return
		}

		if local >= w.reportInterval {
			if !w.send(ctx, message{kind: msgStatus, worker: w.id, attempts: local}) {
				return
			}
			local = 0
			runtime.Gosched()
		}
	}
}

// send delivers m unless the search is cancelled first.
func (w *worker) send(ctx context.Context, m message) bool {
	select {
	case w.out <- m:
		return true
	case <-ctx.Done():
		return false
	}
}
