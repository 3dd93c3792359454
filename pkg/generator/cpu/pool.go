// Package cpu runs vanity searches on a pool of goroutines, one per core.
package cpu

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Amr-9/crat/pkg/generator"
)

const (
	DefaultReportInterval   = 1000
	DefaultProgressThrottle = 100 * time.Millisecond

	eventBuffer = 16
)

// Outcome labels how a search ended.
type Outcome string

const (
	OutcomeFound     Outcome = "found"
	OutcomeFailed    Outcome = "failed"
	OutcomeCancelled Outcome = "cancelled"
)

// Observer receives engine activity. All calls for one search come from
// the same goroutine.
type Observer interface {
	SearchStarted(chain generator.Chain, workers int)
	AttemptsAdded(chain generator.Chain, n uint64)
	SearchFinished(chain generator.Chain, outcome Outcome, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) SearchStarted(generator.Chain, int)                     {}
func (nopObserver) AttemptsAdded(generator.Chain, uint64)                  {}
func (nopObserver) SearchFinished(generator.Chain, Outcome, time.Duration) {}

// Options configure a Pool. Zero values select the defaults.
type Options struct {
	Workers          int
	ReportInterval   uint64
	ProgressThrottle time.Duration
	Logger           *zap.Logger
	Observer         Observer
}

// Pool coordinates one search at a time over a fixed number of workers.
type Pool struct {
	workers          int
	reportInterval   uint64
	progressThrottle time.Duration
	factory          generator.Factory
	log              *zap.Logger
	observer         Observer

	mu     sync.Mutex
	active *run

	attempts atomic.Uint64
	started  atomic.Int64 // unix nanos
	finished atomic.Int64 // unix nanos, 0 while running
}

// run is the handle of one active search.
type run struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// NewPool creates a pool. factory builds one generator per worker.
// If opts.Workers is 0, it defaults to the number of CPU cores.
func NewPool(factory generator.Factory, opts Options) *Pool {
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.ReportInterval == 0 {
		opts.ReportInterval = DefaultReportInterval
	}
	if opts.ProgressThrottle < 0 {
		opts.ProgressThrottle = 0
	} else if opts.ProgressThrottle == 0 {
		opts.ProgressThrottle = DefaultProgressThrottle
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Observer == nil {
		opts.Observer = nopObserver{}
	}
	return &Pool{
		workers:          opts.Workers,
		reportInterval:   opts.ReportInterval,
		progressThrottle: opts.ProgressThrottle,
		factory:          factory,
		log:              opts.Logger,
		observer:         opts.Observer,
	}
}

var _ generator.Searcher = (*Pool)(nil)

// Workers returns the number of workers spawned per search.
func (p *Pool) Workers() int {
	return p.workers
}

// Stats returns the current performance statistics.
func (p *Pool) Stats() generator.Stats {
	startNanos := p.started.Load()
	if startNanos == 0 {
		return generator.Stats{}
	}
	end := time.Now()
	if f := p.finished.Load(); f != 0 {
		end = time.Unix(0, f)
	}
	attempts := p.attempts.Load()
	elapsed := end.Sub(time.Unix(0, startNanos)).Seconds()

	var hashRate float64
	if elapsed > 0 {
		hashRate = float64(attempts) / elapsed
	}

	return generator.Stats{
		Attempts:    attempts,
		HashRate:    hashRate,
		ElapsedSecs: elapsed,
	}
}

// Start validates req, stops any search in progress and begins a new one.
// The returned channel yields progress events and exactly one completed or
// failed event, then closes. Cancelling ctx fails the search with
// ErrSearchCancelled.
func (p *Pool) Start(ctx context.Context, req generator.SearchRequest) (<-chan generator.Event, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()

	runCtx, cancel := context.WithCancel(ctx)
	r := &run{cancel: cancel, done: make(chan struct{})}
	p.active = r

	now := time.Now()
	p.attempts.Store(0)
	p.started.Store(now.UnixNano())
	p.finished.Store(0)

	s := &search{
		id:       uuid.NewString(),
		req:      req,
		started:  now,
		throttle: p.progressThrottle,
		events:   make(chan generator.Event, eventBuffer),
		attempts: &p.attempts,
		observer: p.observer,
	}

	inbox := make(chan message, p.workers)
	matcher := generator.NewMatcher(req)
	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		w := &worker{
			id:             i,
			chain:          req.Chain,
			factory:        p.factory,
			matcher:        matcher,
			reportInterval: p.reportInterval,
			out:            inbox,
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.run(runCtx)
		}()
	}

	p.log.Info("search started",
		zap.String("search_id", s.id),
		zap.Stringer("chain", req.Chain),
		zap.String("pattern", req.Pattern),
		zap.Stringer("position", req.Position),
		zap.Bool("case_sensitive", req.CaseSensitive),
		zap.Int("workers", p.workers),
	)
	p.observer.SearchStarted(req.Chain, p.workers)

	go p.coordinate(runCtx, s, inbox, &wg, r)

	return s.events, nil
}

// Stop ends the active search and waits until all of its workers exited.
// Calling Stop with no active search is a no-op.
func (p *Pool) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

func (p *Pool) stopLocked() {
	if p.active == nil {
		return
	}
	p.active.cancel()
	<-p.active.done
	p.active = nil
}

func (p *Pool) coordinate(ctx context.Context, s *search, inbox <-chan message, wg *sync.WaitGroup, r *run) {
	defer close(r.done)
	defer close(s.events)

	var terminal generator.Event
loop:
	for {
		select {
		case m := <-inbox:
			if ev, ok := s.handle(m); ok {
				terminal = ev
				break loop
			}
		case <-ctx.Done():
			terminal = s.cancelled()
			break loop
		}
	}

	// Workers observe the cancellation within one report interval; nothing
	// they send from here on is read.
	r.cancel()
	wg.Wait()

	end := time.Now()
	elapsed := end.Sub(s.started)
	p.finished.Store(end.UnixNano())

	switch terminal.Kind {
	case generator.EventCompleted:
		terminal.Result.Elapsed = elapsed
		p.log.Info("search completed",
			zap.String("search_id", s.id),
			zap.String("address", terminal.Result.Address),
			zap.Uint64("attempts", terminal.Result.TotalAttempts),
			zap.Duration("elapsed", elapsed),
		)
		p.observer.SearchFinished(s.req.Chain, OutcomeFound, elapsed)
	default:
		outcome := OutcomeFailed
		if errors.Is(terminal.Err, ErrSearchCancelled) {
			outcome = OutcomeCancelled
			p.log.Info("search cancelled", zap.String("search_id", s.id), zap.Uint64("attempts", s.total))
		} else {
			p.log.Error("search failed", zap.String("search_id", s.id), zap.Error(terminal.Err))
		}
		p.observer.SearchFinished(s.req.Chain, outcome, elapsed)
	}

	// One slot is always left free for this event.
	s.events <- terminal
}
