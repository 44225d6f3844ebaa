package scanner

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/martinsuchenak/minerscan/internal/log"
	"github.com/martinsuchenak/minerscan/internal/netrange"
	"github.com/martinsuchenak/minerscan/internal/throttle"
	"github.com/martinsuchenak/minerscan/internal/worker"
	"github.com/martinsuchenak/minerscan/pkg/config"
	"github.com/martinsuchenak/minerscan/pkg/discovery"
	"github.com/martinsuchenak/minerscan/pkg/model"
)

// Orchestrator scans multiple named network ranges concurrently and merges
// their events into one stream per session.
//
// Each group gets its own scan worker on the background executor; workers
// share the session's output channel, which serializes their sends and
// provides backpressure when the consumer falls behind. One group's failure
// never aborts its siblings.
type Orchestrator struct {
	factory discovery.Factory
	cfg     *config.Config
	pool    *worker.Pool

	mu     sync.Mutex
	status *statusTable
}

// New creates an orchestrator using the given discovery factory.
// A nil cfg loads the configuration from the environment.
func New(factory discovery.Factory, cfg *config.Config) (*Orchestrator, error) {
	if factory == nil {
		return nil, fmt.Errorf("discovery factory is required")
	}
	if cfg == nil {
		cfg = config.Load(nil)
	}
	log.SetLevel(cfg.LogLevel)

	pool, err := worker.NewPool(cfg.MaxWorkers)
	if err != nil {
		return nil, fmt.Errorf("starting background executor: %w", err)
	}
	pool.Start()

	return &Orchestrator{
		factory: factory,
		cfg:     cfg,
		pool:    pool,
		status:  newStatusTable(),
	}, nil
}

// Close stops the background executor. Pending scans are abandoned.
func (o *Orchestrator) Close() {
	o.pool.Stop()
}

// Status returns a snapshot of the latest session's per-group bookkeeping
func (o *Orchestrator) Status() []model.GroupStatus {
	o.mu.Lock()
	status := o.status
	o.mu.Unlock()
	return status.snapshot()
}

// Run starts scanning all groups concurrently and returns the session's
// event stream. The stream delivers events in arrival order across groups,
// exactly one GroupCompleted per group (always that group's last event) and
// one trailing AllCompleted. After AllCompleted the channel stays open and
// silent; it is closed only when ctx is cancelled.
func (o *Orchestrator) Run(ctx context.Context, groups []model.ScanGroup) <-chan model.Event {
	estimatedHosts := 0
	for _, g := range groups {
		estimatedHosts += netrange.Estimate(g.NetworkRange)
	}

	events := make(chan model.Event, bufferSize(estimatedHosts, o.cfg.BufferFloor, o.cfg.BufferCap))
	sessionID := generateID()

	status := newStatusTable()
	o.mu.Lock()
	o.status = status
	o.mu.Unlock()

	log.Info("Scan session started", "session_id", sessionID, "groups", len(groups), "estimated_hosts", estimatedHosts)

	go o.run(ctx, sessionID, groups, events, status)

	return events
}

// groupResult pairs a finished group with its outcome
type groupResult struct {
	group string
	err   error
}

// run drives one scan session to completion
func (o *Orchestrator) run(ctx context.Context, sessionID string, groups []model.ScanGroup, events chan model.Event, status *statusTable) {
	defer close(events)

	if len(groups) == 0 {
		// No active scan: report completion but keep the subscription open
		// until the consumer cancels it.
		sendEvent(ctx, events, model.AllCompleted{})
		<-ctx.Done()
		return
	}

	progressGate := throttle.New(o.cfg.ProgressInterval)
	done := make(chan groupResult, len(groups))

	for _, group := range groups {
		scan := &groupScan{
			group:    group,
			factory:  o.factory,
			events:   events,
			throttle: progressGate,
			status:   status,
		}

		result := make(chan error, 1)
		job := worker.Job{
			ID: sessionID + "/" + group.Name,
			Handler: func(poolCtx context.Context) error {
				// Stop the scan when either the session or the executor
				// goes away.
				scanCtx, cancel := context.WithCancel(ctx)
				defer cancel()
				stop := context.AfterFunc(poolCtx, cancel)
				defer stop()
				return scan.run(scanCtx)
			},
			Result: result,
		}

		if err := o.pool.Submit(job); err != nil {
			done <- groupResult{group: group.Name, err: fmt.Errorf("submitting scan job: %w", err)}
			continue
		}

		go func(name string, result <-chan error) {
			done <- groupResult{group: name, err: <-result}
		}(group.Name, result)
	}

	// Workers deliver exactly one result each, even when cancelled, so this
	// loop always terminates and no worker can be left sending on a channel
	// we are about to close.
	for completed := 0; completed < len(groups); completed++ {
		result := <-done
		status.complete(result.group, result.err)

		switch {
		case result.err == nil:
		case errors.Is(result.err, context.Canceled):
			log.Debug("Group scan cancelled", "session_id", sessionID, "group", result.group)
		default:
			log.Error("Group scan failed", "session_id", sessionID, "group", result.group, "error", result.err)
		}
		sendEvent(ctx, events, model.GroupCompleted{Group: result.group, Err: result.err})
	}

	sendEvent(ctx, events, model.AllCompleted{})
	log.Info("Scan session finished", "session_id", sessionID, "groups", len(groups))

	// Hold the stream open until the consumer drops it
	<-ctx.Done()
}

// sendEvent delivers an event unless the session is cancelled
func sendEvent(ctx context.Context, events chan<- model.Event, event model.Event) {
	select {
	case <-ctx.Done():
	case events <- event:
	}
}

// generateID generates a unique session ID
func generateID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
