package scanner

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/martinsuchenak/minerscan/internal/log"
	"github.com/martinsuchenak/minerscan/internal/throttle"
	"github.com/martinsuchenak/minerscan/pkg/discovery"
	"github.com/martinsuchenak/minerscan/pkg/model"
)

// groupScan runs a single group's scan to completion, emitting discovery
// and progress events into the shared session channel. The channel itself
// serializes the concurrent senders; the scanned counter is the only other
// state touched while probing.
type groupScan struct {
	group    model.ScanGroup
	factory  discovery.Factory
	events   chan<- model.Event
	throttle *throttle.Throttle
	status   *statusTable
}

// run scans the group's range. The returned error is carried into the
// group's GroupCompleted event by the orchestrator. Cancellation surfaces
// as the context's error and is logged as a wind-down, not a failure.
func (w *groupScan) run(ctx context.Context) error {
	handle, err := w.factory.Build(w.group.NetworkRange, w.group.Config)
	if err != nil {
		return fmt.Errorf("building scan for range %q: %w", w.group.NetworkRange, err)
	}

	totalHosts := handle.HostCount()
	log.Info("Group scan started", "group", w.group.Name, "range", w.group.NetworkRange, "hosts", totalHosts)

	results, err := handle.Probe(ctx)
	if err != nil {
		return fmt.Errorf("%w: starting probe of range %q: %v", model.ErrDiscoveryFailed, w.group.NetworkRange, err)
	}

	var scanned atomic.Int64

	for result := range results {
		count := int(scanned.Add(1))
		w.status.recordProgress(w.group.Name, count, totalHosts)

		if result.Miner != nil {
			log.Debug("Miner discovered", "group", w.group.Name, "ip", result.Miner.IP, "make", result.Miner.Make)
			w.status.recordMiner(w.group.Name)
			if !w.send(ctx, model.MinerDiscovered{Group: w.group.Name, Miner: *result.Miner}) {
				break
			}
		}

		if w.throttle.Allow(w.group.Name) {
			if !w.send(ctx, model.ScanProgress{Group: w.group.Name, TotalHosts: totalHosts, ScannedHosts: count}) {
				break
			}
		}
	}

	// Drain whatever the backend still delivers after a cancelled send, so
	// its producer goroutine is never left blocked.
	for range results {
		scanned.Add(1)
	}

	if err := ctx.Err(); err != nil {
		log.Debug("Group scan cancelled", "group", w.group.Name, "scanned", scanned.Load())
		w.throttle.Forget(w.group.Name)
		return err
	}

	// Final progress event bypasses the throttle so consumers never hold a
	// stale scanned count.
	w.send(ctx, model.ScanProgress{Group: w.group.Name, TotalHosts: totalHosts, ScannedHosts: int(scanned.Load())})
	w.throttle.Forget(w.group.Name)

	log.Info("Group scan finished", "group", w.group.Name, "scanned", scanned.Load())
	return nil
}

// send delivers an event unless the session is cancelled
func (w *groupScan) send(ctx context.Context, event model.Event) bool {
	select {
	case <-ctx.Done():
		return false
	case w.events <- event:
		return true
	}
}
