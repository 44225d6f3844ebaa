package discovery

import (
	"context"

	"github.com/martinsuchenak/minerscan/pkg/model"
)

// ProbeResult is the outcome of probing a single host.
// Miner is nil when no device answered at that host.
type ProbeResult struct {
	Host  string
	Miner *model.Miner
}

// Handle is a validated, ready-to-run scan of one network range.
type Handle interface {
	// HostCount returns the total number of addressable hosts in the range.
	HostCount() int

	// Probe starts probing all hosts with the backend's own concurrency and
	// returns a channel that yields one result per host as each probe
	// finishes, in completion order. The channel must be closed once every
	// host has been probed, or promptly after ctx is cancelled.
	Probe(ctx context.Context) (<-chan ProbeResult, error)
}

// Factory builds scan handles for network ranges.
// Implementations own the actual per-host probing protocol.
type Factory interface {
	// Build validates the network range and filter config and returns a
	// handle for scanning it. Validation failures are reported here, before
	// any probing starts.
	Build(networkRange string, config model.ScanConfig) (Handle, error)
}

// FactoryFunc is a function that creates a new Factory instance
type FactoryFunc func() (Factory, error)
