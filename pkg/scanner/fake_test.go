package scanner

import (
	"context"
	"time"

	"github.com/martinsuchenak/minerscan/internal/netrange"
	"github.com/martinsuchenak/minerscan/pkg/discovery"
	"github.com/martinsuchenak/minerscan/pkg/model"
)

// fakeFactory is a discovery backend for tests. It expands ranges with the
// real parser and reports a miner for every host listed in miners.
type fakeFactory struct {
	miners   map[string]model.Miner // host IP -> miner reported there
	perHost  time.Duration          // simulated probe latency per host
	buildErr error                  // returned by Build when set
	probeErr error                  // returned by Probe when set
}

func (f *fakeFactory) Build(networkRange string, _ model.ScanConfig) (discovery.Handle, error) {
	if f.buildErr != nil {
		return nil, f.buildErr
	}
	hosts, err := netrange.Expand(networkRange)
	if err != nil {
		return nil, err
	}
	return &fakeHandle{factory: f, hosts: hosts}, nil
}

type fakeHandle struct {
	factory *fakeFactory
	hosts   []string
}

func (h *fakeHandle) HostCount() int {
	return len(h.hosts)
}

func (h *fakeHandle) Probe(ctx context.Context) (<-chan discovery.ProbeResult, error) {
	if h.factory.probeErr != nil {
		return nil, h.factory.probeErr
	}

	results := make(chan discovery.ProbeResult)
	go func() {
		defer close(results)
		for _, host := range h.hosts {
			if h.factory.perHost > 0 {
				select {
				case <-ctx.Done():
					return
				case <-time.After(h.factory.perHost):
				}
			}

			var miner *model.Miner
			if m, ok := h.factory.miners[host]; ok {
				found := m
				miner = &found
			}

			select {
			case <-ctx.Done():
				return
			case results <- discovery.ProbeResult{Host: host, Miner: miner}:
			}
		}
	}()

	return results, nil
}
