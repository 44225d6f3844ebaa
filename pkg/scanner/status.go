package scanner

import (
	"sort"
	"sync"

	"github.com/martinsuchenak/minerscan/pkg/model"
)

// statusTable tracks per-group scan bookkeeping for one session.
// Entries are created lazily when a group's first event is recorded.
type statusTable struct {
	mu     sync.RWMutex
	groups map[string]*model.GroupStatus
}

func newStatusTable() *statusTable {
	return &statusTable{
		groups: make(map[string]*model.GroupStatus),
	}
}

// entry returns the status record for a group, creating it if needed.
// Callers must hold the write lock.
func (t *statusTable) entry(group string) *model.GroupStatus {
	st, ok := t.groups[group]
	if !ok {
		st = &model.GroupStatus{Group: group}
		t.groups[group] = st
	}
	return st
}

// recordProgress updates a group's scanned/total host counts
func (t *statusTable) recordProgress(group string, scanned, total int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	st := t.entry(group)
	st.TotalHosts = total
	if scanned > st.ScannedHosts {
		st.ScannedHosts = scanned
	}
}

// recordMiner counts one discovered miner for a group
func (t *statusTable) recordMiner(group string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.entry(group).MinersFound++
}

// complete marks a group as finished, with an optional error
func (t *statusTable) complete(group string, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	st := t.entry(group)
	st.Completed = true
	st.Err = err
}

// snapshot returns a copy of all group statuses, sorted by group name
func (t *statusTable) snapshot() []model.GroupStatus {
	t.mu.RLock()
	defer t.mu.RUnlock()

	statuses := make([]model.GroupStatus, 0, len(t.groups))
	for _, st := range t.groups {
		statuses = append(statuses, *st)
	}
	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].Group < statuses[j].Group
	})
	return statuses
}
