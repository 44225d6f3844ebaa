package model

// Event is one message in the merged scan event stream.
// The variant set is closed: MinerDiscovered, ScanProgress, GroupCompleted
// and AllCompleted are the only implementations.
type Event interface {
	event()
}

// MinerDiscovered reports a miner found at one host of a group's range.
// Discoveries are never throttled.
type MinerDiscovered struct {
	Group string
	Miner Miner
}

// ScanProgress reports how far a group's scan has advanced.
// ScannedHosts is monotonically non-decreasing per group and never
// exceeds TotalHosts.
type ScanProgress struct {
	Group        string
	TotalHosts   int
	ScannedHosts int
}

// GroupCompleted is the terminal event for exactly one group.
// Err is nil on success. It is always the last event observed for its group.
type GroupCompleted struct {
	Group string
	Err   error
}

// AllCompleted is the terminal event for the whole scan session,
// emitted exactly once after the last GroupCompleted.
type AllCompleted struct{}

func (MinerDiscovered) event() {}
func (ScanProgress) event()    {}
func (GroupCompleted) event()  {}
func (AllCompleted) event()    {}
