package model

import "errors"

// Scan errors are always scoped to a single group and delivered inside that
// group's GroupCompleted event; they never abort sibling groups.
var (
	// ErrEmptyRange is returned for an empty or all-whitespace network range.
	ErrEmptyRange = errors.New("network range is empty")

	// ErrInvalidRange is returned for a range expression that is neither a
	// valid CIDR nor a valid start-end range.
	ErrInvalidRange = errors.New("invalid network range")

	// ErrDiscoveryFailed wraps failures of the discovery backend while
	// building or executing a scan.
	ErrDiscoveryFailed = errors.New("discovery failed")
)
