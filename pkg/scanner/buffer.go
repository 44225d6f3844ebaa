package scanner

import "github.com/martinsuchenak/minerscan/pkg/config"

// BufferSize maps an estimated host count to a bounded event channel
// capacity. Small ranges get a floor large enough to avoid stalls from a
// full channel; very large ranges are capped to bound memory.
func BufferSize(estimatedHosts int) int {
	return bufferSize(estimatedHosts, config.DefaultBufferFloor, config.DefaultBufferCap)
}

// bufferSize computes clamp(floor + estimated/10, floor, cap)
func bufferSize(estimatedHosts, floor, capacity int) int {
	size := floor + estimatedHosts/10
	if size < floor {
		size = floor
	}
	if size > capacity {
		size = capacity
	}
	return size
}
