package util

import "runtime"

// Pool size bounds shared by the lint worker pool and the parser pools, so
// workers never wait on a parser.
const (
	minPoolSize = 4
	maxPoolSize = 32
)

// OptimalPoolSize returns min(max(2*NumCPU, 4), 32).
func OptimalPoolSize() int {
	size := runtime.NumCPU() * 2
	if size < minPoolSize {
		size = minPoolSize
	}
	if size > maxPoolSize {
		size = maxPoolSize
	}
	return size
}

// PoolSize returns override when positive, OptimalPoolSize otherwise.
func PoolSize(override int) int {
	if override > 0 {
		return override
	}
	return OptimalPoolSize()
}
