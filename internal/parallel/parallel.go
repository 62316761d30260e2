// Package parallel splits element ranges across goroutines for CPU kernels.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum elements per goroutine to avoid overhead.
}

// DefaultConfig returns defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 1 << 14,
	}
}

// Sequential returns a Config that runs everything on the calling goroutine.
func Sequential() Config {
	return Config{NumWorkers: 1, MinChunkSize: 1}
}

// Range calls f(lo, hi) over disjoint chunks covering [0, n) and waits for
// all of them. Small ranges, or a disabled config, run as a single chunk
// on the calling goroutine.
func Range(n int, cfg Config, f func(lo, hi int)) {
	if n <= 0 {
		return
	}
	if !cfg.Enabled || cfg.NumWorkers < 2 || n < 2*cfg.MinChunkSize {
		f(0, n)
		return
	}

	chunkSize := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize)

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			f(lo, hi)
		}(start, end)
	}
	wg.Wait()
}
