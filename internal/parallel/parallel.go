// Package parallel splits index ranges across worker goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 64,
	}
}

// Sequential returns a config that never starts goroutines.
func Sequential() Config {
	return Config{NumWorkers: 1, MinChunkSize: 1}
}

// Chunks returns how many chunks ForChunks would split n items into.
// It is always at least 1 so callers can size per-chunk buffers up front.
func Chunks(n int, cfg Config) int {
	if !cfg.Enabled || cfg.NumWorkers <= 1 || n <= 0 || n < cfg.MinChunkSize {
		return 1
	}
	size := chunkSize(n, cfg)
	return (n + size - 1) / size
}

func chunkSize(n int, cfg Config) int {
	return max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize, 1)
}

// ForChunks calls f(chunk, start, end) for consecutive ranges covering
// [0, n). Chunk indices run from 0 to Chunks(n, cfg)-1, each used once, so
// f may index per-chunk state without locking.
func ForChunks(n int, f func(chunk, start, end int), cfg Config) {
	chunks := Chunks(n, cfg)
	if chunks == 1 {
		f(0, 0, n)
		return
	}

	var wg sync.WaitGroup
	size := chunkSize(n, cfg)
	for c := 0; c < chunks; c++ {
		start := c * size
		end := min(start+size, n)
		wg.Add(1)
		go func(c, s, e int) {
			defer wg.Done()
			f(c, s, e)
		}(c, start, end)
	}
	wg.Wait()
}
