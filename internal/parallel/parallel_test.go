package parallel

import (
	"sync"
	"testing"
)

func coverage(t *testing.T, n int, cfg Config) (calls int) {
	t.Helper()
	seen := make([]int, n)
	var mu sync.Mutex

	Range(n, cfg, func(lo, hi int) {
		mu.Lock()
		calls++
		mu.Unlock()
		for i := lo; i < hi; i++ {
			seen[i]++
		}
	})

	for i, c := range seen {
		if c != 1 {
			t.Errorf("index %d visited %d times, want 1", i, c)
		}
	}
	return calls
}

func TestRangeCoversEveryIndexOnce(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 10}
	for _, n := range []int{1, 19, 20, 21, 99, 1000} {
		coverage(t, n, cfg)
	}
}

func TestRangeSmallRunsInline(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 100}
	if calls := coverage(t, 150, cfg); calls != 1 {
		t.Errorf("expected 1 chunk below twice the minimum, got %d", calls)
	}
}

func TestRangeSplits(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 10}
	if calls := coverage(t, 1000, cfg); calls != 4 {
		t.Errorf("expected 4 chunks, got %d", calls)
	}
}

func TestRangeDisabled(t *testing.T) {
	if calls := coverage(t, 1<<16, Sequential()); calls != 1 {
		t.Errorf("expected 1 chunk when disabled, got %d", calls)
	}
}

func TestRangeEmpty(t *testing.T) {
	Range(0, DefaultConfig(), func(_, _ int) {
		t.Error("f called for empty range")
	})
}
