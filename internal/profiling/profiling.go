package profiling

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Lightweight cumulative profiler for generation and meshing passes.

// Stat is the accumulated cost of one tracked operation.
type Stat struct {
	Calls int
	Total time.Duration
}

var (
	mu     sync.Mutex
	totals = make(map[string]Stat)
)

// Track returns a stop function that records the elapsed time under the given name.
// Usage: defer profiling.Track("terrain.Terrain")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		s := totals[name]
		s.Calls++
		s.Total += d
		totals[name] = s
		mu.Unlock()
	}
}

// Reset clears all totals.
func Reset() {
	mu.Lock()
	clear(totals)
	mu.Unlock()
}

// Snapshot returns a copy of the current totals.
func Snapshot() map[string]Stat {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]Stat, len(totals))
	for k, v := range totals {
		out[k] = v
	}
	return out
}

// TopN formats the n most expensive operations.
// Example: "meshing.BuildMesh:4.2ms/81, terrain.Terrain:2.1ms/4"
func TopN(n int) string {
	ss := Snapshot()
	type pair struct {
		name string
		stat Stat
	}
	list := make([]pair, 0, len(ss))
	for k, v := range ss {
		list = append(list, pair{name: k, stat: v})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].stat.Total == list[j].stat.Total {
			return list[i].name < list[j].name
		}
		return list[i].stat.Total > list[j].stat.Total
	})
	n = min(n, len(list))
	parts := make([]string, 0, n)
	for _, p := range list[:n] {
		ms := float64(p.stat.Total.Microseconds()) / 1000.0
		parts = append(parts, fmt.Sprintf("%s:%.1fms/%d", p.name, ms, p.stat.Calls))
	}
	return strings.Join(parts, ", ")
}
