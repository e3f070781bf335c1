package cache

import "go.uber.org/atomic"

// Stats holds the counters of a single Tiered instance.
type Stats struct {
	Hits          atomic.Int64
	Misses        atomic.Int64
	Loads         atomic.Int64
	LoadErrors    atomic.Int64
	StoreErrors   atomic.Int64
	Populates     atomic.Int64
	Invalidations atomic.Int64
	Coalesced     atomic.Int64
}

type StatsSnapshot struct {
	Name          string `json:"name"`
	Hits          int64  `json:"hits"`
	Misses        int64  `json:"misses"`
	Loads         int64  `json:"loads"`
	LoadErrors    int64  `json:"loadErrors"`
	StoreErrors   int64  `json:"storeErrors"`
	Populates     int64  `json:"populates"`
	Invalidations int64  `json:"invalidations"`
	Coalesced     int64  `json:"coalesced"`
}

func (s *Stats) snapshot(name string) StatsSnapshot {
	return StatsSnapshot{
		Name:          name,
		Hits:          s.Hits.Load(),
		Misses:        s.Misses.Load(),
		Loads:         s.Loads.Load(),
		LoadErrors:    s.LoadErrors.Load(),
		StoreErrors:   s.StoreErrors.Load(),
		Populates:     s.Populates.Load(),
		Invalidations: s.Invalidations.Load(),
		Coalesced:     s.Coalesced.Load(),
	}
}
