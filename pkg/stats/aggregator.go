package stats

import (
	"encoding/json"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/ja7ad/pidstats/pkg/system/sampler"
	"github.com/ja7ad/pidstats/pkg/system/util"
)

// baseline is the previous observation of a pid's cumulative CPU time,
// the reference point for the next rate computation.
type baseline struct {
	cpuSeconds float64
	sampledAt  int64 // epoch millis
}

// Config holds the Aggregator's collaborators. Nil fields take defaults.
type Config struct {
	// Sampler is the platform counter source. Defaults to sampler.New().
	Sampler sampler.Sampler
	// Logger receives warnings about invalid batch entries and encoding
	// failures. Diagnostics never alter return values. Defaults to
	// slog.Default().
	Logger *slog.Logger
}

// Aggregator converts cumulative CPU counters into instantaneous
// CPU-percent estimates by keeping one baseline per sampled pid.
// Each instance owns its cache; independent Aggregators never share
// state. All methods are safe for concurrent use, serialized by an
// internal lock held for the duration of one call.
type Aggregator struct {
	sampler sampler.Sampler
	logger  *slog.Logger
	now     func() time.Time

	mu   sync.Mutex
	prev map[int]baseline
}

// New creates an Aggregator with an empty baseline cache.
func New(cfg *Config) *Aggregator {
	a := &Aggregator{
		now:  time.Now,
		prev: make(map[int]baseline),
	}
	if cfg != nil {
		a.sampler = cfg.Sampler
		a.logger = cfg.Logger
	}
	if a.sampler == nil {
		a.sampler = sampler.New()
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	return a
}

// SampleOne reads the process's raw counters and derives its stats.
// A pid <= 0 returns the zero value without touching the cache. The
// call never fails: unreadable counters show up as zeroes, which is
// indistinguishable from a process with no usage yet.
func (a *Aggregator) SampleOne(pid int) ProcessStats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sampleLocked(pid)
}

func (a *Aggregator) sampleLocked(pid int) ProcessStats {
	if pid <= 0 {
		return ProcessStats{}
	}

	raw := a.sampler.ReadRaw(pid)
	nowMS := a.now().UnixMilli()

	var pct float64
	if prev, ok := a.prev[pid]; ok {
		elapsed := float64(nowMS-prev.sampledAt) / 1000.0
		if elapsed > 0 {
			// Negative deltas (counter reset, pid reuse between samples)
			// floor at zero to preserve the percentage semantic.
			pct = util.NonNeg((raw.CPUSeconds - prev.cpuSeconds) / elapsed * 100.0)
		}
	}

	// Upsert unconditionally: zero CPU time is a valid baseline.
	a.prev[pid] = baseline{cpuSeconds: raw.CPUSeconds, sampledAt: nowMS}

	return ProcessStats{
		CPUPercent:     pct,
		CPUTimeSeconds: raw.CPUSeconds,
		MemoryMB:       raw.RSS.MB(),
	}
}

// SampleBatch samples every named process and returns one entry per
// valid target, sorted by name. Baselines of pids absent from procs are
// evicted first, so a pid later reused by the OS cannot inherit a stale
// reference point. Entries with pid <= 0 are dropped with a warning.
func (a *Aggregator) SampleBatch(procs map[string]int) []NamedStats {
	a.mu.Lock()
	defer a.mu.Unlock()

	active := make(map[int]struct{}, len(procs))
	for _, pid := range procs {
		active[pid] = struct{}{}
	}
	for pid := range a.prev {
		if _, ok := active[pid]; !ok {
			delete(a.prev, pid)
		}
	}

	names := make([]string, 0, len(procs))
	for name := range procs {
		names = append(names, name)
	}
	slices.Sort(names)

	results := make([]NamedStats, 0, len(procs))
	for _, name := range names {
		pid := procs[name]
		if pid <= 0 {
			a.logger.Warn("invalid pid for process", "name", name, "pid", pid)
			continue
		}
		results = append(results, NamedStats{
			Name:         name,
			ProcessStats: a.sampleLocked(pid),
		})
	}
	return results
}

// SampleBatchJSON runs SampleBatch and encodes the result as a compact
// JSON array. Encoding cannot fail for well-formed numeric data; if it
// does anyway, the safe fallback is an empty array, logged.
func (a *Aggregator) SampleBatchJSON(procs map[string]int) []byte {
	out, err := json.Marshal(a.SampleBatch(procs))
	if err != nil {
		a.logger.Error("encode batch stats", "err", err)
		return []byte("[]")
	}
	return out
}

// ResetCache drops every baseline. The next sample of any pid reports
// zero CPU percent. Used for test isolation.
func (a *Aggregator) ResetCache() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.prev = make(map[int]baseline)
}
