// Package sampler reads raw OS resource counters for a single process:
// cumulative CPU time and resident memory size. The backend is selected
// at build time per target OS; every backend satisfies the same
// contract and degrades to zero-filled samples when the OS lookup
// fails, so absence of data is indistinguishable from zero usage.
package sampler

import "github.com/ja7ad/pidstats/pkg/types"

// Raw is one instantaneous read of a process's OS counters.
type Raw struct {
	// CPUSeconds is the cumulative CPU time (user + system) consumed by
	// the process since it started, in seconds. Monotonic while the
	// process runs.
	CPUSeconds float64
	// RSS is the resident set size at the instant of the read.
	RSS types.Bytes
}

// Sampler is the platform counter source. Implementations are
// read-only against the OS process tables: no retries, no blocking
// beyond one bounded kernel query per counter.
type Sampler interface {
	// ReadRaw returns the process's raw counters. Any lookup failure
	// (missing process, unreadable counters, unsupported platform)
	// yields a zero Raw rather than an error.
	ReadRaw(pid int) Raw

	// Alive reports whether the pid currently exists.
	Alive(pid int) bool

	// Platform describes the active backend, for diagnostics only.
	Platform() string
}

// New returns the sampler backend for the build target.
func New() Sampler {
	return newSampler()
}
