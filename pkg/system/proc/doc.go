// Package proc provides lightweight, zero-dependency readers for the
// per-process counters this module samples on Linux. It backs the procfs
// implementation of the platform sampler (pkg/system/sampler).
//
// Readers:
//
//   - ReadCPUTime(pid): utime and stime in jiffies from /proc/<pid>/stat.
//     These are cumulative, monotonic counters; converting them to seconds
//     requires dividing by ClockTicks(). Rates must be derived by the
//     caller from deltas between two reads.
//
//   - ReadRSS(pid): resident set size in bytes, preferring
//     /proc/<pid>/smaps_rollup (kernel 4.14+) and falling back to the
//     resident page count in /proc/<pid>/statm times PageSize().
//
//   - Exists(pid): whether /proc/<pid> is present.
//
// Helpers ClockTicks and PageSize honor the CLK_TCK and PAGE_SIZE env
// overrides to ease testing; neither requires cgo.
//
// Errors (errs.go):
//
//	ErrNoStat    : /proc/<pid>/stat empty or missing the ") " delimiter
//	ErrShortStat : stat line had fewer fields than utime/stime need
//	ErrNoRSS     : neither smaps_rollup nor statm was readable
//
// All reads are observational: one bounded open/scan per call, no
// retries, no caching. Failure handling (zero-fill semantics) lives one
// layer up in the sampler.
package proc
