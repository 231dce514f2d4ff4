// Package stats turns raw, cumulative process counters into per-process
// usage estimates and batch reports.
//
// # Rate from a cumulative counter
//
// The OS reports CPU time as a monotonic total, not a rate. A percentage
// therefore has to be a first difference between two samples of the same
// pid:
//
//	cpuPercent = (cpuNow - cpuPrev) / elapsedWallClock * 100
//
// The Aggregator keeps one baseline (previous CPU seconds, previous
// sample time) per pid. This makes the cost proportional to the sampling
// frequency, with no forced second read after a fixed sleep, and puts no
// bound on how long a caller may wait between polls. The first sample of
// a pid has no baseline and reports 0 percent.
//
// Guards on the delta: a non-positive elapsed window (clock anomaly,
// back-to-back calls within the same millisecond) and a negative CPU
// delta (counter reset, pid reuse) both yield 0 rather than a nonsense
// percentage.
//
// # Batch sampling and eviction
//
// SampleBatch takes the caller's roster of name→pid and, before
// sampling, evicts every baseline whose pid is no longer in the roster.
// Without this, the cache would grow without bound as tracked processes
// churn, and an OS-reused pid would silently inherit the exited
// process's baseline. Invalid entries (pid <= 0) are dropped from the
// output with a logged warning; everything else is best-effort and the
// batch never fails.
//
// All state lives in the Aggregator instance. There are no globals, so
// independent instances (e.g. in tests) cannot contaminate each other.
package stats
