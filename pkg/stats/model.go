package stats

// ProcessStats is one computed sample for a process.
//
// CPUPercent is a rate over the wall-clock window since the previous
// sample of the same pid (0 when no baseline exists). It is floored at
// zero but has no upper bound: a process running several threads can
// legitimately exceed 100 on SMP hosts.
type ProcessStats struct {
	CPUPercent     float64 `json:"cpu_percent"`
	CPUTimeSeconds float64 `json:"cpu_time_seconds"`
	MemoryMB       float64 `json:"memory_mb"`
}

// NamedStats is one batch output entry: the caller-supplied process
// name plus its sample.
type NamedStats struct {
	Name string `json:"name"`
	ProcessStats
}
