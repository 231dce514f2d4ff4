//go:build linux

package sampler

import (
	"fmt"

	"github.com/ja7ad/pidstats/pkg/system/cgroup"
	"github.com/ja7ad/pidstats/pkg/system/proc"
	"github.com/ja7ad/pidstats/pkg/types"
)

// procfsSampler reads counters straight from /proc:
//   - CPU: utime+stime jiffies from /proc/<pid>/stat, divided by clock ticks
//   - RSS: /proc/<pid>/smaps_rollup, falling back to statm
type procfsSampler struct {
	clkTck int
}

func newSampler() Sampler {
	return &procfsSampler{clkTck: proc.ClockTicks()}
}

func (s *procfsSampler) ReadRaw(pid int) Raw {
	var raw Raw

	// CPU and memory reads are independent: if one source is unreadable
	// the other still contributes its value.
	if ut, st, err := proc.ReadCPUTime(pid); err == nil && s.clkTck > 0 {
		raw.CPUSeconds = float64(ut+st) / float64(s.clkTck)
	}
	if rss, err := proc.ReadRSS(pid); err == nil {
		raw.RSS = types.Bytes(rss)
	}
	return raw
}

func (s *procfsSampler) Alive(pid int) bool {
	return proc.Exists(pid)
}

func (s *procfsSampler) Platform() string {
	ver, err := cgroup.Detect()
	if err != nil {
		return "linux procfs"
	}
	return fmt.Sprintf("linux procfs (%s)", ver)
}
