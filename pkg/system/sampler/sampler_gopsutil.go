//go:build !linux

package sampler

import (
	"math"
	"runtime"

	"github.com/shirou/gopsutil/v4/process"

	"github.com/ja7ad/pidstats/pkg/types"
)

// gopsutilSampler covers every non-Linux target through gopsutil's
// per-process API. On platforms gopsutil does not implement, its calls
// return errors and every sample degrades to zero.
type gopsutilSampler struct{}

func newSampler() Sampler {
	return gopsutilSampler{}
}

func (gopsutilSampler) ReadRaw(pid int) Raw {
	if pid > math.MaxInt32 {
		return Raw{}
	}
	p, err := process.NewProcess(int32(pid))
	if err != nil {
		return Raw{}
	}

	var raw Raw
	if times, err := p.Times(); err == nil {
		raw.CPUSeconds = times.User + times.System
	}
	if mi, err := p.MemoryInfo(); err == nil && mi != nil {
		raw.RSS = types.Bytes(mi.RSS)
	}
	return raw
}

func (gopsutilSampler) Alive(pid int) bool {
	if pid <= 0 || pid > math.MaxInt32 {
		return false
	}
	ok, err := process.PidExists(int32(pid))
	return err == nil && ok
}

func (gopsutilSampler) Platform() string {
	return "gopsutil/" + runtime.GOOS
}
