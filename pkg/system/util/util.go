package util

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// EMA is an exponential moving average with smoothing factor alpha in [0,1].
// The first sample initializes the state verbatim.
type EMA struct {
	alpha, prev float64
	ok          bool
}

func NewEMA(alpha float64) *EMA { return &EMA{alpha: alpha} }

func (e *EMA) Next(v float64) float64 {
	if !e.ok {
		e.prev, e.ok = v, true
		return v
	}
	e.prev = e.alpha*v + (1-e.alpha)*e.prev
	return e.prev
}

// NonNeg floors x at zero. NaN and infinities also map to zero so the
// value is always safe to encode as a JSON number.
func NonNeg(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	if x < 0 {
		return 0
	}
	return x
}

// ParseTargets turns CLI arguments of the form "name=PID" (or a bare
// "PID", which gets a generated name) into a name→pid map.
func ParseTargets(args []string) (map[string]int, error) {
	targets := make(map[string]int, len(args))
	for _, arg := range args {
		name, pidStr, found := strings.Cut(arg, "=")
		if !found {
			pidStr = arg
			name = ""
		}
		pid, err := strconv.Atoi(strings.TrimSpace(pidStr))
		if err != nil {
			return nil, fmt.Errorf("invalid pid in %q: %w", arg, err)
		}
		if name = strings.TrimSpace(name); name == "" {
			name = fmt.Sprintf("pid-%d", pid)
		}
		targets[name] = pid
	}
	return targets, nil
}
