// Package metrics exposes aggregator samples as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ja7ad/pidstats/pkg/stats"
)

// Roster returns the current name→pid mapping to sample. It is invoked
// on every scrape, so the host can change its tracked processes at any
// time; stale baselines are evicted by the batch sample itself.
type Roster func() map[string]int

// Exporter is a prometheus.Collector that runs one batch sample per
// scrape and emits const metrics labeled by process name.
type Exporter struct {
	agg    *stats.Aggregator
	roster Roster

	cpuPercent *prometheus.Desc
	cpuSeconds *prometheus.Desc
	memoryMB   *prometheus.Desc
}

func NewExporter(agg *stats.Aggregator, roster Roster) *Exporter {
	return &Exporter{
		agg:    agg,
		roster: roster,
		cpuPercent: prometheus.NewDesc(
			"pidstats_cpu_percent",
			"Instantaneous CPU usage estimate of the named process.",
			[]string{"name"}, nil,
		),
		cpuSeconds: prometheus.NewDesc(
			"pidstats_cpu_time_seconds_total",
			"Cumulative CPU time (user+system) consumed by the named process.",
			[]string{"name"}, nil,
		),
		memoryMB: prometheus.NewDesc(
			"pidstats_memory_mb",
			"Resident memory of the named process in megabytes.",
			[]string{"name"}, nil,
		),
	}
}

func (e *Exporter) Describe(ch chan<- *prometheus.Desc) {
	ch <- e.cpuPercent
	ch <- e.cpuSeconds
	ch <- e.memoryMB
}

func (e *Exporter) Collect(ch chan<- prometheus.Metric) {
	for _, r := range e.agg.SampleBatch(e.roster()) {
		ch <- prometheus.MustNewConstMetric(e.cpuPercent, prometheus.GaugeValue, r.CPUPercent, r.Name)
		ch <- prometheus.MustNewConstMetric(e.cpuSeconds, prometheus.CounterValue, r.CPUTimeSeconds, r.Name)
		ch <- prometheus.MustNewConstMetric(e.memoryMB, prometheus.GaugeValue, r.MemoryMB, r.Name)
	}
}
