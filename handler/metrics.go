package handler

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/log4g/log4g/core"
)

// StatsCollector exposes a handler's Stats counters as Prometheus
// metrics. Register it with any prometheus.Registerer:
//
//	prometheus.MustRegister(handler.NewStatsCollector("console", h))
//
// Collection reads the atomic counters through a Snapshot, so it never
// contends with the logging hot path.
type StatsCollector struct {
	provider StatsProvider

	dropped   *prometheus.Desc
	blocked   *prometheus.Desc
	processed *prometheus.Desc
}

// NewStatsCollector creates a collector for the given handler. name
// distinguishes multiple handlers in the same registry and becomes the
// "handler" label on every metric.
func NewStatsCollector(name string, provider StatsProvider) *StatsCollector {
	constLabels := prometheus.Labels{"handler": name}
	return &StatsCollector{
		provider: provider,
		dropped: prometheus.NewDesc(
			"log4g_entries_dropped_total",
			"Log entries dropped due to a full async queue.",
			[]string{"level"}, constLabels,
		),
		blocked: prometheus.NewDesc(
			"log4g_writes_blocked_total",
			"Times a caller blocked waiting for queue space.",
			nil, constLabels,
		),
		processed: prometheus.NewDesc(
			"log4g_entries_processed_total",
			"Log entries successfully written to the sink.",
			nil, constLabels,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *StatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.dropped
	ch <- c.blocked
	ch <- c.processed
}

// Collect implements prometheus.Collector.
func (c *StatsCollector) Collect(ch chan<- prometheus.Metric) {
	snap := c.provider.Stats()
	for _, level := range []core.Level{core.DebugLevel, core.InfoLevel, core.WarnLevel, core.ErrorLevel} {
		ch <- prometheus.MustNewConstMetric(
			c.dropped, prometheus.CounterValue,
			float64(snap.DroppedTotal[level]), level.String(),
		)
	}
	ch <- prometheus.MustNewConstMetric(c.blocked, prometheus.CounterValue, float64(snap.BlockedTotal))
	ch <- prometheus.MustNewConstMetric(c.processed, prometheus.CounterValue, float64(snap.ProcessedTotal))
}
