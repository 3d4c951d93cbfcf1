package handler

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/log4g/log4g/core"
)

type statsSource struct{ stats *Stats }

func (s statsSource) Stats() Snapshot { return s.stats.GetSnapshot() }

func TestStatsCollector(t *testing.T) {
	stats := NewStats()
	stats.IncrementDropped(core.InfoLevel)
	stats.IncrementProcessed()
	stats.IncrementProcessed()

	reg := prometheus.NewPedanticRegistry()
	if err := reg.Register(NewStatsCollector("test", statsSource{stats})); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	got := map[string]float64{}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			key := mf.GetName()
			for _, l := range m.GetLabel() {
				if l.GetName() == "level" {
					key += "/" + l.GetValue()
				}
			}
			got[key] = m.GetCounter().GetValue()
		}
	}

	if got["log4g_entries_dropped_total/INFO"] != 1 {
		t.Errorf("dropped INFO = %v, want 1", got["log4g_entries_dropped_total/INFO"])
	}
	if got["log4g_entries_processed_total"] != 2 {
		t.Errorf("processed = %v, want 2", got["log4g_entries_processed_total"])
	}
	if got["log4g_writes_blocked_total"] != 0 {
		t.Errorf("blocked = %v, want 0", got["log4g_writes_blocked_total"])
	}
}
