package monplugin

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	perfDataDesc = prometheus.NewDesc(
		"monplugin_perfdata",
		"performance data of the plugin run",
		[]string{"entity", "check", "label", "unit"},
		nil,
	)

	durationDesc = prometheus.NewDesc(
		"monplugin_duration_seconds",
		"runtime of the plugin so far",
		nil,
		nil,
	)
)

// CheckCollector exposes the performance data of a Check as prometheus gauges.
type CheckCollector struct {
	check *Check
}

// Collector returns a prometheus collector for the performance data of this check.
func (c *Check) Collector() *CheckCollector {
	return &CheckCollector{check: c}
}

// Describe implements prometheus.Collector.
func (cc *CheckCollector) Describe(descs chan<- *prometheus.Desc) {
	descs <- perfDataDesc
	descs <- durationDesc
}

// Collect implements prometheus.Collector.
func (cc *CheckCollector) Collect(metrics chan<- prometheus.Metric) {
	metrics <- prometheus.MustNewConstMetric(durationDesc, prometheus.GaugeValue, cc.check.Elapsed().Seconds())

	// the registry rejects duplicate label sets, first one wins
	seen := map[[4]string]bool{}
	send := func(entity, subcheck string, m *PerformanceMetric) {
		labels := [4]string{entity, subcheck, m.Label, m.Unit}
		if seen[labels] {
			return
		}
		seen[labels] = true
		metric, err := prometheus.NewConstMetric(perfDataDesc, prometheus.GaugeValue, m.Value, labels[:]...)
		if err != nil {
			// invalid label values, ex.: no utf-8, fail the gather instead of panicking
			metric = prometheus.NewInvalidMetric(perfDataDesc, err)
		}
		metrics <- metric
	}

	for _, m := range cc.check.perf.single {
		send("", "", m)
	}

	for _, key := range cc.check.perf.keys {
		for _, m := range cc.check.perf.multi[key] {
			send(key.Entity, key.Subcheck, m)
		}
	}
}

// WriteTextfile writes the performance data of the check in the node_exporter textfile format.
func WriteTextfile(path string, check *Check) error {
	registry := prometheus.NewRegistry()
	if err := registry.Register(check.Collector()); err != nil {
		return fmt.Errorf("register collector: %w", err)
	}

	if err := prometheus.WriteToTextfile(path, registry); err != nil {
		return fmt.Errorf("write textfile %s: %w", path, err)
	}
	log.Debugf("wrote prometheus textfile: %s", path)

	return nil
}
