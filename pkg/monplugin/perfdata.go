package monplugin

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

const (
	// SingleTimeLabel is the label of the runtime metric in single entity mode.
	SingleTimeLabel = "monplugin_time"

	// MultiTimeLabel is the label of the runtime metric in multi entity mode.
	MultiTimeLabel = "monplugin::monplugin::time"

	// DefaultSubcheck replaces empty sub check names in multi entity mode.
	DefaultSubcheck = "unknown"
)

type perfMode int

const (
	perfModeEmpty perfMode = iota
	perfModeSingle
	perfModeMulti
)

func (m perfMode) String() string {
	switch m {
	case perfModeSingle:
		return "single"
	case perfModeMulti:
		return "multi"
	}

	return "empty"
}

// EntityKey groups metrics in multi entity mode.
type EntityKey struct {
	Entity   string
	Subcheck string
}

// perfData holds either a single list of metrics or metrics grouped by entity, never both.
type perfData struct {
	mode   perfMode
	single []*PerformanceMetric
	keys   []EntityKey
	multi  map[EntityKey][]*PerformanceMetric
}

func newPerfData() perfData {
	return perfData{
		mode:  perfModeEmpty,
		multi: map[EntityKey][]*PerformanceMetric{},
	}
}

func (p *perfData) addSingle(metric *PerformanceMetric) error {
	if p.mode == perfModeMulti {
		return fmt.Errorf("%w: you already used AddPerfMultiData", ErrIllegalInstruction)
	}
	p.mode = perfModeSingle
	p.single = append(p.single, metric)

	return nil
}

func (p *perfData) addMulti(key EntityKey, metric *PerformanceMetric) error {
	if p.mode == perfModeSingle {
		return fmt.Errorf("%w: you already used AddPerfData", ErrIllegalInstruction)
	}
	p.mode = perfModeMulti
	if _, ok := p.multi[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.multi[key] = append(p.multi[key], metric)

	return nil
}

// AddPerfData adds a performance metric in single entity mode.
func (c *Check) AddPerfData(label string, value float64, opts ...MetricOption) error {
	metric, err := NewPerformanceMetric(label, value, opts...)
	if err != nil {
		return err
	}
	if err := c.perf.addSingle(metric); err != nil {
		return err
	}
	log.Debugf("added perfdata: %s", metric.String())

	return nil
}

// AddPerfMultiData adds a performance metric for the given entity and sub check.
// An empty subcheck is replaced by "unknown".
func (c *Check) AddPerfMultiData(entity, subcheck, label string, value float64, opts ...MetricOption) error {
	if subcheck == "" {
		subcheck = DefaultSubcheck
	}
	metric, err := NewPerformanceMetric(label, value, opts...)
	if err != nil {
		return err
	}
	if err := c.perf.addMulti(EntityKey{Entity: entity, Subcheck: subcheck}, metric); err != nil {
		return err
	}
	log.Debugf("added perfdata for %s::%s: %s", entity, subcheck, metric.String())

	return nil
}

// PerfData renders the performance data block including the runtime metric.
// It returns an empty string if no metrics have been added.
func (c *Check) PerfData() string {
	var output bytes.Buffer

	elapsed := c.Elapsed().Seconds()

	switch c.perf.mode {
	case perfModeSingle:
		perf := make([]string, 0, len(c.perf.single))
		for _, m := range c.perf.single {
			perf = append(perf, m.String())
		}
		output.WriteString("| ")
		output.WriteString(strings.Join(perf, "\n"))
		output.WriteString(fmt.Sprintf("\n'%s'=%.6fs\n", SingleTimeLabel, elapsed))
	case perfModeMulti:
		output.WriteString("| ")
		output.WriteString(fmt.Sprintf("'%s'=%.6fs ", MultiTimeLabel, elapsed))
		for _, key := range c.perf.keys {
			perf := make([]string, 0, len(c.perf.multi[key]))
			for _, m := range c.perf.multi[key] {
				perf = append(perf, m.String())
			}
			slices.Sort(perf)
			output.WriteString(fmt.Sprintf("'%s::%s::", key.Entity, key.Subcheck))
			output.WriteString(strings.TrimPrefix(strings.Join(perf, " "), "'"))
			output.WriteString("\n")
		}
	case perfModeEmpty:
	}

	log.Tracef("rendered %s perfdata: %q", c.perf.mode, output.String())

	return output.String()
}

// Metrics returns all single entity metrics.
func (c *Check) Metrics() []*PerformanceMetric {
	return append([]*PerformanceMetric{}, c.perf.single...)
}

// MultiMetrics returns the entity keys in insertion order and their metrics.
func (c *Check) MultiMetrics() ([]EntityKey, map[EntityKey][]*PerformanceMetric) {
	keys := append([]EntityKey{}, c.perf.keys...)
	metrics := make(map[EntityKey][]*PerformanceMetric, len(keys))
	for _, k := range keys {
		metrics[k] = append([]*PerformanceMetric{}, c.perf.multi[k]...)
	}

	return keys, metrics
}
