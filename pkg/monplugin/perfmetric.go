package monplugin

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/consol-monitoring/monplugin/pkg/convert"
)

// PerformanceMetric contains a single performance value.
type PerformanceMetric struct {
	Label    string
	Value    float64
	Unit     string
	Warning  *Range // threshold used for warnings
	Critical *Range // threshold used for critical
	Min      *float64
	Max      *float64
}

// MetricOption sets optional fields of a PerformanceMetric.
type MetricOption func(*metricBuilder) error

type metricBuilder struct {
	metric    PerformanceMetric
	threshold *Threshold
}

// WithUnit sets the unit of measurement, ex.: B, %, s
func WithUnit(unit string) MetricOption {
	return func(b *metricBuilder) error {
		b.metric.Unit = unit

		return nil
	}
}

// WithWarning sets the warning range from a range definition.
func WithWarning(def string) MetricOption {
	return func(b *metricBuilder) error {
		rng, err := NewRange(def)
		if err != nil {
			return fmt.Errorf("warning: %w", err)
		}
		b.metric.Warning = rng

		return nil
	}
}

// WithCritical sets the critical range from a range definition.
func WithCritical(def string) MetricOption {
	return func(b *metricBuilder) error {
		rng, err := NewRange(def)
		if err != nil {
			return fmt.Errorf("critical: %w", err)
		}
		b.metric.Critical = rng

		return nil
	}
}

// WithWarningRange sets an already parsed warning range.
func WithWarningRange(rng *Range) MetricOption {
	return func(b *metricBuilder) error {
		b.metric.Warning = rng

		return nil
	}
}

// WithCriticalRange sets an already parsed critical range.
func WithCriticalRange(rng *Range) MetricOption {
	return func(b *metricBuilder) error {
		b.metric.Critical = rng

		return nil
	}
}

// WithThreshold uses warning and critical from the threshold.
// It takes precedence over any individually set warning or critical range.
func WithThreshold(threshold *Threshold) MetricOption {
	return func(b *metricBuilder) error {
		b.threshold = threshold

		return nil
	}
}

// WithMin sets the minimum possible value.
func WithMin(minimum float64) MetricOption {
	return func(b *metricBuilder) error {
		b.metric.Min = &minimum

		return nil
	}
}

// WithMax sets the maximum possible value.
func WithMax(maximum float64) MetricOption {
	return func(b *metricBuilder) error {
		b.metric.Max = &maximum

		return nil
	}
}

// NewPerformanceMetric creates a validated performance metric.
// Newlines in the label are replaced by spaces.
func NewPerformanceMetric(label string, value float64, opts ...MetricOption) (*PerformanceMetric, error) {
	builder := &metricBuilder{
		metric: PerformanceMetric{
			Label: strings.ReplaceAll(label, "\n", " "),
			Value: value,
		},
	}

	if strings.ContainsAny(builder.metric.Label, "'=") {
		return nil, fmt.Errorf("%w: %s", ErrInvalidLabel, builder.metric.Label)
	}

	for _, opt := range opts {
		if err := opt(builder); err != nil {
			return nil, fmt.Errorf("metric %s: %w", builder.metric.Label, err)
		}
	}

	if builder.threshold != nil {
		if builder.metric.Warning.IsSet() || builder.metric.Critical.IsSet() {
			log.Debugf("metric %s: threshold overrides warning/critical", builder.metric.Label)
		}
		builder.metric.Warning = builder.threshold.Warning
		builder.metric.Critical = builder.threshold.Critical
	}

	return &builder.metric, nil
}

// Status returns the severity of the metric value against its own ranges.
func (m *PerformanceMetric) Status() Severity {
	return (&Threshold{Warning: m.Warning, Critical: m.Critical}).Status(m.Value)
}

// String returns the metric in plugin perfdata format:
//
//	'label'=value[uom];[warn];[crit];[min];[max]
func (m *PerformanceMetric) String() string {
	var res bytes.Buffer

	res.WriteString(fmt.Sprintf("'%s'=%s%s", m.Label, convert.PluginFloat(m.Value), m.Unit))

	res.WriteString(";")
	res.WriteString(m.Warning.String())

	res.WriteString(";")
	res.WriteString(m.Critical.String())

	res.WriteString(";")
	if m.Min != nil {
		res.WriteString(convert.Num2String(*m.Min))
	}

	res.WriteString(";")
	if m.Max != nil {
		res.WriteString(convert.Num2String(*m.Max))
	}

	return res.String()
}
