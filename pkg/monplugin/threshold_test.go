package monplugin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThresholdStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		warning  string
		critical string
		values   []float64
		expected Severity
	}{
		{"5:9", "", []float64{4}, Warning},
		{"5:9", "", []float64{10}, Warning},
		{"5:9", "", []float64{6}, OK},
		{"", "5:9", []float64{4}, Critical},
		{"", "5:9", []float64{10}, Critical},
		{"", "5:9", []float64{6}, OK},

		{"0:80", "0:90", []float64{91}, Critical},
		{"0:80", "0:90", []float64{-1}, Critical},
		{"0:80", "0:90", []float64{10}, OK},
		{"0:80", "0:90", []float64{90}, Warning},
		{"0:80", "0:90", []float64{85}, Warning},
		{"0:80", "0:90", []float64{95}, Critical},

		{"@20:25", "@5:9", []float64{5}, Critical},
		{"@20:25", "@5:9", []float64{9}, Critical},
		{"@20:25", "@5:9", []float64{4}, OK},
		{"@20:25", "@5:9", []float64{10}, OK},
		{"@20:25", "@5:9", []float64{20}, Warning},
		{"@20:25", "@5:9", []float64{22}, Warning},
		{"@20:25", "@5:9", []float64{25}, Warning},
		{"@20:25", "@5:9", []float64{25.1}, OK},
		{"@20:25", "@5:9", []float64{19.9}, OK},
		{"@20:25", "@5:9", []float64{4, 10, 5}, Critical},
		{"@20:25", "@5:9", []float64{22, 5}, Critical},
		{"@20:25", "@5:9", []float64{}, OK},

		{"", "", []float64{42}, OK},
	}

	for _, tst := range tests {
		threshold, err := NewThreshold(tst.warning, tst.critical)
		require.NoError(t, err)
		assert.Equalf(t, tst.expected, threshold.Status(tst.values...),
			"warning=%s critical=%s values=%v", tst.warning, tst.critical, tst.values)
	}
}

func TestThresholdInvalid(t *testing.T) {
	t.Parallel()

	_, err := NewThreshold("a", "")
	require.ErrorIs(t, err, ErrRangeSyntax)
	assert.Contains(t, err.Error(), "warning")

	_, err = NewThreshold("", "1:~")
	require.ErrorIs(t, err, ErrRangeSyntax)
	assert.Contains(t, err.Error(), "critical")
}

func TestThresholdNil(t *testing.T) {
	t.Parallel()

	var threshold *Threshold
	assert.Equal(t, OK, threshold.Status(1, 2, 3))
	assert.Equal(t, OK, (&Threshold{}).Status(1))
	assert.Equal(t, "Threshold(critical=90:, warning=15)", (&Threshold{Warning: MustRange("15"), Critical: MustRange("90:")}).String())
}
