package monplugin

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCollectorSingle(t *testing.T) {
	t.Parallel()

	check := NewCheck()
	require.NoError(t, check.AddPerfData("used", 90, WithUnit("%")))
	require.NoError(t, check.AddPerfData("free", 10, WithUnit("%")))
	require.NoError(t, check.AddPerfData("free", 11, WithUnit("%")))

	// duration + 2 distinct metrics
	assert.Equal(t, 3, testutil.CollectAndCount(check.Collector()))

	expected := `
# HELP monplugin_perfdata performance data of the plugin run
# TYPE monplugin_perfdata gauge
monplugin_perfdata{check="",entity="",label="free",unit="%"} 10
monplugin_perfdata{check="",entity="",label="used",unit="%"} 90
`
	require.NoError(t, testutil.CollectAndCompare(check.Collector(), strings.NewReader(expected), "monplugin_perfdata"))
}

func TestCheckCollectorMulti(t *testing.T) {
	t.Parallel()

	check := NewCheck()
	require.NoError(t, check.AddPerfMultiData("disk1", "", "used", 90))
	require.NoError(t, check.AddPerfMultiData("disk2", "usage", "used", 95))

	expected := `
# HELP monplugin_perfdata performance data of the plugin run
# TYPE monplugin_perfdata gauge
monplugin_perfdata{check="unknown",entity="disk1",label="used",unit=""} 90
monplugin_perfdata{check="usage",entity="disk2",label="used",unit=""} 95
`
	require.NoError(t, testutil.CollectAndCompare(check.Collector(), strings.NewReader(expected), "monplugin_perfdata"))
}

func TestWriteTextfile(t *testing.T) {
	t.Parallel()

	check := NewCheck()
	require.NoError(t, check.AddPerfData("used", 90))

	path := filepath.Join(t.TempDir(), "check.prom")
	require.NoError(t, WriteTextfile(path, check))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `monplugin_perfdata{check="",entity="",label="used",unit=""} 90`)
	assert.Contains(t, string(content), "monplugin_duration_seconds")
}

func TestWriteTextfileInvalidLabel(t *testing.T) {
	t.Parallel()

	for _, add := range []func(*Check) error{
		func(c *Check) error { return c.AddPerfData("temp\xff", 1) },
		func(c *Check) error { return c.AddPerfData("temp", 1, WithUnit("\xfe")) },
		func(c *Check) error { return c.AddPerfMultiData("/mnt/\xff", "usage", "used", 1) },
	} {
		check := NewCheck()
		require.NoError(t, add(check))

		path := filepath.Join(t.TempDir(), "check.prom")
		err := WriteTextfile(path, check)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not valid UTF-8")
		assert.NoFileExists(t, path)

		// plugin output is unaffected
		assert.Contains(t, check.PerfData(), "=1.0")
	}
}
