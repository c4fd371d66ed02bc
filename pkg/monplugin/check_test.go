package monplugin

import (
	"bytes"
	"testing"

	"github.com/mackerelio/checkers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckInit(t *testing.T) {
	t.Parallel()

	check := NewCheck()
	assert.Empty(t, check.Advisories())
	assert.Equal(t, OK, check.CheckThreshold(42))

	check = NewCheck(WithShortname("foo"))
	require.Len(t, check.Advisories(), 1)
	assert.Contains(t, check.Advisories()[0], "deprecated")

	check = NewCheck(WithCheckThreshold(nil))
	assert.Equal(t, OK, check.CheckThreshold(42))
}

func TestCheckThreshold(t *testing.T) {
	t.Parallel()

	threshold, err := NewThreshold("0:80", "0:90")
	require.NoError(t, err)

	check := NewCheck(WithCheckThreshold(threshold))
	assert.Equal(t, Critical, check.CheckThreshold(91))
	assert.Equal(t, Warning, check.CheckThreshold(85))
	assert.Equal(t, OK, check.CheckThreshold(10))
	assert.Same(t, threshold, check.Threshold())

	check.SetThreshold(nil)
	assert.Equal(t, OK, check.CheckThreshold(91))
}

func TestCheckMessages(t *testing.T) {
	t.Parallel()

	check := NewCheck()

	state, message := check.CheckMessages()
	assert.Equal(t, OK, state)
	assert.Equal(t, "", message)

	state, message = check.CheckMessages(JoinAllWith("; "), AllOK("ALLOK"))
	assert.Equal(t, OK, state)
	assert.Equal(t, "ALLOK", message)

	check.AddMessage(OK, "ok")
	state, message = check.CheckMessages()
	assert.Equal(t, OK, state)
	assert.Equal(t, "ok", message)

	state, message = check.CheckMessages(JoinAllWith("; "), AllOK("ALLOK"))
	assert.Equal(t, OK, state)
	assert.Equal(t, "ALLOK", message)

	check.AddMessage(Warning, "warning")
	state, message = check.CheckMessages()
	assert.Equal(t, Warning, state)
	assert.Equal(t, "warning", message)

	check.AddMessage(Critical, "critical")
	check.AddMessage(Critical, "critical2")
	state, message = check.CheckMessages()
	assert.Equal(t, Critical, state)
	assert.Equal(t, "critical critical2", message)

	state, message = check.CheckMessages(JoinAllWith("; "))
	assert.Equal(t, Critical, state)
	assert.Equal(t, "critical critical2; warning; ok", message)

	state, message = check.CheckMessages(JoinAllWith("; "), AllOK("ALLOK"))
	assert.Equal(t, Critical, state)
	assert.Equal(t, "critical critical2; warning", message)

	state, message = check.CheckMessages(JoinWith(", "))
	assert.Equal(t, Critical, state)
	assert.Equal(t, "critical, critical2", message)

	check = NewCheck()
	check.AddMessage(OK, "ok1")
	check.AddMessage(OK, "ok2")
	check.AddMessage(OK, "ok3")
	state, message = check.CheckMessages(JoinAllWith("\n"), JoinWith("\n"))
	assert.Equal(t, OK, state)
	assert.Equal(t, "ok1\nok2\nok3", message)
}

func TestCheckMessagesUnknownBucket(t *testing.T) {
	t.Parallel()

	check := NewCheck()
	check.AddMessage(Unknown, "cannot read sensor")
	check.AddMessage(OK, "fine")

	state, message := check.CheckMessages()
	assert.Equal(t, OK, state)
	assert.Equal(t, "fine", message)
	assert.Equal(t, []string{"cannot read sensor"}, check.Messages(Unknown))
}

func TestCheckAddMessageByName(t *testing.T) {
	t.Parallel()

	check := NewCheck()
	require.NoError(t, check.AddMessageByName("WARNING", "w1", "w2"))
	require.ErrorIs(t, check.AddMessageByName("warning", "w3"), ErrUnknownSeverity)

	state, message := check.CheckMessages()
	assert.Equal(t, Warning, state)
	assert.Equal(t, "w1 w2", message)
	assert.Equal(t, []string{"w1", "w2"}, check.Messages(Warning))
}

func TestCheckAddChecker(t *testing.T) {
	t.Parallel()

	check := NewCheck()
	check.AddChecker(checkers.Critical("disk full"))
	check.AddChecker(checkers.Ok("fine"))
	check.AddChecker(nil)

	state, message := check.CheckMessages(JoinAllWith(" - "))
	assert.Equal(t, Critical, state)
	assert.Equal(t, "disk full - fine", message)

	for _, state := range []Severity{OK, Warning, Critical, Unknown} {
		assert.Equal(t, state, SeverityFromChecker(state.CheckerStatus()))
	}
}

func TestCheckExit(t *testing.T) {
	t.Parallel()

	for _, state := range []Severity{OK, Warning, Critical, Unknown} {
		output := &bytes.Buffer{}
		exitCode := -1
		check := NewCheck(WithOutput(output), WithExitFunc(func(code int) { exitCode = code }))
		check.Exit(state, "message")

		assert.Equal(t, state.ExitCode(), exitCode)
		assert.Equal(t, state.String()+": message\n\n", output.String())
	}
}

func TestCheckExitInvalidSeverity(t *testing.T) {
	t.Parallel()

	output := &bytes.Buffer{}
	exitCode := -1
	check := NewCheck(WithOutput(output), WithExitFunc(func(code int) { exitCode = code }))
	check.AddMessage(Severity(7), "broken")
	assert.Equal(t, []string{"broken"}, check.Messages(Unknown))

	check.Exit(Severity(7), "broken")
	assert.Equal(t, 3, exitCode)
	assert.Equal(t, "UNKNOWN: broken\n\n", output.String())
}

func TestCheckExitByName(t *testing.T) {
	t.Parallel()

	output := &bytes.Buffer{}
	exitCode := -1
	check := NewCheck(WithOutput(output), WithExitFunc(func(code int) { exitCode = code }))

	require.ErrorIs(t, check.ExitByName("BROKEN", "x"), ErrUnknownSeverity)
	assert.Equal(t, -1, exitCode)
	assert.Empty(t, output.String())

	require.NoError(t, check.ExitByName("CRITICAL", "x"))
	assert.Equal(t, 2, exitCode)
	assert.Equal(t, "CRITICAL: x\n\n", output.String())
}

func TestCheckFinish(t *testing.T) {
	t.Parallel()

	output := &bytes.Buffer{}
	exitCode := -1
	check := NewCheck(WithOutput(output), WithExitFunc(func(code int) { exitCode = code }))
	check.AddMessage(OK, "ok")
	check.AddMessage(Warning, "load high")
	require.NoError(t, check.AddPerfData("load", 5))

	check.Finish(JoinAllWith(", "))

	assert.Equal(t, 1, exitCode)
	assert.Regexp(t, `^WARNING: load high, ok\n\| 'load'=5\.0;;;;\n'monplugin_time'=\d+\.\d{6}s\n\n$`, output.String())
}
