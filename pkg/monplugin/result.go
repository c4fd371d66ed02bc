package monplugin

import (
	"fmt"
)

// Result returns the complete plugin output for the given severity and message:
//
//	<SEVERITY>: <message>
//	<perfdata>
func (c *Check) Result(state Severity, message string) string {
	return fmt.Sprintf("%s: %s\n%s\n", state.String(), message, c.PerfData())
}

// Exit prints the plugin output and exits with the exit code of the severity.
func (c *Check) Exit(state Severity, message string) {
	_, err := fmt.Fprint(c.output, c.Result(state, message))
	LogError(err)
	c.exit(state.ExitCode())
}

// ExitByName is like Exit but takes the severity name, ex.: WARNING
func (c *Check) ExitByName(name, message string) error {
	state, err := ParseSeverity(name)
	if err != nil {
		return err
	}
	c.Exit(state, message)

	return nil
}

// Finish exits with the result of CheckMessages.
func (c *Check) Finish(opts ...MessageOption) {
	state, message := c.CheckMessages(opts...)
	c.Exit(state, message)
}
