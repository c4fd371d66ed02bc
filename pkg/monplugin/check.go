package monplugin

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Check collects messages and performance data of a single plugin run.
// It is not safe for concurrent use.
type Check struct {
	threshold  *Threshold
	messages   map[Severity][]string
	perf       perfData
	start      time.Time
	output     io.Writer
	exit       func(int)
	advisories []string
}

// CheckOption configures a Check.
type CheckOption func(*Check)

// WithCheckThreshold sets the threshold used by CheckThreshold.
func WithCheckThreshold(threshold *Threshold) CheckOption {
	return func(c *Check) {
		c.SetThreshold(threshold)
	}
}

// WithOutput sets the writer for the plugin output, default is stdout.
func WithOutput(output io.Writer) CheckOption {
	return func(c *Check) {
		c.output = output
	}
}

// WithExitFunc replaces os.Exit.
func WithExitFunc(exit func(int)) CheckOption {
	return func(c *Check) {
		c.exit = exit
	}
}

// WithShortname is deprecated and has no effect.
//
// Deprecated: the plugin output always starts with the severity name.
func WithShortname(name string) CheckOption {
	return func(c *Check) {
		c.advise(fmt.Sprintf("shortname %q is deprecated and will be ignored", name))
	}
}

// NewCheck creates a new Check and starts its timer.
func NewCheck(opts ...CheckOption) *Check {
	check := &Check{
		threshold: &Threshold{},
		messages: map[Severity][]string{
			OK:       {},
			Warning:  {},
			Critical: {},
			Unknown:  {},
		},
		perf:   newPerfData(),
		start:  time.Now(),
		output: os.Stdout,
		exit:   os.Exit,
	}

	for _, opt := range opts {
		opt(check)
	}

	return check
}

func (c *Check) advise(msg string) {
	log.Warnf("%s", msg)
	c.advisories = append(c.advisories, msg)
}

// Advisories returns non-fatal notices about deprecated usage.
func (c *Check) Advisories() []string {
	return append([]string{}, c.advisories...)
}

// SetThreshold replaces the threshold, nil resets to an empty threshold.
func (c *Check) SetThreshold(threshold *Threshold) {
	if threshold == nil {
		threshold = &Threshold{}
	}
	c.threshold = threshold
}

// Threshold returns the current threshold.
func (c *Check) Threshold() *Threshold {
	return c.threshold
}

// CheckThreshold returns the severity of the values against the threshold of this check.
func (c *Check) CheckThreshold(values ...float64) Severity {
	return c.threshold.Status(values...)
}

// AddMessage appends messages to the bucket of the given severity.
// Unknown messages are stored but never change the result of CheckMessages.
func (c *Check) AddMessage(state Severity, messages ...string) {
	if _, ok := c.messages[state]; !ok {
		log.Warnf("invalid severity %d, adding messages as %s", int(state), Unknown)
		state = Unknown
	}
	c.messages[state] = append(c.messages[state], messages...)
}

// AddMessageByName is like AddMessage but takes the severity name, ex.: CRITICAL
func (c *Check) AddMessageByName(name string, messages ...string) error {
	state, err := ParseSeverity(name)
	if err != nil {
		return err
	}
	c.AddMessage(state, messages...)

	return nil
}

// Messages returns a copy of all messages of the given severity.
func (c *Check) Messages(state Severity) []string {
	return append([]string{}, c.messages[state]...)
}

// MessageOption changes how CheckMessages joins messages.
type MessageOption func(*messageConfig)

type messageConfig struct {
	separator    string
	separatorAll string
	allOK        string
}

// JoinWith sets the separator between messages of the same severity, default is a single space.
func JoinWith(separator string) MessageOption {
	return func(conf *messageConfig) {
		conf.separator = separator
	}
}

// JoinAllWith enables listing all severities, critical first, joined by separator.
func JoinAllWith(separator string) MessageOption {
	return func(conf *messageConfig) {
		conf.separatorAll = separator
	}
}

// AllOK replaces the message if the result is OK and omits ok messages from JoinAllWith listings.
func AllOK(message string) MessageOption {
	return func(conf *messageConfig) {
		conf.allOK = message
	}
}

// CheckMessages returns the highest severity with messages and the resulting message.
func (c *Check) CheckMessages(opts ...MessageOption) (Severity, string) {
	conf := &messageConfig{separator: " "}
	for _, opt := range opts {
		opt(conf)
	}

	state := OK
	switch {
	case len(c.messages[Critical]) > 0:
		state = Critical
	case len(c.messages[Warning]) > 0:
		state = Warning
	}

	var message string
	if conf.separatorAll != "" {
		parts := []string{}
		for _, s := range []Severity{Critical, Warning} {
			if len(c.messages[s]) > 0 {
				parts = append(parts, strings.Join(c.messages[s], conf.separator))
			}
		}
		if conf.allOK == "" {
			parts = append(parts, strings.Join(c.messages[OK], conf.separator))
		}
		message = strings.Join(parts, conf.separatorAll)
	} else {
		message = strings.Join(c.messages[state], conf.separator)
	}

	if conf.allOK != "" && state == OK {
		message = conf.allOK
	}

	return state, message
}

// Elapsed returns the monotonic duration since the check was created.
func (c *Check) Elapsed() time.Duration {
	return time.Since(c.start)
}
