package check_ntp

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/beevik/ntp"
	"github.com/consol-monitoring/monplugin/pkg/monplugin"
	"github.com/jessevdk/go-flags"
)

// replaced in tests
var ntpQuery = ntp.QueryWithOptions

type ntpOpts struct {
	Host     string        `short:"H" long:"host" default:"pool.ntp.org" env:"CHECK_NTP_HOST" description:"NTP server to query"`
	Port     int           `short:"p" long:"port" default:"123" description:"NTP port"`
	Warning  string        `short:"w" long:"warning" default:"-0.5:0.5" description:"Clock offset range in seconds which results in a warning"`
	Critical string        `short:"c" long:"critical" default:"-1:1" description:"Clock offset range in seconds which results in a critical"`
	Timeout  time.Duration `short:"t" long:"timeout" default:"10s" description:"Query timeout"`
	Textfile string        `long:"textfile" description:"Write performance data as prometheus textfile"`
	Verbose  []bool        `short:"v" long:"verbose" description:"Increase log verbosity"`
}

// Check queries the ntp server and returns the exit code.
func Check(ctx context.Context, output io.Writer, args []string) int {
	exitCode := monplugin.Unknown.ExitCode()
	check := monplugin.NewCheck(
		monplugin.WithOutput(output),
		monplugin.WithExitFunc(func(code int) { exitCode = code }),
	)

	opts := &ntpOpts{}
	psr := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash)
	psr.Name = "check_ntp"
	if _, err := psr.ParseArgs(args); err != nil {
		check.Exit(monplugin.Unknown, strings.TrimSpace(err.Error()))

		return exitCode
	}
	monplugin.SetVerbosity(len(opts.Verbose))

	threshold, err := monplugin.NewThreshold(opts.Warning, opts.Critical)
	if err != nil {
		check.Exit(monplugin.Unknown, err.Error())

		return exitCode
	}
	check.SetThreshold(threshold)

	if err := opts.run(ctx, check); err != nil {
		check.Exit(monplugin.Critical, err.Error())

		return exitCode
	}

	if opts.Textfile != "" {
		monplugin.LogError(monplugin.WriteTextfile(opts.Textfile, check))
	}

	check.Finish()

	return exitCode
}

func (opts *ntpOpts) run(ctx context.Context, check *monplugin.Check) error {
	timeout := opts.Timeout
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		timeout = time.Until(deadline)
	}

	resp, err := ntpQuery(opts.Host, ntp.QueryOptions{Timeout: timeout, Port: opts.Port})
	if err != nil {
		return fmt.Errorf("ntp query to %s failed: %s", opts.Host, err.Error())
	}
	if err := resp.Validate(); err != nil {
		return fmt.Errorf("invalid ntp response from %s: %s", opts.Host, err.Error())
	}

	offset := resp.ClockOffset.Seconds()
	state := check.CheckThreshold(offset)
	check.AddMessage(state, fmt.Sprintf("offset %.6fs from %s (stratum %d)", offset, opts.Host, resp.Stratum))

	if err := check.AddPerfData("offset", offset, monplugin.WithUnit("s"), monplugin.WithThreshold(check.Threshold())); err != nil {
		return err
	}
	if err := check.AddPerfData("stratum", float64(resp.Stratum), monplugin.WithMin(0), monplugin.WithMax(16)); err != nil {
		return err
	}
	if err := check.AddPerfData("rtt", resp.RTT.Seconds(), monplugin.WithUnit("s"), monplugin.WithMin(0)); err != nil {
		return err
	}

	return nil
}
