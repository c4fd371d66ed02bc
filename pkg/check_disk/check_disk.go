package check_disk

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/consol-monitoring/monplugin/pkg/dump"
	"github.com/consol-monitoring/monplugin/pkg/monplugin"
	"github.com/dustin/go-humanize"
	"github.com/jessevdk/go-flags"
	"github.com/shirou/gopsutil/v3/disk"
	"golang.org/x/exp/slices"
)

// replaced in tests
var (
	diskPartitions = disk.PartitionsWithContext
	diskUsage      = disk.UsageWithContext
)

type diskOpts struct {
	Warning  string   `short:"w" long:"warning" default:"80" description:"Used space range in percent which results in a warning"`
	Critical string   `short:"c" long:"critical" default:"90" description:"Used space range in percent which results in a critical"`
	Paths    []string `short:"p" long:"path" description:"Mount point to check, can be repeated. Defaults to all physical partitions"`
	Exclude  []string `short:"x" long:"exclude-type" description:"Filesystem type to skip, can be repeated"`
	Inodes   bool     `short:"i" long:"inodes" description:"Also check used inodes against the thresholds"`
	Textfile string   `long:"textfile" description:"Write performance data as prometheus textfile"`
	Verbose  []bool   `short:"v" long:"verbose" description:"Increase log verbosity"`
}

// Check runs the disk check with the given arguments and returns the exit code.
func Check(ctx context.Context, output io.Writer, args []string) int {
	exitCode := monplugin.Unknown.ExitCode()
	check := monplugin.NewCheck(
		monplugin.WithOutput(output),
		monplugin.WithExitFunc(func(code int) { exitCode = code }),
	)

	opts, err := parseArgs(args)
	if err != nil {
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

	paths, err := opts.mountPoints(ctx)
	if err != nil {
		check.Exit(monplugin.Unknown, err.Error())

		return exitCode
	}
	if len(paths) == 0 {
		check.Exit(monplugin.Unknown, "no filesystems found")

		return exitCode
	}

	for _, path := range paths {
		if err := opts.checkPath(ctx, check, path); err != nil {
			check.Exit(monplugin.Unknown, err.Error())

			return exitCode
		}
	}

	if opts.Textfile != "" {
		monplugin.LogError(monplugin.WriteTextfile(opts.Textfile, check))
	}

	check.Finish(monplugin.JoinAllWith(", "), monplugin.JoinWith(", "))

	return exitCode
}

func parseArgs(args []string) (*diskOpts, error) {
	opts := &diskOpts{}
	psr := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash)
	psr.Name = "check_disk"
	_, err := psr.ParseArgs(args)

	return opts, err
}

// mountPoints returns the given paths or all physical partitions which are not excluded.
func (opts *diskOpts) mountPoints(ctx context.Context) ([]string, error) {
	if len(opts.Paths) > 0 {
		return opts.Paths, nil
	}

	partitions, err := diskPartitions(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("cannot list partitions: %s", err.Error())
	}
	if len(opts.Verbose) >= monplugin.LogVerbosityTrace {
		monplugin.Logger().Tracef("partitions:\n%s", dump.String(partitions))
	}

	paths := make([]string, 0, len(partitions))
	for _, part := range partitions {
		if slices.Contains(opts.Exclude, part.Fstype) {
			continue
		}
		if slices.Contains(paths, part.Mountpoint) {
			continue
		}
		paths = append(paths, part.Mountpoint)
	}

	return paths, nil
}

type diskMetric struct {
	label string
	value float64
	opts  []monplugin.MetricOption
}

func (opts *diskOpts) checkPath(ctx context.Context, check *monplugin.Check, path string) error {
	usage, err := diskUsage(ctx, path)
	if err != nil {
		return fmt.Errorf("cannot read usage of %s: %s", path, err.Error())
	}

	values := []float64{usage.UsedPercent}
	msg := fmt.Sprintf("%s %.1f%% used (%s of %s)", path, usage.UsedPercent, humanize.IBytes(usage.Used), humanize.IBytes(usage.Total))
	if opts.Inodes && usage.InodesTotal > 0 {
		values = append(values, usage.InodesUsedPercent)
		msg += fmt.Sprintf(", %.1f%% inodes used", usage.InodesUsedPercent)
	}
	check.AddMessage(check.CheckThreshold(values...), msg)

	metrics := []diskMetric{
		{"used", float64(usage.Used), []monplugin.MetricOption{monplugin.WithUnit("B"), monplugin.WithMin(0), monplugin.WithMax(float64(usage.Total))}},
		{"free", float64(usage.Free), []monplugin.MetricOption{monplugin.WithUnit("B"), monplugin.WithMin(0), monplugin.WithMax(float64(usage.Total))}},
		{"used_pct", usage.UsedPercent, []monplugin.MetricOption{monplugin.WithUnit("%"), monplugin.WithThreshold(check.Threshold()), monplugin.WithMin(0), monplugin.WithMax(100)}},
	}
	if opts.Inodes && usage.InodesTotal > 0 {
		metrics = append(metrics, diskMetric{"inodes_used_pct", usage.InodesUsedPercent, []monplugin.MetricOption{monplugin.WithUnit("%"), monplugin.WithThreshold(check.Threshold()), monplugin.WithMin(0), monplugin.WithMax(100)}})
	}

	for _, m := range metrics {
		if err := check.AddPerfMultiData(path, "usage", m.label, m.value, m.opts...); err != nil {
			return err
		}
	}

	return nil
}
