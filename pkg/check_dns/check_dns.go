package check_dns

import (
	"context"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/consol-monitoring/monplugin/pkg/monplugin"
	"github.com/jessevdk/go-flags"
	"github.com/miekg/dns"
)

// Check runs the dns check with the given arguments and returns the exit code.
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

	if err := opts.run(ctx, check); err != nil {
		check.Exit(monplugin.Critical, err.Error())

		return exitCode
	}

	if opts.Textfile != "" {
		monplugin.LogError(monplugin.WriteTextfile(opts.Textfile, check))
	}

	check.Finish(monplugin.JoinAllWith(", "), monplugin.JoinWith(", "))

	return exitCode
}

// adopted from https://raw.githubusercontent.com/mackerelio/go-check-plugins/master/check-dns/lib/
// Apache-2.0 license
type dnsOpts struct {
	Host           string        `short:"H" long:"host" required:"true" description:"The name or address you want to query"`
	Server         string        `short:"s" long:"server" env:"CHECK_DNS_SERVER" description:"DNS server you want to use for the lookup"`
	Port           int           `short:"p" long:"port" default:"53" description:"Port number you want to use"`
	QueryType      string        `short:"q" long:"querytype" default:"A" description:"DNS record query type"`
	Norec          bool          `long:"norec" description:"Set not recursive mode"`
	ExpectedString []string      `short:"e" long:"expected-string" description:"IP-ADDRESS string you expect the DNS server to return. If multiple IP-ADDRESS are returned at once, you have to specify whole string"`
	Warning        string        `short:"w" long:"warning" default:"" description:"Response time range in seconds which results in a warning"`
	Critical       string        `short:"c" long:"critical" default:"" description:"Response time range in seconds which results in a critical"`
	Timeout        time.Duration `short:"t" long:"timeout" default:"10s" description:"Query timeout"`
	Textfile       string        `long:"textfile" description:"Write performance data as prometheus textfile"`
	Verbose        []bool        `short:"v" long:"verbose" description:"Increase log verbosity"`
}

func parseArgs(args []string) (*dnsOpts, error) {
	opts := &dnsOpts{}
	psr := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash) // default flags without flags.PrintErrors
	psr.Name = "check_dns"
	_, err := psr.ParseArgs(args)

	return opts, err
}

func (opts *dnsOpts) nameserver() (string, error) {
	nameserver := opts.Server
	if nameserver == "" {
		var err error
		nameserver, err = adapterAddress()
		if err != nil {
			return "", err
		}
	}

	return net.JoinHostPort(nameserver, strconv.Itoa(opts.Port)), nil
}

func (opts *dnsOpts) run(ctx context.Context, check *monplugin.Check) error {
	nameserver, err := opts.nameserver()
	if err != nil {
		return err
	}

	queryType, ok := dns.StringToType[strings.ToUpper(opts.QueryType)]
	if !ok {
		return fmt.Errorf("%s is invalid query type", opts.QueryType)
	}

	client := &dns.Client{Timeout: opts.Timeout}
	msg := &dns.Msg{
		MsgHdr: dns.MsgHdr{
			RecursionDesired: !opts.Norec,
			Opcode:           dns.OpcodeQuery,
		},
		Question: []dns.Question{{Name: dns.Fqdn(opts.Host), Qtype: queryType, Qclass: dns.StringToClass["IN"]}},
	}
	msg.Id = dns.Id()

	resp, rtt, err := client.ExchangeContext(ctx, msg, nameserver)
	if err != nil {
		return fmt.Errorf("query %s failed: %s", nameserver, err.Error())
	}

	return opts.evaluate(check, nameserver, resp, rtt)
}

// evaluate adds messages and metrics for a dns response.
func (opts *dnsOpts) evaluate(check *monplugin.Check, nameserver string, resp *dns.Msg, rtt time.Duration) error {
	monplugin.Logger().Debugf("HEADER-> %s", resp.MsgHdr.String())

	/**
	  if DNS server return 1.1.1.1, 2.2.2.2
		1: -e 1.1.1.1 -e 2.2.2.2            -> OK
		2: -e 1.1.1.1 -e 2.2.2.2 -e 3.3.3.3 -> WARNING
		3: -e 1.1.1.1                       -> WARNING
		4: -e 1.1.1.1 -e 3.3.3.3            -> WARNING
		5: -e 3.3.3.3                       -> CRITICAL
		6: -e 3.3.3.3 -e 4.4.4.4 -e 5.5.5.5 -> CRITICAL
	**/
	if len(opts.ExpectedString) != 0 {
		supportedQueryType := map[string]int{"A": 1, "AAAA": 1, "MX": 1, "CNAME": 1}
		if _, ok := supportedQueryType[strings.ToUpper(opts.QueryType)]; !ok {
			return fmt.Errorf("%s is not supported query type. Only A, AAAA, MX, CNAME are supported query types", opts.QueryType)
		}
		match := 0
		for _, expectedString := range opts.ExpectedString {
			for _, answer := range resp.Answer {
				answerWithoutHeader, _, err := dnsAnswer(answer)
				if err != nil {
					return err
				}
				if answerWithoutHeader == expectedString {
					match++
				}
			}
		}
		expected := strings.Join(opts.ExpectedString, ", ")
		switch {
		case match == len(resp.Answer) && len(opts.ExpectedString) == len(resp.Answer): // case 1
			check.AddMessage(monplugin.OK, fmt.Sprintf("got expected answer %s", expected))
		case match == len(resp.Answer): // case 2
			check.AddMessage(monplugin.Warning, fmt.Sprintf("expected more answers than %d", len(resp.Answer)))
		case match > 0: // case 3,4
			check.AddMessage(monplugin.Warning, fmt.Sprintf("only %d of %d answers matched %s", match, len(resp.Answer), expected))
		default: // case 5,6
			check.AddMessage(monplugin.Critical, fmt.Sprintf("no answer matched %s", expected))
		}
	}

	if resp.MsgHdr.Rcode != dns.RcodeSuccess {
		check.AddMessage(monplugin.Critical, fmt.Sprintf("%s returned %s", nameserver, dns.RcodeToString[resp.MsgHdr.Rcode]))
	}

	if len(resp.Answer) > 0 {
		res, dnsType, err := dnsAnswer(resp.Answer[0])
		if err != nil {
			check.AddMessage(monplugin.Warning, err.Error())
		} else {
			check.AddMessage(monplugin.OK, fmt.Sprintf("%s returns %s (%s)", opts.Host, res, dnsType))
		}
	} else {
		check.AddMessage(monplugin.OK, fmt.Sprintf("%s (%s) returns no answer from %s", opts.Host, opts.QueryType, nameserver))
	}
	for _, answer := range resp.Answer {
		monplugin.Logger().Debugf("ANSWER-> %s", answer)
	}

	seconds := rtt.Seconds()
	if state := check.CheckThreshold(seconds); state != monplugin.OK {
		check.AddMessage(state, fmt.Sprintf("response time %.3fs", seconds))
	}

	if err := check.AddPerfData("time", seconds, monplugin.WithUnit("s"), monplugin.WithThreshold(check.Threshold()), monplugin.WithMin(0)); err != nil {
		return err
	}
	if err := check.AddPerfData("answers", float64(len(resp.Answer)), monplugin.WithMin(0)); err != nil {
		return err
	}

	return nil
}

func dnsAnswer(answer dns.RR) (string, string, error) {
	switch t := answer.(type) {
	case *dns.A:
		return t.A.String(), "A", nil
	case *dns.AAAA:
		return t.AAAA.String(), "AAAA", nil
	case *dns.MX:
		return t.Mx, "MX", nil
	case *dns.CNAME:
		return t.Target, "CNAME", nil
	default:
		return "", "", fmt.Errorf("%T is not supported query type. Only A, AAAA, MX, CNAME is supported for expectation", t)
	}
}
