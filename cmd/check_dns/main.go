package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/consol-monitoring/monplugin/pkg/check_dns"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	rc := check_dns.Check(ctx, os.Stdout, os.Args[1:])
	cancel()
	os.Exit(rc)
}
