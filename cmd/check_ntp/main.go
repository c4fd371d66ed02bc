package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/consol-monitoring/monplugin/pkg/check_ntp"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	rc := check_ntp.Check(ctx, os.Stdout, os.Args[1:])
	cancel()
	os.Exit(rc)
}
