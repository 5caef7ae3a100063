// Command swls runs sliding-window Lomb-Scargle periodograms over unevenly
// sampled tab-delimited signals.
//
// Usage:
//
//	swls run [flags]
//	swls segment [flags] <file>
//	swls pgram [flags] <file>
//	swls peaks <dir>
//
// Examples:
//
//	swls run
//	swls run --input 'data/*.dat' --output out/ --window 500 --step 250
//	swls run --config swls.yaml --no-plot --metrics-file swls.prom --strict
//	swls pgram --freq-num 2000 --plot series.png series.dat
//	swls peaks output/
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
