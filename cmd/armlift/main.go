// Command armlift lifts 257×257 pixel tours into 8-arm configuration paths.
//
// Usage:
//
//	armlift lift tour.lkh --out submission.csv [--image image.csv]
//	armlift score submission.csv [--strict]
//	armlift patch --out full.csv piece1.csv piece2.csv ...
//	armlift reverse in.csv out.csv
//	armlift split tour.lkh --out-dir parts/
//
// Settings come from --config (YAML or JSON), overridden by ARMLIFT_*
// environment variables and the persistent flags.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
