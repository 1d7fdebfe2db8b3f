package util

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// ReqContext returns a context cancelled on SIGTERM, SIGINT or SIGHUP.
func ReqContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, done := context.WithCancel(parent)
	sigChan := make(chan os.Signal, 2)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT, syscall.SIGHUP)
	go func() {
		select {
		case <-sigChan:
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
		done()
	}()

	return ctx, done
}
