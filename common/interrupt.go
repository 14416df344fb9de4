package common

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// Interrupted delivers the first interrupt or termination signal
// received before ctx is done. Signal delivery stops with ctx.
func Interrupted(ctx context.Context) <-chan os.Signal {
	interrupt := make(chan os.Signal, 2)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-ctx.Done()
		signal.Stop(interrupt)
	}()
	return interrupt
}
