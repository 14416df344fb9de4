package cmd

import (
	"context"
	"os"
	"syscall"
	"testing"
	"time"
)

func TestOnInterrupt(t *testing.T) {
	sigs := make(chan os.Signal, 2)
	done := make(chan struct{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	exited := make(chan int, 1)
	go onInterrupt(sigs, done, cancel, func(code int) { exited <- code })

	sigs <- syscall.SIGINT
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("expected cancel on first interrupt")
	}
	select {
	case code := <-exited:
		t.Fatalf("unexpected exit %d on first interrupt", code)
	default:
	}

	sigs <- syscall.SIGINT
	select {
	case code := <-exited:
		if code != 130 {
			t.Errorf("expected exit code 130, got %d", code)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("expected exit on second interrupt")
	}
	close(done)
}

func TestOnInterruptDone(t *testing.T) {
	sigs := make(chan os.Signal, 2)
	done := make(chan struct{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	returned := make(chan struct{})
	go func() {
		onInterrupt(sigs, done, cancel, func(code int) { t.Errorf("unexpected exit %d", code) })
		close(returned)
	}()

	close(done)
	select {
	case <-returned:
	case <-time.After(5 * time.Second):
		t.Fatal("expected return when the run is done")
	}
	if ctx.Err() != nil {
		t.Error("expected no cancel without an interrupt")
	}
}
