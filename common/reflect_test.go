package common

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"syscall"
	"testing"
	"time"
)

func HelloWorld() {}

func TestReflectFunctionName(t *testing.T) {
	got := ReflectFunctionName(HelloWorld)
	want := "github.com/rotblauer/polytag/common.HelloWorld"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got := ReflectFunctionName(strings.ToUpper); got != "strings.ToUpper" {
		t.Errorf("got %q, want %q", got, "strings.ToUpper")
	}
	var nilFn func()
	if got := ReflectFunctionName(nilFn); got != "" {
		t.Errorf("got %q for nil func, want empty", got)
	}
}

func TestSlogResetLevel(t *testing.T) {
	reset := SlogResetLevel(slog.LevelError)
	if slog.Default().Enabled(context.Background(), slog.LevelWarn) {
		t.Error("expected warn disabled")
	}
	reset()
	if !slog.Default().Enabled(context.Background(), slog.LevelInfo) {
		t.Error("expected info enabled after reset")
	}
}

func TestInterrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	sigs := Interrupted(ctx)
	if err := syscall.Kill(os.Getpid(), syscall.SIGQUIT); err != nil {
		t.Fatal(err)
	}
	select {
	case sig := <-sigs:
		if sig != syscall.SIGQUIT {
			t.Errorf("expected SIGQUIT, got %v", sig)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("expected a signal")
	}
	cancel()
}
