package core

import (
	"bytes"
	"strings"
	"testing"
)

func TestGoRecoversAndCleansUp(t *testing.T) {
	var buf bytes.Buffer
	exited := make(chan int, 1)
	cleaned := false

	crashOut = &buf
	exit = func(code int) { exited <- code }
	RegisterCleanup(func() { cleaned = true })
	defer func() {
		RegisterCleanup(nil)
	}()

	Go(func() { panic("decoder exploded") })

	if code := <-exited; code != 1 {
		t.Errorf("Expected exit code 1, got %d", code)
	}
	if !cleaned {
		t.Error("Expected cleanup hook to run")
	}
	if !strings.Contains(buf.String(), "decoder exploded") {
		t.Errorf("Expected panic value in crash output, got %q", buf.String())
	}
}

func TestHandleCrashNil(t *testing.T) {
	exit = func(int) { t.Error("Expected no exit for nil panic") }
	HandleCrash(nil)
}
