package logger

import (
	"bytes"
	"os"
	"sync"
	"testing"
)

func resetLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := new(bytes.Buffer)
	SetOutput(buf)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return buf
}

func TestSetVerbose(t *testing.T) {
	resetLogger(t)

	SetVerbose(false)
	if IsVerbose() {
		t.Error("expected verbose off by default")
	}

	SetVerbose(true)
	if !IsVerbose() {
		t.Error("expected verbose on after SetVerbose(true)")
	}

	SetVerbose(false)
	if IsVerbose() {
		t.Error("expected verbose off after SetVerbose(false)")
	}
}

func TestDebug_OnlyWhenVerbose(t *testing.T) {
	buf := resetLogger(t)

	SetVerbose(false)
	Debug("chunked %d pages", 3)
	if buf.Len() > 0 {
		t.Errorf("expected silence when verbose is off, got %q", buf.String())
	}

	SetVerbose(true)
	Debug("chunked %d pages", 3)
	if got := buf.String(); got != "[DEBUG] chunked 3 pages\n" {
		t.Errorf("unexpected debug output: %q", got)
	}
}

func TestInfo(t *testing.T) {
	buf := resetLogger(t)
	SetVerbose(true)

	Info("indexed %s", "report.pdf")

	if got := buf.String(); got != "[INFO] indexed report.pdf\n" {
		t.Errorf("unexpected info output: %q", got)
	}
}

func TestWarn(t *testing.T) {
	buf := resetLogger(t)
	SetVerbose(true)

	Warn("vision service unavailable")

	if got := buf.String(); got != "[WARN] vision service unavailable\n" {
		t.Errorf("unexpected warn output: %q", got)
	}
}

func TestSection(t *testing.T) {
	buf := resetLogger(t)
	SetVerbose(true)

	Section("Retrieval")

	if got := buf.String(); got != "\n=== Retrieval ===\n" {
		t.Errorf("unexpected section output: %q", got)
	}
}

func TestConcurrentAccess(t *testing.T) {
	resetLogger(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			SetVerbose(true)
			Debug("worker %d", n)
			IsVerbose()
			SetVerbose(false)
		}(i)
	}
	wg.Wait()
}
