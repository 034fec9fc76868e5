package debug

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

func withBuffer(t *testing.T, on bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := Enabled()
	SetOutput(&buf)
	SetEnabled(on)
	t.Cleanup(func() {
		SetEnabled(prev)
		SetOutput(nopWriter{})
	})
	return &buf
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func TestLogDisabled(t *testing.T) {
	buf := withBuffer(t, false)
	Log("hidden %d", 1)
	LogTiming("hidden", time.Millisecond)
	LogIf(true, "hidden")
	LogEnterExit("hidden")()
	Dump("hidden", 1)
	Section("hidden")
	if buf.Len() != 0 {
		t.Errorf("Expected no output while disabled, got %q", buf.String())
	}
}

func TestLogEnabled(t *testing.T) {
	buf := withBuffer(t, true)
	Log("measured %d icons", 11)
	if !strings.Contains(buf.String(), "measured 11 icons") {
		t.Errorf("Expected message in output, got %q", buf.String())
	}

	buf.Reset()
	LogIf(false, "skipped")
	if buf.Len() != 0 {
		t.Errorf("LogIf(false) wrote %q", buf.String())
	}

	LogEnterExit("export")()
	out := buf.String()
	if !strings.Contains(out, "-> export") || !strings.Contains(out, "<- export") {
		t.Errorf("Expected enter/exit lines, got %q", out)
	}
}

func TestWarnAlwaysWrites(t *testing.T) {
	buf := withBuffer(t, false)
	Warn(errors.New("disk full"), "history store unavailable")
	if !strings.Contains(buf.String(), "disk full") {
		t.Errorf("Expected warning output, got %q", buf.String())
	}
}

// syncBuffer serialises writes so the test itself does not race.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSetOutputWhileLogging(t *testing.T) {
	prev := Enabled()
	SetEnabled(true)
	t.Cleanup(func() {
		SetEnabled(prev)
		SetOutput(nopWriter{})
	})

	final := &syncBuffer{}
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				Warn(errors.New("reload failed"), "icon texts")
				Log("step %d", j)
			}
		}()
	}
	for i := 0; i < 50; i++ {
		SetOutput(&syncBuffer{})
	}
	SetOutput(final)
	wg.Wait()

	Warn(errors.New("after swap"), "icon texts")
	if !strings.Contains(final.String(), "after swap") {
		t.Errorf("final writer missed output: %q", final.String())
	}
}
