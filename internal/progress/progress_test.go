package progress

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	indicator := New(context.Background(), &buf, "Scoring", 10)

	if indicator == nil {
		t.Fatal("New() returned nil")
	}
	if indicator.label != "Scoring" {
		t.Errorf("label = %q, want %q", indicator.label, "Scoring")
	}
	if indicator.total != 10 {
		t.Errorf("total = %d, want 10", indicator.total)
	}
	if indicator.IsActive() {
		t.Error("indicator should not be active initially")
	}
}

func TestIncrementConcurrent(t *testing.T) {
	indicator := New(context.Background(), &bytes.Buffer{}, "Scoring", 200)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 25 {
				indicator.Increment()
			}
		}()
	}
	wg.Wait()

	if got := indicator.Done(); got != 200 {
		t.Errorf("Done() = %d, want 200", got)
	}
}

func TestLine(t *testing.T) {
	indicator := New(context.Background(), &bytes.Buffer{}, "Building statistics", 4)
	indicator.Increment()
	indicator.SetLabel("Scoring documents")

	if got, want := indicator.line(1), "\r◠ Scoring documents 1/4"; got != want {
		t.Errorf("line() = %q, want %q", got, want)
	}
}

func TestStartStopOutput(t *testing.T) {
	var buf bytes.Buffer
	indicator := New(context.Background(), &buf, "Processing", 3)

	indicator.Start()
	indicator.Start() // second start is a no-op
	if !indicator.IsActive() {
		t.Error("indicator should be active after Start()")
	}

	indicator.Increment()
	time.Sleep(250 * time.Millisecond)

	indicator.Stop()
	indicator.Stop() // second stop is a no-op
	if indicator.IsActive() {
		t.Error("indicator should not be active after Stop()")
	}

	output := buf.String()
	if !strings.Contains(output, "Processing 1/3") {
		t.Errorf("output %q should contain the counter", output)
	}
	// buffers are not terminals, so the line ends with a bare carriage return
	if !strings.HasSuffix(output, "\r") {
		t.Error("expected output to end with carriage return")
	}
}

func TestStopWithoutStart(t *testing.T) {
	var buf bytes.Buffer
	indicator := New(context.Background(), &buf, "Idle", 1)

	indicator.Stop()

	if indicator.IsActive() {
		t.Error("indicator should not be active after Stop() without Start()")
	}
	if buf.Len() != 0 {
		t.Errorf("Stop() without Start() wrote %q", buf.String())
	}
}

func TestEnabled(t *testing.T) {
	if Enabled(&bytes.Buffer{}) {
		t.Error("Enabled() should be false for a buffer")
	}
}
