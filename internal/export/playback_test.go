package export

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func encodeRows(t *testing.T, rows []PointRow) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, r := range rows {
		if err := enc.Encode(r); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	return &buf
}

func TestReplay(t *testing.T) {
	rows := Rows(sampleTrajectory())
	rw := &recordingWriter{}
	n, err := Replay(context.Background(), encodeRows(t, rows), rw, 0)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if n != len(rows) {
		t.Fatalf("expected %d rows, got %d", len(rows), n)
	}
	if diff := cmp.Diff(rows, rw.rows); diff != "" {
		t.Fatalf("replayed rows mismatch (-want +got):\n%s", diff)
	}
	if rw.calls != len(rows) {
		t.Fatalf("expected one write per row, got %d writes", rw.calls)
	}
}

func TestReplayPacing(t *testing.T) {
	rows := []PointRow{{Agent: "a", T: 0}, {Agent: "a", T: 1}, {Agent: "b", T: 0}}
	rw := &recordingWriter{}
	start := time.Now()
	if _, err := Replay(context.Background(), encodeRows(t, rows), rw, 20); err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if el := time.Since(start); el < 40*time.Millisecond {
		t.Fatalf("expected replay to wait about 50ms, took %v", el)
	}
}

func TestReplayCancelled(t *testing.T) {
	rows := []PointRow{{Agent: "a", T: 0}, {Agent: "a", T: 3600}}
	ctx, cancel := context.WithCancel(context.Background())
	rw := &recordingWriter{}
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	n, err := Replay(ctx, encodeRows(t, rows), rw, 1)
	if err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 row before cancel, got %d", n)
	}
}

func TestReplayBadInput(t *testing.T) {
	if _, err := Replay(context.Background(), strings.NewReader("{not json"), &recordingWriter{}, 0); err == nil {
		t.Fatalf("expected decode error")
	}
}
