package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"trajviz/internal/config"
	"trajviz/internal/export"
	"trajviz/internal/trajectory"
)

func sampleRows() []export.PointRow {
	return []export.PointRow{
		{Agent: "tug", Kind: trajectory.Scheduled, Order: 1, X: 0, Y: 0, T: 0},
		{Agent: "tug", Kind: trajectory.Scheduled, Order: 1, Index: 1, X: 1, Y: 2, T: 1, Endpoint: true},
	}
}

func TestNewRowWriterStdoutOnly(t *testing.T) {
	buf := &bytes.Buffer{}
	w, cleanup, err := newRowWriter(config.Defaults(), "", true, false, buf)
	if err != nil {
		t.Fatalf("newRowWriter returned error: %v", err)
	}
	defer cleanup()
	if _, ok := w.(*export.StdoutWriter); !ok {
		t.Fatalf("expected *export.StdoutWriter, got %T", w)
	}
	if err := w.WriteRows(sampleRows()); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if n := strings.Count(buf.String(), "\n"); n != 2 {
		t.Fatalf("expected 2 lines, got %d:\n%s", n, buf.String())
	}
}

func TestNewRowWriterJSONLAndStdout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.jsonl")
	buf := &bytes.Buffer{}
	w, cleanup, err := newRowWriter(config.Defaults(), path, true, false, buf)
	if err != nil {
		t.Fatalf("newRowWriter returned error: %v", err)
	}
	mw, ok := w.(*export.MultiWriter)
	if !ok {
		t.Fatalf("expected *export.MultiWriter, got %T", w)
	}
	if mw.Len() != 2 {
		t.Fatalf("expected 2 sinks, got %d", mw.Len())
	}
	if err := w.WriteRows(sampleRows()); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := cleanup(); err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("expected JSONL file to be non-empty")
	}
	if buf.Len() == 0 {
		t.Fatalf("expected stdout rows")
	}
}

func TestNewRowWriterGreptimeNeedsEndpoint(t *testing.T) {
	c := config.Defaults()
	c.Export.Greptime.Endpoint = ""
	if _, _, err := newRowWriter(c, "", false, true, nil); err == nil {
		t.Fatalf("expected error without a greptime endpoint")
	}
}

func TestNewRowWriterBadEpoch(t *testing.T) {
	c := config.Defaults()
	c.Export.Greptime.Endpoint = "127.0.0.1:4001"
	c.Export.Greptime.Epoch = "yesterday"
	if _, _, err := newRowWriter(c, "", false, true, nil); err == nil {
		t.Fatalf("expected error for an invalid epoch")
	}
}

func TestNewRowWriterCleanupReportsCloseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.jsonl")
	_, cleanup, err := newRowWriter(config.Defaults(), path, false, false, nil)
	if err != nil {
		t.Fatalf("newRowWriter returned error: %v", err)
	}
	if err := cleanup(); err != nil {
		t.Fatalf("first cleanup failed: %v", err)
	}
	if err := cleanup(); !errors.Is(err, os.ErrClosed) {
		t.Fatalf("expected os.ErrClosed from a second close, got %v", err)
	}
}

func TestNewRowWriterStdoutCleanupIsNoop(t *testing.T) {
	_, cleanup, err := newRowWriter(config.Defaults(), "", true, false, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("newRowWriter returned error: %v", err)
	}
	if err := cleanup(); err != nil {
		t.Fatalf("cleanup returned %v", err)
	}
}
