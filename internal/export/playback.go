package export

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"time"
)

// Replay streams rows from a JSONL export in r to w one at a time. Rows are
// paced by their trajectory time divided by speed; a speed <= 0 replays
// without delay. Backwards steps in t (a new agent starting) are not waited on.
func Replay(ctx context.Context, r io.Reader, w RowWriter, speed float64) (int, error) {
	dec := json.NewDecoder(r)
	n := 0
	var prev float64
	for {
		var row PointRow
		if err := dec.Decode(&row); err != nil {
			if err == io.EOF {
				return n, nil
			}
			return n, err
		}
		if n > 0 && speed > 0 {
			if diff := time.Duration((row.T - prev) / speed * float64(time.Second)); diff > 0 {
				select {
				case <-ctx.Done():
					return n, ctx.Err()
				case <-time.After(diff):
				}
			}
		}
		if err := ctx.Err(); err != nil {
			return n, err
		}
		if err := w.WriteRows([]PointRow{row}); err != nil {
			return n, err
		}
		prev = row.T
		n++
	}
}

// ReplayFile opens path and replays its rows.
func ReplayFile(ctx context.Context, path string, w RowWriter, speed float64) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return Replay(ctx, f, w, speed)
}
