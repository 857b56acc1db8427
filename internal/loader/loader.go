// Batch loading of trajectory documents
package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"trajviz/internal/logging"
	"trajviz/internal/trajectory"
)

// ErrNotSequence is returned when the document root is not a sequence of entries.
var ErrNotSequence = errors.New("document root is not a sequence")

// SourceError means the document itself is broken and nothing could be loaded.
// It never describes a single bad record.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("load document: %v", e.Err)
	}
	return fmt.Sprintf("load %s: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// Rejection records one top-level entry that failed to parse.
type Rejection struct {
	Index int
	Agent string
	Err   error
}

// Result is the accepted subset of a document plus the rejected entries.
type Result struct {
	ID           string
	Trajectories []trajectory.AgentTrajectory
	Rejections   []Rejection
}

// Total returns the number of top-level entries seen.
func (r *Result) Total() int { return len(r.Trajectories) + len(r.Rejections) }

// Accepted returns the number of parsed trajectories.
func (r *Result) Accepted() int { return len(r.Trajectories) }

// Rejected returns the number of skipped entries.
func (r *Result) Rejected() int { return len(r.Rejections) }

// Options tune a load.
type Options struct {
	// Workers > 1 parses entries concurrently. Output order is unaffected.
	Workers int
}

// Decode reads a YAML or JSON document into an untyped tree.
func Decode(r io.Reader) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	var root any
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return root, nil
}

// LoadFile reads, decodes and loads the document at path.
func LoadFile(ctx context.Context, path string, opts Options) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &SourceError{Source: path, Err: err}
	}
	res, err := LoadReader(ctx, bytes.NewReader(data), opts)
	if err != nil {
		var se *SourceError
		if errors.As(err, &se) {
			se.Source = path
		}
		return nil, err
	}
	return res, nil
}

// LoadReader decodes and loads a document from r.
func LoadReader(ctx context.Context, r io.Reader, opts Options) (*Result, error) {
	root, err := Decode(r)
	if err != nil {
		return nil, &SourceError{Err: err}
	}
	return Load(ctx, root, opts)
}

type outcome struct {
	traj trajectory.AgentTrajectory
	err  error
}

// Load parses every entry of root. Entries that fail are logged and skipped;
// only a root that is not a sequence fails the whole load.
func Load(ctx context.Context, root any, opts Options) (*Result, error) {
	entries, ok := root.([]any)
	if !ok {
		return nil, &SourceError{Err: fmt.Errorf("%w: got %T", ErrNotSequence, root)}
	}

	res := &Result{ID: uuid.NewString()}
	log := logging.FromContext(ctx).With(slog.String("load_id", res.ID))

	outcomes, err := parseAll(ctx, entries, opts.Workers)
	if err != nil {
		return nil, err
	}

	for i, o := range outcomes {
		if o.err != nil {
			name, _ := trajectory.AgentName(entries[i])
			res.Rejections = append(res.Rejections, Rejection{Index: i, Agent: name, Err: o.err})
			log.Warn("skipping malformed entry",
				slog.Int("index", i),
				slog.String("agent", name),
				slog.Any("err", o.err))
			continue
		}
		res.Trajectories = append(res.Trajectories, o.traj)
	}

	log.Info("document loaded",
		slog.Int("total", res.Total()),
		slog.Int("accepted", res.Accepted()),
		slog.Int("rejected", res.Rejected()))
	return res, nil
}

func parseAll(ctx context.Context, entries []any, workers int) ([]outcome, error) {
	out := make([]outcome, len(entries))
	if workers <= 1 {
		for i, e := range entries {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			t, err := trajectory.ParseTrajectory(e)
			out[i] = outcome{traj: t, err: err}
		}
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, e := range entries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			t, err := trajectory.ParseTrajectory(e)
			out[i] = outcome{traj: t, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
