// Package plotdata flattens trajectories into plot-ready point series.
package plotdata

import "trajviz/internal/trajectory"

// KindPoint is a trajectory point tagged with the movement kind of its segment.
type KindPoint struct {
	trajectory.SpacetimePoint
	Kind trajectory.MovementKind `json:"kind"`
}

// PlotSeries is the flattened view of one agent's trajectory.
type PlotSeries struct {
	Name      string      `json:"name"`
	Points    []KindPoint `json:"points"`
	Endpoints []KindPoint `json:"endpoints"`
}

// Run is a maximal stretch of consecutive points sharing one movement kind.
type Run struct {
	Kind   trajectory.MovementKind
	Points []trajectory.SpacetimePoint
}

// Extract walks the segments in order, emitting every point tagged with its
// segment's kind and the last point of each non-empty segment as an endpoint.
func Extract(t trajectory.AgentTrajectory) PlotSeries {
	s := PlotSeries{
		Name:      t.Config.Name,
		Points:    make([]KindPoint, 0, t.PointCount()),
		Endpoints: make([]KindPoint, 0, len(t.Segments)),
	}
	for _, seg := range t.Segments {
		for _, p := range seg.Points {
			s.Points = append(s.Points, KindPoint{SpacetimePoint: p, Kind: seg.Kind})
		}
		if n := len(seg.Points); n > 0 {
			s.Endpoints = append(s.Endpoints, KindPoint{SpacetimePoint: seg.Points[n-1], Kind: seg.Kind})
		}
	}
	return s
}

// ExtractAll extracts one series per trajectory, preserving order.
func ExtractAll(ts []trajectory.AgentTrajectory) []PlotSeries {
	out := make([]PlotSeries, 0, len(ts))
	for _, t := range ts {
		out = append(out, Extract(t))
	}
	return out
}

// Runs splits the flattened points into consecutive same-kind stretches.
// Adjacent segments of the same kind merge into one run.
func (s PlotSeries) Runs() []Run {
	var runs []Run
	for _, p := range s.Points {
		if n := len(runs); n > 0 && runs[n-1].Kind == p.Kind {
			runs[n-1].Points = append(runs[n-1].Points, p.SpacetimePoint)
			continue
		}
		runs = append(runs, Run{Kind: p.Kind, Points: []trajectory.SpacetimePoint{p.SpacetimePoint}})
	}
	return runs
}

// ByKind groups the flattened points per movement kind, keeping their order.
func (s PlotSeries) ByKind() map[trajectory.MovementKind][]trajectory.SpacetimePoint {
	out := make(map[trajectory.MovementKind][]trajectory.SpacetimePoint)
	for _, p := range s.Points {
		out[p.Kind] = append(out[p.Kind], p.SpacetimePoint)
	}
	return out
}

// Extent is the bounding box of a set of series in space and time.
type Extent struct {
	MinX, MaxX float64
	MinY, MaxY float64
	MinT, MaxT float64
}

// Bounds returns the extent of all points in series. ok is false if there are none.
func Bounds(series ...PlotSeries) (e Extent, ok bool) {
	for _, s := range series {
		for _, p := range s.Points {
			if !ok {
				e = Extent{MinX: p.X, MaxX: p.X, MinY: p.Y, MaxY: p.Y, MinT: p.T, MaxT: p.T}
				ok = true
				continue
			}
			e.MinX, e.MaxX = min(e.MinX, p.X), max(e.MaxX, p.X)
			e.MinY, e.MaxY = min(e.MinY, p.Y), max(e.MaxY, p.Y)
			e.MinT, e.MaxT = min(e.MinT, p.T), max(e.MaxT, p.T)
		}
	}
	return e, ok
}
