// Trajectory model types
package trajectory

// Point2D is a planar coordinate.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Footprint is the spatial reach of an agent: an exterior ring plus optional holes.
type Footprint struct {
	Exterior  []Point2D   `json:"exterior"`
	Interiors [][]Point2D `json:"interiors"`
}

// Position is the initial location of an agent.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Velocity is the initial velocity vector of an agent.
type Velocity struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// AgentConfig holds the static configuration of one agent.
type AgentConfig struct {
	Name         string    `json:"name"`
	Footprint    Footprint `json:"reach"`
	Position     Position  `json:"position"`
	Velocity     Velocity  `json:"velocity"`
	SafetyMargin float64   `json:"safety_x"`
	Order        int       `json:"order"`
}

// SpacetimePoint is a position sampled at time T.
type SpacetimePoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	T float64 `json:"t"`
}

// MovementSegment is a contiguous run of points sharing one movement kind.
type MovementSegment struct {
	Points []SpacetimePoint `json:"points"`
	Kind   MovementKind     `json:"kind"`
}

// AgentTrajectory is an agent's configuration plus its ordered segments.
type AgentTrajectory struct {
	Config   AgentConfig       `json:"config"`
	Segments []MovementSegment `json:"segments"`
}

// PointCount returns the number of points across all segments.
func (t AgentTrajectory) PointCount() int {
	n := 0
	for _, s := range t.Segments {
		n += len(s.Points)
	}
	return n
}

// TimeSpan returns the smallest and largest T across all points.
// ok is false when the trajectory has no points.
func (t AgentTrajectory) TimeSpan() (start, end float64, ok bool) {
	for _, s := range t.Segments {
		for _, p := range s.Points {
			if !ok {
				start, end, ok = p.T, p.T, true
				continue
			}
			if p.T < start {
				start = p.T
			}
			if p.T > end {
				end = p.T
			}
		}
	}
	return start, end, ok
}
