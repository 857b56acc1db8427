package trajectory

import (
	"encoding/json"
	"fmt"
	"math"
)

// Records handed to the parsers are generic decoder output: map[string]any or
// map[any]any for mappings, []any for sequences, and scalars.

type mapping func(key string) (any, bool)

func asMapping(v any) (mapping, bool) {
	switch m := v.(type) {
	case map[string]any:
		return func(k string) (any, bool) {
			x, ok := m[k]
			return x, ok
		}, true
	case map[any]any:
		return func(k string) (any, bool) {
			x, ok := m[k]
			return x, ok
		}, true
	}
	return nil, false
}

func asSequence(v any) ([]any, bool) {
	s, ok := v.([]any)
	return s, ok
}

func toFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		x, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = x
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		if n < math.MinInt || n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case uint:
		if n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		if n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return toInt(i)
		}
	}
	// JSON-style decoders hand every number over as float64.
	f, ok := toFloat(v)
	if !ok || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return toInt(int64(f))
}

func numberField(m mapping, name string) (float64, error) {
	v, ok := m(name)
	if !ok {
		return 0, missingField(name)
	}
	f, ok := toFloat(v)
	if !ok {
		return 0, typeMismatch(name, "finite number", v)
	}
	return f, nil
}

func xy(rec any) (x, y float64, err error) {
	m, ok := asMapping(rec)
	if !ok {
		return 0, 0, typeMismatch("", "mapping", rec)
	}
	if x, err = numberField(m, "x"); err != nil {
		return 0, 0, err
	}
	if y, err = numberField(m, "y"); err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

// ParsePoint2D parses a mapping with numeric x and y.
func ParsePoint2D(rec any) (Point2D, error) {
	x, y, err := xy(rec)
	if err != nil {
		return Point2D{}, err
	}
	return Point2D{X: x, Y: y}, nil
}

// ParsePosition parses a mapping with numeric x and y.
func ParsePosition(rec any) (Position, error) {
	x, y, err := xy(rec)
	if err != nil {
		return Position{}, err
	}
	return Position{X: x, Y: y}, nil
}

// ParseVelocity parses a mapping with numeric x and y.
func ParseVelocity(rec any) (Velocity, error) {
	x, y, err := xy(rec)
	if err != nil {
		return Velocity{}, err
	}
	return Velocity{X: x, Y: y}, nil
}

func parseRing(v any) ([]Point2D, error) {
	seq, ok := asSequence(v)
	if !ok {
		return nil, typeMismatch("", "sequence of points", v)
	}
	if len(seq) == 0 {
		return nil, missingField("points")
	}
	ring := make([]Point2D, 0, len(seq))
	for i, rec := range seq {
		p, err := ParsePoint2D(rec)
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		ring = append(ring, p)
	}
	return ring, nil
}

// ParseFootprint parses a mapping with an exterior ring and a list of interior rings.
// Every failure is reported as ErrFootprintMalformed wrapping the cause.
func ParseFootprint(rec any) (Footprint, error) {
	m, ok := asMapping(rec)
	if !ok {
		return Footprint{}, fmt.Errorf("%w: %w", ErrFootprintMalformed, typeMismatch("", "mapping", rec))
	}
	ext, ok := m("exterior")
	if !ok {
		return Footprint{}, fmt.Errorf("%w: %w", ErrFootprintMalformed, missingField("exterior"))
	}
	exterior, err := parseRing(ext)
	if err != nil {
		return Footprint{}, fmt.Errorf("%w: exterior: %w", ErrFootprintMalformed, err)
	}
	ints, ok := m("interiors")
	if !ok {
		return Footprint{}, fmt.Errorf("%w: %w", ErrFootprintMalformed, missingField("interiors"))
	}
	seq, ok := asSequence(ints)
	if !ok {
		return Footprint{}, fmt.Errorf("%w: %w", ErrFootprintMalformed, typeMismatch("interiors", "sequence of rings", ints))
	}
	interiors := make([][]Point2D, 0, len(seq))
	for i, r := range seq {
		ring, err := parseRing(r)
		if err != nil {
			return Footprint{}, fmt.Errorf("%w: interiors[%d]: %w", ErrFootprintMalformed, i, err)
		}
		interiors = append(interiors, ring)
	}
	return Footprint{Exterior: exterior, Interiors: interiors}, nil
}

// ParseAgentConfig parses an agent configuration mapping. Fields are checked in the
// order name, reach, position, velocity, safety_x, order and the first failure is
// returned as an *AgentConfigError naming that field.
func ParseAgentConfig(rec any) (AgentConfig, error) {
	m, ok := asMapping(rec)
	if !ok {
		return AgentConfig{}, &AgentConfigError{Err: typeMismatch("", "mapping", rec)}
	}
	fail := func(field string, err error) (AgentConfig, error) {
		return AgentConfig{}, &AgentConfigError{Field: field, Err: err}
	}
	get := func(field string) (any, error) {
		v, ok := m(field)
		if !ok {
			return nil, missingField(field)
		}
		return v, nil
	}

	var cfg AgentConfig

	v, err := get("name")
	if err != nil {
		return fail("name", err)
	}
	name, ok := v.(string)
	if !ok || name == "" {
		return fail("name", typeMismatch("name", "non-empty string", v))
	}
	cfg.Name = name

	if v, err = get("reach"); err != nil {
		return fail("reach", err)
	}
	if cfg.Footprint, err = ParseFootprint(v); err != nil {
		return fail("reach", err)
	}

	if v, err = get("position"); err != nil {
		return fail("position", err)
	}
	if cfg.Position, err = ParsePosition(v); err != nil {
		return fail("position", err)
	}

	if v, err = get("velocity"); err != nil {
		return fail("velocity", err)
	}
	if cfg.Velocity, err = ParseVelocity(v); err != nil {
		return fail("velocity", err)
	}

	if cfg.SafetyMargin, err = numberField(m, "safety_x"); err != nil {
		return fail("safety_x", err)
	}

	if v, err = get("order"); err != nil {
		return fail("order", err)
	}
	order, ok := toInt(v)
	if !ok {
		return fail("order", typeMismatch("order", "integer", v))
	}
	cfg.Order = order

	return cfg, nil
}

// ParseSpacetimePoint parses a mapping with numeric x, y and t.
func ParseSpacetimePoint(rec any) (SpacetimePoint, error) {
	x, y, err := xy(rec)
	if err != nil {
		return SpacetimePoint{}, err
	}
	m, _ := asMapping(rec)
	t, err := numberField(m, "t")
	if err != nil {
		return SpacetimePoint{}, err
	}
	return SpacetimePoint{X: x, Y: y, T: t}, nil
}

// pair checks the [a, b, ...] shape shared by segments and trajectories.
// Only the minimum arity is enforced; trailing elements are ignored.
func pair(v any, shapeErr error) (first, second any, err error) {
	seq, ok := asSequence(v)
	if !ok {
		return nil, nil, fmt.Errorf("%w: want a 2-element sequence, got %s", shapeErr, describe(v))
	}
	if len(seq) < 2 {
		return nil, nil, fmt.Errorf("%w: want 2 elements, got %d", shapeErr, len(seq))
	}
	return seq[0], seq[1], nil
}

// ParseSegment parses a [points, kind] pair. The first bad point aborts the segment.
func ParseSegment(v any) (MovementSegment, error) {
	rawPoints, tag, err := pair(v, ErrSegmentShape)
	if err != nil {
		return MovementSegment{}, err
	}
	seq, ok := asSequence(rawPoints)
	if !ok {
		return MovementSegment{}, typeMismatch("points", "sequence", rawPoints)
	}
	points := make([]SpacetimePoint, 0, len(seq))
	for i, rec := range seq {
		p, err := ParseSpacetimePoint(rec)
		if err != nil {
			return MovementSegment{}, fmt.Errorf("point %d: %w", i, err)
		}
		points = append(points, p)
	}
	kind, err := ParseMovementKind(tag)
	if err != nil {
		return MovementSegment{}, err
	}
	return MovementSegment{Points: points, Kind: kind}, nil
}

// ParseTrajectory parses a [config, segments] pair. A broken config or any broken
// segment rejects the whole trajectory.
func ParseTrajectory(v any) (AgentTrajectory, error) {
	rawConfig, rawSegments, err := pair(v, ErrTrajectoryShape)
	if err != nil {
		return AgentTrajectory{}, err
	}
	cfg, err := ParseAgentConfig(rawConfig)
	if err != nil {
		return AgentTrajectory{}, err
	}
	seq, ok := asSequence(rawSegments)
	if !ok {
		return AgentTrajectory{}, typeMismatch("segments", "sequence", rawSegments)
	}
	segments := make([]MovementSegment, 0, len(seq))
	for i, rec := range seq {
		s, err := ParseSegment(rec)
		if err != nil {
			return AgentTrajectory{}, fmt.Errorf("segment %d: %w", i, err)
		}
		segments = append(segments, s)
	}
	return AgentTrajectory{Config: cfg, Segments: segments}, nil
}

// AgentName extracts the agent name from a raw [config, segments] record without
// validating anything else. It is used to label rejected records.
func AgentName(v any) (string, bool) {
	seq, ok := asSequence(v)
	if !ok || len(seq) == 0 {
		return "", false
	}
	m, ok := asMapping(seq[0])
	if !ok {
		return "", false
	}
	n, ok := m("name")
	if !ok {
		return "", false
	}
	name, ok := n.(string)
	return name, ok && name != ""
}
