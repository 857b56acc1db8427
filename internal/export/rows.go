// Flattened point rows for export sinks
package export

import (
	"errors"
	"fmt"
	"math"
	"time"

	"trajviz/internal/trajectory"
)

// ErrTimeOutOfRange reports a trajectory time that cannot be placed on a time index.
var ErrTimeOutOfRange = errors.New("trajectory time out of range")

// maxOffsetSeconds is the largest |t| whose nanosecond count fits a time.Duration.
const maxOffsetSeconds = float64(math.MaxInt64 / int64(time.Second))

// Offset converts trajectory time t, in seconds, to a duration from the export epoch.
func Offset(t float64) (time.Duration, error) {
	if math.IsNaN(t) || math.Abs(t) > maxOffsetSeconds {
		return 0, fmt.Errorf("%w: t=%g", ErrTimeOutOfRange, t)
	}
	return time.Duration(t * float64(time.Second)), nil
}

// PointRow is one trajectory point as written to an export sink.
type PointRow struct {
	Agent    string                  `json:"agent"`    // TAG
	Kind     trajectory.MovementKind `json:"kind"`     // TAG
	Order    int                     `json:"order"`    // FIELD
	Segment  int                     `json:"segment"`  // FIELD
	Index    int                     `json:"index"`    // FIELD, position in the flattened series
	X        float64                 `json:"x"`        // FIELD
	Y        float64                 `json:"y"`        // FIELD
	T        float64                 `json:"t"`        // FIELD, also drives the time index
	Endpoint bool                    `json:"endpoint"` // FIELD, last point of its segment
}

// RowWriter accepts batches of point rows.
type RowWriter interface {
	WriteRows(rows []PointRow) error
}

// Rows flattens a trajectory into export rows in the same order as
// plotdata.Extract, keeping the segment index that the plot series drops.
func Rows(t trajectory.AgentTrajectory) []PointRow {
	rows := make([]PointRow, 0, t.PointCount())
	for si, seg := range t.Segments {
		for pi, p := range seg.Points {
			rows = append(rows, PointRow{
				Agent:    t.Config.Name,
				Kind:     seg.Kind,
				Order:    t.Config.Order,
				Segment:  si,
				Index:    len(rows),
				X:        p.X,
				Y:        p.Y,
				T:        p.T,
				Endpoint: pi == len(seg.Points)-1,
			})
		}
	}
	return rows
}

// AllRows flattens every trajectory, agent by agent.
func AllRows(ts []trajectory.AgentTrajectory) []PointRow {
	var rows []PointRow
	for _, t := range ts {
		rows = append(rows, Rows(t)...)
	}
	return rows
}
