package trajectory

import (
	"encoding/json"
	"fmt"
)

// MovementKind classifies how an agent moved during a segment.
type MovementKind int

const (
	Idle MovementKind = iota
	Scheduled
	Evasive
)

// Kinds lists every movement kind in declaration order.
var Kinds = []MovementKind{Idle, Scheduled, Evasive}

var kindLabels = map[string]MovementKind{
	"Idle":      Idle,
	"Scheduled": Scheduled,
	"Evasive":   Evasive,
}

// String returns the document label of the kind.
func (k MovementKind) String() string {
	switch k {
	case Idle:
		return "Idle"
	case Scheduled:
		return "Scheduled"
	case Evasive:
		return "Evasive"
	}
	return fmt.Sprintf("MovementKind(%d)", int(k))
}

// MarshalJSON encodes the kind as its label.
func (k MovementKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON decodes a label produced by MarshalJSON.
func (k *MovementKind) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseMovementKind(s)
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// ParseMovementKind maps an exact, case-sensitive label to a kind.
// Anything else, including non-string tags, is an UnknownMovementKind failure.
func ParseMovementKind(tag any) (MovementKind, error) {
	s, ok := tag.(string)
	if !ok {
		return 0, &MovementKindError{Tag: tag}
	}
	k, ok := kindLabels[s]
	if !ok {
		return 0, &MovementKindError{Tag: tag}
	}
	return k, nil
}
