package trajectory

import (
	"errors"
	"fmt"
)

// Record-local failure classes. Match them with errors.Is.
var (
	ErrMissingField         = errors.New("missing field")
	ErrTypeMismatch         = errors.New("type mismatch")
	ErrFootprintMalformed   = errors.New("footprint malformed")
	ErrAgentConfigMalformed = errors.New("agent config malformed")
	ErrUnknownMovementKind  = errors.New("unknown movement kind")
	ErrSegmentShape         = errors.New("segment shape invalid")
	ErrTrajectoryShape      = errors.New("trajectory shape invalid")
)

// FieldError reports a missing or mistyped field of a record.
type FieldError struct {
	Field string
	Want  string
	Got   any
	Err   error
}

func missingField(field string) *FieldError {
	return &FieldError{Field: field, Err: ErrMissingField}
}

func typeMismatch(field, want string, got any) *FieldError {
	return &FieldError{Field: field, Want: want, Got: got, Err: ErrTypeMismatch}
}

func (e *FieldError) Error() string {
	subject := "record"
	if e.Field != "" {
		subject = fmt.Sprintf("field %q", e.Field)
	}
	if errors.Is(e.Err, ErrTypeMismatch) {
		return fmt.Sprintf("%s: %v: want %s, got %s", subject, e.Err, e.Want, describe(e.Got))
	}
	return fmt.Sprintf("%s: %v", subject, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// AgentConfigError names the first config field that failed to parse.
type AgentConfigError struct {
	Field string
	Err   error
}

func (e *AgentConfigError) Error() string {
	var fe *FieldError
	if e.Field == "" || (errors.As(e.Err, &fe) && fe.Field == e.Field) {
		return fmt.Sprintf("%v: %v", ErrAgentConfigMalformed, e.Err)
	}
	return fmt.Sprintf("%v: %s: %v", ErrAgentConfigMalformed, e.Field, e.Err)
}

func (e *AgentConfigError) Unwrap() []error {
	return []error{ErrAgentConfigMalformed, e.Err}
}

// MovementKindError carries a tag that is not a known movement kind.
type MovementKindError struct {
	Tag any
}

func (e *MovementKindError) Error() string {
	if s, ok := e.Tag.(string); ok {
		return fmt.Sprintf("%v: %q", ErrUnknownMovementKind, s)
	}
	return fmt.Sprintf("%v: %s", ErrUnknownMovementKind, describe(e.Tag))
}

func (e *MovementKindError) Unwrap() error { return ErrUnknownMovementKind }

func describe(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("string %q", v)
	case bool:
		return fmt.Sprintf("bool %t", v)
	case []any:
		return fmt.Sprintf("sequence of %d", len(v))
	case map[string]any, map[any]any:
		return "mapping"
	}
	return fmt.Sprintf("%T %v", v, v)
}
