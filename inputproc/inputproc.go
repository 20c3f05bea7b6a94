// Package inputproc defines the shared data model for the
// runtime-configurable input-event processing pipeline: the event shape
// exchanged between pipeline stages, the axis-snap mode enum, and the
// error-kind taxonomy every setter and collaborator call returns through.
//
// Concrete stage logic lives in [github.com/cormoran/zmk-module-runtime-input-processor/pipeline];
// the owning instance and its control surface live in
// [github.com/cormoran/zmk-module-runtime-input-processor/processor].
package inputproc

import "fmt"

// Event is a single 2D relative-motion (or key) event flowing through the
// pipeline. It mirrors the (type, code, value) triplet of a Linux
// struct input_event, which is also the wire shape the original firmware's
// device-tree-configured drivers deliver.
type Event struct {
	// Type is the event-kind tag. Only the instance's configured type
	// (normally EV_REL, see package evcode) is acted upon; any other
	// type passes through untouched.
	Type uint16

	// Code is the 16-bit axis or key identifier.
	Code uint16

	// Value is the signed delta (for motion) or press/release state
	// (for key events).
	Value int16
}

// AxisSnapMode selects which axis, if any, the axis-snap stage treats as
// primary.
type AxisSnapMode uint8

const (
	// AxisSnapNone disables axis snap entirely.
	AxisSnapNone AxisSnapMode = iota

	// AxisSnapX locks cross-axis (Y) motion until enough Y motion
	// accumulates.
	AxisSnapX

	// AxisSnapY locks cross-axis (X) motion until enough X motion
	// accumulates.
	AxisSnapY
)

// String returns a human-readable name for mode.
func (mode AxisSnapMode) String() string {
	switch mode {
	case AxisSnapNone:
		return "none"
	case AxisSnapX:
		return "snap-x"
	case AxisSnapY:
		return "snap-y"
	default:
		return fmt.Sprintf("AxisSnapMode(%d)", uint8(mode))
	}
}

// ErrorKind classifies the failure modes a setter or collaborator call can
// report, per the control-surface error design.
type ErrorKind int

const (
	// InvalidArgument marks a validation failure: a nil instance,
	// an out-of-range numeric field, a keybind count outside 1..8,
	// a degree offset outside 0..359, or a zero tick.
	InvalidArgument ErrorKind = iota + 1

	// NotFound marks an unknown instance name, an unknown binding name,
	// an invalid behavior index, or a nonexistent persisted record.
	NotFound

	// IoFailure marks a settings-store save or load failure.
	IoFailure

	// ExternalFailure marks a binding-invocation failure.
	ExternalFailure
)

// String returns a human-readable name for kind.
func (kind ErrorKind) String() string {
	switch kind {
	case InvalidArgument:
		return "invalid_argument"
	case NotFound:
		return "not_found"
	case IoFailure:
		return "io_failure"
	case ExternalFailure:
		return "external_failure"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(kind))
	}
}

// Error is the concrete error type returned by the control surface and by
// collaborator-facing helpers. It carries a [ErrorKind] alongside the
// underlying cause so callers can both switch on Kind and errors.Is/As
// into Cause.
type Error struct {
	Kind  ErrorKind
	Op    string
	Cause error
}

// NewError builds an *Error with the given kind, operation name, and
// optional wrapped cause.
func NewError(kind ErrorKind, op string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Cause: cause}
}

// Error implements the error interface.
func (err *Error) Error() string {
	if err.Cause == nil {
		return fmt.Sprintf("%s: %s", err.Op, err.Kind)
	}

	return fmt.Sprintf("%s: %s: %v", err.Op, err.Kind, err.Cause)
}

// Unwrap exposes the wrapped cause for errors.Is / errors.As.
func (err *Error) Unwrap() error {
	return err.Cause
}
