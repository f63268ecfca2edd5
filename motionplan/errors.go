package motionplan

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind classifies the fatal conditions the engine can raise. Every
// exported operation either succeeds or returns a *PlanningError wrapping
// one of these; none are recovered internally.
type ErrorKind int

const (
	// InvalidHandle is returned when a registry index is out of range, was
	// never allocated, or has already been freed.
	InvalidHandle ErrorKind = iota
	// InvalidArgument covers malformed configurations, unknown settings
	// keys, and negative/zero edge resolutions.
	InvalidArgument
	// UnknownConstraint is returned when a constraint name was never
	// registered on the C-space it was looked up against.
	UnknownConstraint
	// MissingPredicate is returned when a constraint is registered but the
	// predicate slot requested (feasibility or visibility) is nil.
	MissingPredicate
	// CallbackFailure wraps an error or malformed return value surfaced by a
	// host callback (sample, distance, interpolate, feasible, visible,
	// goal_test, goal_sample).
	CallbackFailure
	// InfeasibleEndpoint is returned when a start or goal configuration
	// fails feasibility.
	InfeasibleEndpoint
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidHandle:
		return "InvalidHandle"
	case InvalidArgument:
		return "InvalidArgument"
	case UnknownConstraint:
		return "UnknownConstraint"
	case MissingPredicate:
		return "MissingPredicate"
	case CallbackFailure:
		return "CallbackFailure"
	case InfeasibleEndpoint:
		return "InfeasibleEndpoint"
	default:
		return "Unknown"
	}
}

// PlanningError is the single error type the engine raises. It carries the
// kind so callers can branch on it with errors.Is/errors.As, a human-readable
// message, and — for CallbackFailure — the original host error, preserved
// verbatim rather than summarized.
type PlanningError struct {
	Kind  ErrorKind
	msg   string
	cause error
}

func (e *PlanningError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.msg, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.msg)
}

// Unwrap exposes the wrapped cause, if any, to errors.Is/errors.As.
func (e *PlanningError) Unwrap() error {
	return e.cause
}

// Is reports whether target is a *PlanningError of the same Kind, so that
// errors.Is(err, &PlanningError{Kind: InvalidHandle}) style sentinel
// comparisons work without callers needing to compare messages.
func (e *PlanningError) Is(target error) bool {
	other, ok := target.(*PlanningError)
	if !ok {
		return false
	}
	return other.Kind == e.Kind
}

func newError(kind ErrorKind, format string, args ...interface{}) *PlanningError {
	return &PlanningError{Kind: kind, msg: fmt.Sprintf(format, args...)}
}

func wrapCallbackError(cause error, format string, args ...interface{}) *PlanningError {
	return &PlanningError{
		Kind:  CallbackFailure,
		msg:   fmt.Sprintf(format, args...),
		cause: errors.WithStack(cause),
	}
}

func newInvalidHandle(format string, args ...interface{}) *PlanningError {
	return newError(InvalidHandle, format, args...)
}

func newInvalidArgument(format string, args ...interface{}) *PlanningError {
	return newError(InvalidArgument, format, args...)
}

func newUnknownConstraint(name string) *PlanningError {
	return newError(UnknownConstraint, "constraint %q is not registered", name)
}

func newMissingPredicate(name, kind string) *PlanningError {
	return newError(MissingPredicate, "constraint %q has no %s predicate", name, kind)
}

func newInfeasibleEndpoint(which string) *PlanningError {
	return newError(InfeasibleEndpoint, "%s configuration is infeasible", which)
}
