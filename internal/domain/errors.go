package domain

import "fmt"

// PlanError is the base error shape for the planning core: a code,
// message and wrapped cause rather than a bare sentinel, so callers can
// still get a descriptive message while matching the kind with errors.Is.
type PlanError struct {
	Code    string
	Message string
	Err     error
}

func (e *PlanError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *PlanError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrPlanNotPossible) / ErrInvalidAction match
// any *PlanError with the same Code, regardless of Message/Err.
func (e *PlanError) Is(target error) bool {
	other, ok := target.(*PlanError)
	if !ok {
		return false
	}
	return e.Code == other.Code
}

// Error codes for PlanError.
const (
	// CodePlanNotPossible: the graph leveled off before the goal became
	// reachable without mutex. Fatal; not recoverable by extending the
	// graph further.
	CodePlanNotPossible = "PLAN_NOT_POSSIBLE"
	// CodeInvalidAction: a caller-supplied action is malformed in a way
	// the builder can detect structurally, e.g. a name colliding with
	// the noop_ prefix — reported as an error rather than a panic.
	CodeInvalidAction = "INVALID_ACTION"
)

// ErrPlanNotPossible is the public, fatal failure mode of
// Planner.Plan / Planner.PlanStateUpdate.
var ErrPlanNotPossible = &PlanError{Code: CodePlanNotPossible, Message: "graph leveled off before goal was reached"}

// ErrInvalidAction is the sentinel for a structurally malformed action
// supplied to the builder.
var ErrInvalidAction = &PlanError{Code: CodeInvalidAction, Message: "invalid action"}

// NewPlanNotPossible returns a PlanError with ErrPlanNotPossible's code and
// a call-specific message; errors.Is matches it against ErrPlanNotPossible
// by code.
func NewPlanNotPossible(message string) *PlanError {
	return &PlanError{Code: CodePlanNotPossible, Message: message}
}

// NewInvalidAction returns a PlanError with ErrInvalidAction's code and a
// call-specific message; errors.Is matches it against ErrInvalidAction by
// code.
func NewInvalidAction(message string) *PlanError {
	return &PlanError{Code: CodeInvalidAction, Message: message}
}
