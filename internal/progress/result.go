package progress

import "errors"

// Rejection errors, returned by Result.Err
var (
	ErrEnrollmentLimitReached = errors.New("enrollment limit reached")
	ErrAlreadyEnrolled        = errors.New("course already enrolled")
	ErrNotFound               = errors.New("course not found in enrollments")
)

// Outcome identifies the result of a progress mutation
type Outcome string

const (
	OutcomeEnrolled               Outcome = "enrolled"
	OutcomeCancelled              Outcome = "cancelled"
	OutcomeEnrollmentLimitReached Outcome = "enrollment_limit_reached"
	OutcomeAlreadyEnrolled        Outcome = "already_enrolled"
	OutcomeNotFound               Outcome = "not_found"
)

// Result is reported back to callers of Enroll and Cancel.
// Rejections are ordinary results, not errors.
type Result struct {
	Success bool    `json:"success"`
	Code    Outcome `json:"code"`
	Message string  `json:"message"`
}

// Err returns the sentinel error matching a rejected result, nil on success
func (r Result) Err() error {
	switch r.Code {
	case OutcomeEnrollmentLimitReached:
		return ErrEnrollmentLimitReached
	case OutcomeAlreadyEnrolled:
		return ErrAlreadyEnrolled
	case OutcomeNotFound:
		return ErrNotFound
	}
	return nil
}

func succeeded(code Outcome, message string) Result {
	return Result{Success: true, Code: code, Message: message}
}

func rejected(code Outcome, message string) Result {
	return Result{Success: false, Code: code, Message: message}
}
