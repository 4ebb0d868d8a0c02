package hook

import (
	"fmt"
	"strings"
)

// Code is the outcome of a single tap.
type Code int

const (
	// Success means the tap ran to completion.
	Success Code = iota
	// Error means the tap failed or panicked. Its mutations, if any, are kept.
	Error
	// Skip means the tool config in the context is not for this tap.
	Skip
)

func (c Code) String() string {
	switch c {
	case Success:
		return "Success"
	case Error:
		return "Error"
	case Skip:
		return "Skip"
	default:
		return fmt.Sprintf("Code(%d)", int(c))
	}
}

// Status is the completion signal of a tap. A nil *Status means Success.
//
// Hook.Call stamps each status with the phase and tap that produced it, so a
// Skip read from the result list still says which phase passed over which
// tool config and why.
type Status struct {
	code    Code
	reasons []string
	err     error

	phase string
	tap   string
}

// NewStatus creates a status with the given code and reasons.
func NewStatus(code Code, reasons ...string) *Status {
	return &Status{code: code, reasons: reasons}
}

// NewStatusWithError creates an Error status carrying err.
func NewStatusWithError(err error) *Status {
	return &Status{code: Error, reasons: []string{err.Error()}, err: err}
}

// Skipf creates a Skip status; the reason usually names the mismatched discriminator.
func Skipf(format string, args ...interface{}) *Status {
	return NewStatus(Skip, fmt.Sprintf(format, args...))
}

func (s *Status) Code() Code {
	if s == nil {
		return Success
	}
	return s.code
}

func (s *Status) IsSuccess() bool {
	return s.Code() == Success
}

func (s *Status) IsSkip() bool {
	return s.Code() == Skip
}

// Message joins the reasons, or names the code when there are none.
func (s *Status) Message() string {
	if s == nil {
		return ""
	}
	if len(s.reasons) == 0 {
		return s.code.String()
	}
	return strings.Join(s.reasons, ", ")
}

// Phase is the hook the status was produced in.
func (s *Status) Phase() string {
	if s == nil {
		return ""
	}
	return s.phase
}

// Tap is the name of the tap that produced the status.
func (s *Status) Tap() string {
	if s == nil {
		return ""
	}
	return s.tap
}

// Origin is "phase/tap", or whichever half is known.
func (s *Status) Origin() string {
	switch {
	case s.Phase() == "":
		return s.Tap()
	case s.Tap() == "":
		return s.Phase()
	default:
		return s.phase + "/" + s.tap
	}
}

// Err returns the failure of an Error status and nil otherwise.
func (s *Status) Err() error {
	if s.Code() != Error {
		return nil
	}
	if s.err != nil {
		return s.err
	}
	return fmt.Errorf("%s: %s", s.Origin(), s.Message())
}

func (s *Status) String() string {
	if s == nil {
		return Success.String()
	}
	return fmt.Sprintf("%s %s: %s", s.Origin(), s.code, s.Message())
}

func (s *Status) stamp(phase, tap string) *Status {
	s.phase = phase
	s.tap = tap
	return s
}

// Errors collects the errors of all failed statuses.
func Errors(statuses []*Status) []error {
	var errs []error
	for _, s := range statuses {
		if err := s.Err(); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
