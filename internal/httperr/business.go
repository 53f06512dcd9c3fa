package httperr

import (
	"errors"
	"fmt"
)

// ===============================
// Business error codes
// ===============================

const (
	CodePastDate            = "past_date"
	CodeTooSoon             = "too_soon"
	CodeInvalidDateOrTime   = "invalid_date_or_time"
	CodeEmptyServices       = "empty_services"
	CodeServiceNotFound     = "service_not_found"
	CodeStaffNotFound       = "staff_not_found"
	CodeStaffUnavailable    = "staff_unavailable"
	CodeOutsideWorkingHours = "outside_working_hours"
	CodeSlotUnavailable     = "slot_unavailable"
	CodeInvalidTransition   = "invalid_transition"
	CodeInvalidState        = "invalid_state"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// ===============================
// Lifecycle transition error
// ===============================

// TransitionError names the rejected edge so callers (and stale UIs) can
// see which transition was attempted.
type TransitionError struct {
	From string
	To   string
}

func (e TransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", CodeInvalidTransition, e.From, e.To)
}

func ErrTransition(from, to string) error {
	return TransitionError{From: from, To: to}
}

func IsInvalidTransition(err error) bool {
	var te TransitionError
	return errors.As(err, &te)
}
