package orders

import (
	"errors"
	"strings"

	"alhyra_organics/internal/approval"
)

var (
	ErrInvalidTransition = errors.New("orders: invalid status transition")
	ErrApprovalRequired  = errors.New("orders: pending orders are confirmed through approval")
	ErrNotPending        = errors.New("orders: only pending orders can be approved")
)

type validationError struct {
	msg string
}

func (e validationError) Error() string {
	return e.msg
}

// IsValidation reports whether err was caused by bad input from the caller.
func IsValidation(err error) bool {
	var v validationError
	return errors.As(err, &v)
}

// GateError lists why the approval gate is still closed.
type GateError struct {
	Blockers []approval.Blocker
}

func (e *GateError) Error() string {
	parts := make([]string, len(e.Blockers))
	for i, b := range e.Blockers {
		parts[i] = string(b)
	}
	return "orders: approval blocked: " + strings.Join(parts, ", ")
}
