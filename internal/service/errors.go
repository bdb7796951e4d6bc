package service

import "errors"

// All of these are recoverable, user-facing conditions; none aborts the
// process and none leaves a partial mutation behind.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidTransition  = errors.New("invalid ticket transition")
	ErrDuplicateInvoice   = errors.New("ticket already validated")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrNotFound           = errors.New("not found")
	ErrUnknownTechnician  = errors.New("assignee not found among technicians")
)

// Actor is the authenticated identity a handler extracted from the
// session. Every mutating operation re-checks it even though the route
// middleware already gates by role.
type Actor struct {
	ID   string
	Role string
}
