package paper

import "errors"

var (
	ErrDuplicatePosition = errors.New("position already open for pair")
	ErrPositionNotFound  = errors.New("no open position for pair")
	ErrInvalidPrice      = errors.New("price must be positive")
	ErrInvalidNotional   = errors.New("notional must be positive")
	ErrInvalidFeePct     = errors.New("fee percentage out of range")
	ErrInvalidInput      = errors.New("non-finite numeric input")
)
