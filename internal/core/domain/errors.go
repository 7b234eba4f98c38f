package domain

import "errors"

var (
	ErrTaskNotFound        = errors.New("task not found")
	ErrConstraintViolation = errors.New("value rejected by storage constraint")
	ErrStoreUnavailable    = errors.New("task store unavailable")
)
