package domain

import "errors"

var (
	ErrUnitMismatch = errors.New("score unit mismatch")
	ErrInvalidDraft = errors.New("invalid project draft")
)
