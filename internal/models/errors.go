package models

import "errors"

// Custom errors
var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateKey   = errors.New("duplicate key violation")
	ErrUndecidedMatch = errors.New("match has no recorded winner")
)
