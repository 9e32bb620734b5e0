package repository

import "errors"

// Sentinel kinds for evaluation store errors.
var (
	ErrNotFound    = errors.New("evaluation not found")
	ErrDuplicateID = errors.New("evaluation id already exists")
)
