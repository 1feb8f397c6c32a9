package repository

import "errors"

// Sentinel kinds for activity log errors.
var (
	ErrCorruptLog   = errors.New("activity log is not valid json")
	ErrNoAssignment = errors.New("no constraint assignment recorded")
	ErrInvalidTask  = errors.New("invalid task time")
)
