package dataset

import "errors"

// Sentinel kinds for dataset errors.
var (
	ErrEmptyDataset = errors.New("dataset has no concerts")
	ErrDecode       = errors.New("decode dataset failed")
)
