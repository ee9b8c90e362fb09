package store

import "errors"

var (
	// ErrCorruptPayload marks a stored archive that no longer decodes.
	ErrCorruptPayload = errors.New("corrupt stream details payload")
	ErrEmptyMediaPath = errors.New("media path is empty")
)
