package net

import "errors"

var (
	// ErrShapeMismatch is returned when a buffer length does not match the
	// network's declared counts.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrCorruptFormat is returned by Load when the input is not a valid
	// .tinn stream.
	ErrCorruptFormat = errors.New("corrupt tinn format")

	// ErrInvalidArgument is returned for non-positive counts or an unusable
	// learning rate.
	ErrInvalidArgument = errors.New("invalid argument")
)
