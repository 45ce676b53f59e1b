package fixtree

import "errors"

// Error kinds raised by declarations. Every error is wrapped with the
// offending path; match the kind with errors.Is.
var (
	// ErrConflict is returned when Create targets an existing node, or when
	// a name already exists as the other node kind (file vs directory).
	ErrConflict = errors.New("structural conflict")

	// ErrMissingTarget is returned when Get targets an absent node.
	ErrMissingTarget = errors.New("missing target")
)
