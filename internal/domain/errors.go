package domain

import "errors"

// Sentinel errors for domain-invariant violations. Callers match them with
// errors.Is and translate them into user-visible notices.
var (
	// ErrLastProject is returned when a delete would leave the code
	// project store empty.
	ErrLastProject = errors.New("cannot delete the last code project")

	// ErrProjectNotFound is returned when a lookup names an unknown
	// project id.
	ErrProjectNotFound = errors.New("code project not found")

	// ErrInvalidSnapshot is returned when an imported backup document
	// fails to parse or is not an object. No store is touched.
	ErrInvalidSnapshot = errors.New("invalid backup document")
)
