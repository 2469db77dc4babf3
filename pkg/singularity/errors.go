package singularity

import "errors"

// Lifecycle contract violations. None of these are transient: the caller is
// expected to fix call ordering, not retry.
var (
	// ErrAlreadyCreated is returned by Create and CreateGlobal while the
	// slot for the type is occupied.
	ErrAlreadyCreated = errors.New("singularity: instance already created")

	// ErrAlreadyDestroyed is returned by Destroy while the slot for the
	// type is already empty.
	ErrAlreadyDestroyed = errors.New("singularity: instance already destroyed")

	// ErrNotCreated is returned by Get while the slot for the type is empty.
	ErrNotCreated = errors.New("singularity: instance not created")

	// ErrNoGlobalAccess is returned by Get when the manager was built with
	// Local access, or when the current instance was created without global
	// retrieval enabled.
	ErrNoGlobalAccess = errors.New("singularity: no global access")
)
