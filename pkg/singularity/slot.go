package singularity

import (
	"sync"

	"github.com/google/uuid"
)

// slot is the sole storage location owning the at-most-one instance of a
// managed type. One slot exists per type for the lifetime of the process and
// cycles between empty and occupied as the facade creates and destroys.
type slot struct {
	// mu is the per-type lock used by the Exclusive policy. It lives on
	// the slot, keyed by type alone, so create and destroy for the same
	// type always contend on the same lock no matter which policy either
	// call was issued with.
	mu sync.Mutex

	instance     any
	created      bool
	globalAccess bool
	instanceID   string
}

// acquire stores the value built by construct and marks the slot occupied.
// The slot is untouched when construct fails. Caller holds the guard.
func (s *slot) acquire(global bool, construct func() (any, error)) (any, string, error) {
	if s.created {
		return nil, "", ErrAlreadyCreated
	}

	instance, err := construct()
	if err != nil {
		return nil, "", err
	}

	s.instance = instance
	s.created = true
	s.globalAccess = global
	s.instanceID = uuid.NewString()
	return instance, s.instanceID, nil
}

// release empties the slot and resets all markers. Caller holds the guard.
func (s *slot) release() (string, error) {
	if !s.created {
		return "", ErrAlreadyDestroyed
	}

	id := s.instanceID
	s.instance = nil
	s.created = false
	s.globalAccess = false
	s.instanceID = ""
	return id, nil
}

// borrow returns the current occupant without affecting ownership. Caller
// holds the guard.
func (s *slot) borrow() (any, error) {
	if !s.created {
		return nil, ErrNotCreated
	}
	return s.instance, nil
}
