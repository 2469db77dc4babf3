package singularity

// Concurrency is the mutual-exclusion strategy applied around every slot
// operation of a manager. The zero-cost None policy is the default; use
// Exclusive when manager operations for the same type may run concurrently.
type Concurrency interface {
	// guard acquires exclusive access to the slot and returns the release
	// func. The manager releases via defer, so the lock is dropped on
	// error paths too.
	guard(s *slot) func()
}

// None performs no synchronization. The caller must guarantee that no two
// manager operations for the same type run concurrently.
var None Concurrency = nonePolicy{}

// Exclusive serializes all manager operations for the same type on the
// slot's per-type lock. Acquisition is unconditional: no timeout, no
// cancellation. Two racing Create calls are totally ordered; the loser
// observes ErrAlreadyCreated.
var Exclusive Concurrency = exclusivePolicy{}

type nonePolicy struct{}

func (nonePolicy) guard(*slot) func() { return func() {} }

type exclusivePolicy struct{}

func (exclusivePolicy) guard(s *slot) func() {
	s.mu.Lock()
	return s.mu.Unlock
}

// Access selects whether a manager exposes global retrieval at all. Local is
// the safe default: Get always fails, preventing accidental global coupling.
// A Global manager still only retrieves instances that were created with
// CreateGlobal.
type Access int

const (
	// Local disables Get unconditionally.
	Local Access = iota

	// Global permits Get for instances created via CreateGlobal.
	Global
)

// String returns the policy name for logs and events.
func (a Access) String() string {
	if a == Global {
		return "global"
	}
	return "local"
}
