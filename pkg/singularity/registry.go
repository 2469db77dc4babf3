package singularity

import (
	"reflect"
	"sync"
)

// registry holds the one slot per managed type for the whole process. Slots
// are created on first use and never removed: a destroyed type's slot stays
// addressable so the type can be created again later.
var registry = struct {
	mu    sync.Mutex
	slots map[reflect.Type]*slot
}{
	slots: make(map[reflect.Type]*slot),
}

// slotFor returns the process-wide slot for T, creating it on first use.
// Slots are keyed by the type alone, never by policy, so every manager over
// the same type shares one slot.
func slotFor[T any]() *slot {
	key := keyOf[T]()

	registry.mu.Lock()
	defer registry.mu.Unlock()

	if s, ok := registry.slots[key]; ok {
		return s
	}

	s := &slot{}
	registry.slots[key] = s
	return s
}

func keyOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// typeName is the registry key's printable name, used in logs and events.
func typeName[T any]() string {
	return keyOf[T]().String()
}
