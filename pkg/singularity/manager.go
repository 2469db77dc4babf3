package singularity

import (
	"errors"
	"fmt"

	"github.com/cppmaven/singularity/pkg/events"
	"github.com/cppmaven/singularity/pkg/logging"
)

// Constructor builds the managed instance. The closure forwards whatever
// argument list the caller chose, with the caller's own value or pointer
// semantics, into the type's constructor. This is the single construction
// path; there are no per-arity variants.
type Constructor[T any] func() (*T, error)

// TokenConstructor builds instances of types whose constructors demand proof
// that construction runs under a lifecycle manager.
type TokenConstructor[T any] func(Token) (*T, error)

// Token proves to a constructor that it is being invoked through a lifecycle
// manager. Only the manager mints valid tokens; the zero Token is invalid, so
// a constructor that requires one cannot be called usefully from anywhere
// else.
type Token struct {
	valid bool
}

// Valid reports whether the token was minted by a manager.
func (t Token) Valid() bool { return t.valid }

// Manager is the facade over the process-wide slot for T. All managers over
// the same type share one slot, so the at-most-one-instance guarantee holds
// across every manager and across the package-level functions.
//
// The zero value is not usable; construct managers with New.
type Manager[T any] struct {
	concurrency Concurrency
	access      Access
	logger      logging.Logger
	publisher   events.Publisher
	slot        *slot
	name        string
}

// Option configures a Manager.
type Option func(*options)

type options struct {
	concurrency Concurrency
	access      Access
	logger      logging.Logger
	publisher   events.Publisher
}

// WithConcurrency selects the mutual-exclusion policy. Default is None.
func WithConcurrency(c Concurrency) Option {
	return func(o *options) { o.concurrency = c }
}

// WithAccess selects whether Get is permitted at all. Default is Local.
func WithAccess(a Access) Option {
	return func(o *options) { o.access = a }
}

// WithLogger sets the logger for lifecycle transitions. Defaults to the
// global logger.
func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithPublisher enables lifecycle event publishing. No events are published
// without one.
func WithPublisher(p events.Publisher) Option {
	return func(o *options) { o.publisher = p }
}

// New builds a manager for T. Managers are cheap: the only state they point
// at is the shared per-type slot.
func New[T any](opts ...Option) *Manager[T] {
	o := options{
		concurrency: None,
		access:      Local,
		logger:      logging.GetGlobalLogger(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Manager[T]{
		concurrency: o.concurrency,
		access:      o.access,
		logger:      o.logger,
		publisher:   o.publisher,
		slot:        slotFor[T](),
		name:        typeName[T](),
	}
}

// Create constructs the instance and occupies the slot, with global retrieval
// disabled for this instance's lifetime. Fails with ErrAlreadyCreated while
// the slot is occupied.
func (m *Manager[T]) Create(construct Constructor[T]) (*T, error) {
	return m.create(false, func(Token) (*T, error) { return construct() })
}

// CreateGlobal is Create with global retrieval enabled: any holder of the
// type may obtain the instance through Get until Destroy.
func (m *Manager[T]) CreateGlobal(construct Constructor[T]) (*T, error) {
	return m.create(true, func(Token) (*T, error) { return construct() })
}

// CreateRestricted is Create for types whose constructors require a Token.
func (m *Manager[T]) CreateRestricted(construct TokenConstructor[T]) (*T, error) {
	return m.create(false, construct)
}

// CreateGlobalRestricted is CreateGlobal for types whose constructors
// require a Token.
func (m *Manager[T]) CreateGlobalRestricted(construct TokenConstructor[T]) (*T, error) {
	return m.create(true, construct)
}

func (m *Manager[T]) create(global bool, construct TokenConstructor[T]) (*T, error) {
	release := m.concurrency.guard(m.slot)
	defer release()

	stored, id, err := m.slot.acquire(global, func() (any, error) {
		instance, err := construct(Token{valid: true})
		if err != nil {
			return nil, err
		}
		if instance == nil {
			return nil, fmt.Errorf("singularity: constructor for %s returned nil instance", m.name)
		}
		return instance, nil
	})
	if err != nil {
		if errors.Is(err, ErrAlreadyCreated) {
			m.logger.Warn("create rejected", "type", m.name, "error", err)
		}
		return nil, err
	}

	access := Local
	if global {
		access = Global
	}
	m.logger.Debug("instance created", "type", m.name, "instance_id", id, "access", access.String())

	if m.publisher != nil {
		event := events.InstanceCreatedEvent{
			TypeName:     m.name,
			InstanceID:   id,
			GlobalAccess: global,
		}
		m.publisher.Publish(event.Topic(), event)
	}

	return stored.(*T), nil
}

// Destroy drops the instance and empties the slot. Fails with
// ErrAlreadyDestroyed while the slot is empty.
func (m *Manager[T]) Destroy() error {
	release := m.concurrency.guard(m.slot)
	defer release()

	id, err := m.slot.release()
	if err != nil {
		m.logger.Warn("destroy rejected", "type", m.name, "error", err)
		return err
	}

	m.logger.Debug("instance destroyed", "type", m.name, "instance_id", id)

	if m.publisher != nil {
		event := events.InstanceDestroyedEvent{
			TypeName:   m.name,
			InstanceID: id,
		}
		m.publisher.Publish(event.Topic(), event)
	}

	return nil
}

// Get returns the current instance. Fails with ErrNoGlobalAccess on a Local
// manager, ErrNotCreated while the slot is empty, and ErrNoGlobalAccess when
// the occupant was created without global retrieval.
func (m *Manager[T]) Get() (*T, error) {
	if m.access != Global {
		return nil, ErrNoGlobalAccess
	}

	release := m.concurrency.guard(m.slot)
	defer release()

	instance, err := m.slot.borrow()
	if err != nil {
		return nil, err
	}
	if !m.slot.globalAccess {
		return nil, ErrNoGlobalAccess
	}

	return instance.(*T), nil
}

// The package-level functions mirror the original static facade: Exclusive
// concurrency, Global access gate, retrievability decided by how the current
// instance was created.

// Create constructs the single instance of T without global retrieval.
func Create[T any](construct Constructor[T]) (*T, error) {
	return defaultManager[T]().Create(construct)
}

// CreateGlobal constructs the single instance of T with global retrieval.
func CreateGlobal[T any](construct Constructor[T]) (*T, error) {
	return defaultManager[T]().CreateGlobal(construct)
}

// Destroy drops the single instance of T.
func Destroy[T any]() error {
	return defaultManager[T]().Destroy()
}

// Get returns the single instance of T if it was created with CreateGlobal.
func Get[T any]() (*T, error) {
	return defaultManager[T]().Get()
}

func defaultManager[T any]() *Manager[T] {
	return New[T](WithConcurrency(Exclusive), WithAccess(Global))
}
