package events

// InstanceCreatedEvent is published after a lifecycle manager occupies the
// slot for a type.
type InstanceCreatedEvent struct {
	TypeName     string
	InstanceID   string
	GlobalAccess bool
}

// Topic returns the event topic for instance creation.
func (e InstanceCreatedEvent) Topic() string {
	return "instance.created"
}

// InstanceDestroyedEvent is published after a lifecycle manager empties the
// slot for a type.
type InstanceDestroyedEvent struct {
	TypeName   string
	InstanceID string
}

// Topic returns the event topic for instance destruction.
func (e InstanceDestroyedEvent) Topic() string {
	return "instance.destroyed"
}
