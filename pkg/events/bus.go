package events

import (
	"sync"
	"sync/atomic"

	"github.com/cppmaven/singularity/pkg/logging"
)

const defaultTopicBuffer = 64

// Handler is a function that handles an event.
type Handler func(event any)

// Publisher allows publishing events.
type Publisher interface {
	Publish(topic string, event any)
}

// Subscriber allows subscribing to events.
type Subscriber interface {
	Subscribe(topic string, handler Handler)
}

// EventBus provides both publishing and subscribing.
type EventBus interface {
	Publisher
	Subscriber
}

// InMemoryBus implements EventBus with per-topic worker goroutines so that
// publishers are never blocked by slow handlers. The lifecycle manager
// publishes while holding the slot guard; asynchronous delivery keeps
// handlers free to call back into the manager without deadlocking.
type InMemoryBus struct {
	mu          sync.RWMutex
	subscribers map[string][]Handler
	workers     map[string]*topicWorker
	bufferSize  int
	dropped     atomic.Int64
	logger      logging.Logger
}

// NewEventBus creates a bus with the default per-topic queue size.
func NewEventBus() EventBus {
	return NewEventBusWithBuffer(defaultTopicBuffer)
}

// NewEventBusWithBuffer allows configuring the per-topic worker queue size.
// A buffer of at least 1 is enforced to avoid unbuffered sends.
func NewEventBusWithBuffer(buffer int) EventBus {
	if buffer < 1 {
		buffer = 1
	}
	return &InMemoryBus{
		subscribers: make(map[string][]Handler),
		workers:     make(map[string]*topicWorker),
		bufferSize:  buffer,
		logger:      logging.GetGlobalLogger().With("component", "events"),
	}
}

// Subscribe adds a handler for a topic.
func (b *InMemoryBus) Subscribe(topic string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.subscribers[topic] = append(b.subscribers[topic], handler)
}

// Publish sends an event to all subscribers of the topic. Delivery is
// in-order per topic via a dedicated worker goroutine. Publishing never
// blocks: if the topic queue is full, the event is dropped.
func (b *InMemoryBus) Publish(topic string, event any) {
	handlers := b.handlersFor(topic)
	if len(handlers) == 0 {
		return
	}

	worker := b.getOrCreateWorker(topic)
	env := envelope{
		event:    event,
		handlers: handlers,
	}

	select {
	case worker.ch <- env:
	default:
		b.dropped.Add(1)
		b.logger.Warn("topic queue full, dropping event", "topic", topic)
	}
}

// DroppedCount returns the number of events dropped due to full queues.
func (b *InMemoryBus) DroppedCount() int64 {
	return b.dropped.Load()
}

// Shutdown stops all topic workers after draining their queues. Tests use it
// to flush pending deliveries before asserting.
func (b *InMemoryBus) Shutdown() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, w := range b.workers {
		w.stop()
	}
}

// handlersFor snapshots handlers for the topic.
func (b *InMemoryBus) handlersFor(topic string) []Handler {
	b.mu.RLock()
	defer b.mu.RUnlock()
	handlers := make([]Handler, len(b.subscribers[topic]))
	copy(handlers, b.subscribers[topic])
	return handlers
}

func (b *InMemoryBus) getOrCreateWorker(topic string) *topicWorker {
	b.mu.Lock()
	defer b.mu.Unlock()

	if worker, ok := b.workers[topic]; ok {
		return worker
	}

	worker := newTopicWorker(b.bufferSize, b.logger)
	b.workers[topic] = worker
	return worker
}

type envelope struct {
	event    any
	handlers []Handler
}

type topicWorker struct {
	ch       chan envelope
	wg       sync.WaitGroup
	stopOnce sync.Once
	logger   logging.Logger
}

func newTopicWorker(buffer int, logger logging.Logger) *topicWorker {
	w := &topicWorker{
		ch:     make(chan envelope, buffer),
		logger: logger,
	}
	w.wg.Add(1)
	go w.run()
	return w
}

func (w *topicWorker) run() {
	defer w.wg.Done()
	for env := range w.ch {
		for _, handler := range env.handlers {
			w.deliver(handler, env.event)
		}
	}
}

// deliver isolates handler panics so one bad subscriber cannot kill the
// topic worker.
func (w *topicWorker) deliver(handler Handler, event any) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("event handler panicked", "panic", r)
		}
	}()
	handler(event)
}

func (w *topicWorker) stop() {
	w.stopOnce.Do(func() {
		close(w.ch)
		w.wg.Wait()
	})
}
