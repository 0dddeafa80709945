package events

import (
	"sync"
	"time"

	"github.com/ezeqja22/sciencepioneers-cli/internal/moderation"
)

// EventType represents the type of event.
type EventType int

const (
	// Fetch lifecycle
	EventFetchStart EventType = iota
	EventFetchComplete

	// Moderation action lifecycle
	EventActionStart
	EventActionComplete

	// Session events
	EventSessionExpired

	// Error events
	EventError

	// Log events (for TUI display)
	EventLog
)

// String returns a human-readable name for the event type.
func (t EventType) String() string {
	switch t {
	case EventFetchStart:
		return "fetch_start"
	case EventFetchComplete:
		return "fetch_complete"
	case EventActionStart:
		return "action_start"
	case EventActionComplete:
		return "action_complete"
	case EventSessionExpired:
		return "session_expired"
	case EventError:
		return "error"
	case EventLog:
		return "log"
	default:
		return "unknown"
	}
}

// Event represents an event in the system.
type Event struct {
	Type      EventType
	Timestamp time.Time
	Data      interface{}
}

// FetchData contains data for fetch events.
type FetchData struct {
	Resource string // "reports", "report", "history", "user", "forums"
	ReportID int
	Duration time.Duration
	Err      error
}

// ActionData contains data for action lifecycle events.
type ActionData struct {
	Action   moderation.Action
	ReportID int
	TargetID int
	Err      error
}

// ErrorData contains data for EventError.
type ErrorData struct {
	Error   error
	Context string
}

// LogData contains data for EventLog.
type LogData struct {
	Level   string // "info", "warn", "error"
	Message string
}

// Bus is a simple pub/sub event bus with fan-out delivery.
type Bus struct {
	mu          sync.RWMutex
	subscribers []chan Event
	bufferSize  int
	closed      bool
}

// NewBus creates a new event bus.
func NewBus() *Bus {
	return &Bus{
		subscribers: make([]chan Event, 0),
		bufferSize:  100, // Default buffer size per subscriber
	}
}

// Subscribe returns a channel that receives all published events.
// The caller is responsible for consuming events to avoid blocking.
func (b *Bus) Subscribe() <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		// Return a closed channel if bus is closed
		ch := make(chan Event)
		close(ch)
		return ch
	}

	ch := make(chan Event, b.bufferSize)
	b.subscribers = append(b.subscribers, ch)
	return ch
}

// Unsubscribe removes a subscriber channel.
func (b *Bus) Unsubscribe(ch <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, sub := range b.subscribers {
		if sub == ch {
			close(sub)
			b.subscribers = append(b.subscribers[:i], b.subscribers[i+1:]...)
			return
		}
	}
}

// Publish sends an event to all subscribers.
// Non-blocking: if a subscriber's buffer is full, the event is dropped for that subscriber.
func (b *Bus) Publish(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	for _, ch := range b.subscribers {
		select {
		case ch <- event:
		default:
			// Subscriber buffer full, drop event
		}
	}
}

// PublishType is a convenience method to publish an event with just a type.
func (b *Bus) PublishType(eventType EventType) {
	b.Publish(Event{Type: eventType})
}

// PublishError publishes an error event.
func (b *Bus) PublishError(err error, context string) {
	b.Publish(Event{
		Type: EventError,
		Data: ErrorData{Error: err, Context: context},
	})
}

// PublishLog publishes a log event.
func (b *Bus) PublishLog(level, message string) {
	b.Publish(Event{
		Type: EventLog,
		Data: LogData{Level: level, Message: message},
	})
}

// PublishAction publishes an action-complete event.
func (b *Bus) PublishAction(action moderation.Action, reportID int, err error) {
	b.Publish(Event{
		Type: EventActionComplete,
		Data: ActionData{Action: action, ReportID: reportID, Err: err},
	})
}

// Close closes the event bus and all subscriber channels.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	b.closed = true
	for _, ch := range b.subscribers {
		close(ch)
	}
	b.subscribers = nil
}

// SubscriberCount returns the number of active subscribers.
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
