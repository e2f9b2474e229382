package log

// Logger receives generation events.
// Pass NoopLogger to disable event logging.
type Logger interface {
	// Log records an event. Implementations must be safe for concurrent use,
	// the web service shares one logger across requests.
	Log(event Event)
}

// NoopLogger discards all events. The zero value is ready to use.
type NoopLogger struct{}

// Log discards the event.
func (NoopLogger) Log(Event) {}

var _ Logger = NoopLogger{}
