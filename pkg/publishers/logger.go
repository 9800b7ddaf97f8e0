package publishers

import "context"

// Logger defines the logging surface publishers rely on.
type Logger interface {
	InfoObj(msg, key string, obj interface{})
	DebugObj(msg, key string, obj interface{})
	WarnObj(msg, key string, obj interface{})
	ErrorObj(msg, key string, obj interface{})
}

type noopLogger struct{}

func (noopLogger) InfoObj(string, string, interface{})  {}
func (noopLogger) DebugObj(string, string, interface{}) {}
func (noopLogger) WarnObj(string, string, interface{})  {}
func (noopLogger) ErrorObj(string, string, interface{}) {}

func ensureLogger(log Logger) Logger {
	if log == nil {
		return noopLogger{}
	}
	return log
}

// logPublisher writes events to the application log.
type logPublisher struct {
	id    string
	level string
	log   Logger
}

func newLogPublisher(_ context.Context, cfg PublisherConfig, log Logger) (Publisher, error) {
	level := "info"
	if cfg.Log != nil && cfg.Log.Level != "" {
		level = cfg.Log.Level
	}
	return &logPublisher{id: cfg.ID, level: level, log: ensureLogger(log)}, nil
}

func (l *logPublisher) ID() string   { return l.id }
func (l *logPublisher) Type() string { return TypeLog }

func (l *logPublisher) Publish(_ context.Context, evt CallEvent) error {
	switch l.level {
	case "debug":
		l.log.DebugObj("api call event", "call_event", evt)
	case "warn":
		l.log.WarnObj("api call event", "call_event", evt)
	default:
		l.log.InfoObj("api call event", "call_event", evt)
	}
	return nil
}
