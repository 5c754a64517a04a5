package logging

import (
	"log/slog"
	"time"
)

// Keys shared by every component.
const (
	FieldComponent = "component"
	FieldContactID = "contact_id"
	// FieldEventType classifies a line, e.g. "contact_merged".
	FieldEventType = "event_type"
	FieldErrorHint = "error_hint"
	FieldImpact    = "impact"
)

type Attr = slog.Attr

func Any(key string, value any) Attr { return slog.Any(key, value) }

func Bool(key string, value bool) Attr { return slog.Bool(key, value) }

func Duration(key string, value time.Duration) Attr { return slog.Duration(key, value) }

func Int(key string, value int) Attr { return slog.Int(key, value) }

func String(key, value string) Attr { return slog.String(key, value) }

func ContactID(id string) Attr { return slog.String(FieldContactID, id) }

func EventType(kind string) Attr { return slog.String(FieldEventType, kind) }

func Error(err error) Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}

// NewNop returns a logger that discards everything.
func NewNop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// NewComponentLogger tags every line of logger with component. A nil logger
// yields a no-op one.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(FieldComponent, component)
}

// WarnWithContext logs a warning that always carries event_type, error_hint
// and impact. Keys missing from attrs get a default.
func WarnWithContext(logger *slog.Logger, msg, eventType string, attrs ...Attr) {
	if logger == nil {
		return
	}
	defaults := []Attr{
		EventType(eventType),
		slog.String(FieldErrorHint, "rerun with logging.level = \"debug\""),
		slog.String(FieldImpact, "address book unchanged"),
	}
	given := make(map[string]bool, len(attrs))
	args := make([]any, 0, len(attrs)+len(defaults))
	for _, a := range attrs {
		given[a.Key] = true
		args = append(args, a)
	}
	for _, d := range defaults {
		if !given[d.Key] {
			args = append(args, d)
		}
	}
	logger.Warn(msg, args...)
}
