package logging

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

// consoleHandler writes one line per record:
//
//	2006-01-02 15:04:05 INFO [directory] contact 0b5f8a2e – merged contact score=2
//
// The component and contact_id attributes move into the line header; every
// other attribute follows the message as key=value.
type consoleHandler struct {
	out    *syncWriter
	level  slog.Leveler
	source bool
	prefix string // open groups, dot terminated
	preset []field
}

type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) write(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := io.WriteString(s.w, line)
	return err
}

type field struct {
	key string
	val slog.Value
}

func newConsoleHandler(w io.Writer, level slog.Leveler, source bool) slog.Handler {
	return &consoleHandler{out: &syncWriter{w: w}, level: level, source: source}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) Handle(_ context.Context, rec slog.Record) error {
	fields := slices.Clone(h.preset)
	rec.Attrs(func(a slog.Attr) bool {
		fields = appendField(fields, h.prefix, a)
		return true
	})

	var component, contactID string
	rest := make([]field, 0, len(fields))
	seen := make(map[string]int, len(fields))
	for _, f := range fields {
		switch f.key {
		case FieldComponent:
			component = cmp.Or(component, f.val.String())
			continue
		case FieldContactID:
			contactID = cmp.Or(contactID, f.val.String())
			continue
		}
		if i, ok := seen[f.key]; ok {
			rest[i].val = f.val
			continue
		}
		seen[f.key] = len(rest)
		rest = append(rest, f)
	}

	ts := rec.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	var b strings.Builder
	b.WriteString(formatTimestamp(ts))
	b.WriteString(" " + levelLabel(rec.Level))
	if component != "" {
		b.WriteString(" [" + component + "]")
	}
	if contactID != "" {
		b.WriteString(" contact " + shortID(contactID))
	}
	b.WriteString(" – " + cmp.Or(strings.TrimSpace(rec.Message), "(no message)"))
	if h.source && rec.PC != 0 {
		frame, _ := runtime.CallersFrames([]uintptr{rec.PC}).Next()
		fmt.Fprintf(&b, " [%s:%d]", filepath.Base(frame.File), frame.Line)
	}
	for _, f := range rest {
		b.WriteString(" " + f.key + "=" + formatValue(f.val))
	}
	b.WriteByte('\n')
	return h.out.write(b.String())
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.preset = slices.Clone(h.preset)
	for _, a := range attrs {
		next.preset = appendField(next.preset, h.prefix, a)
	}
	return &next
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.prefix = h.prefix + name + "."
	return &next
}

func appendField(dst []field, prefix string, a slog.Attr) []field {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return dst
	}
	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			prefix += a.Key + "."
		}
		for _, member := range a.Value.Group() {
			dst = appendField(dst, prefix, member)
		}
		return dst
	}
	return append(dst, field{key: strings.TrimSuffix(prefix+a.Key, "."), val: a.Value})
}

var levelLabels = []struct {
	min   slog.Level
	label string
}{
	{slog.LevelError, "ERROR"},
	{slog.LevelWarn, "WARN"},
	{slog.LevelInfo, "INFO"},
}

func levelLabel(level slog.Level) string {
	for _, l := range levelLabels {
		if level >= l.min {
			return l.label
		}
	}
	return "DEBUG"
}

// shortID keeps the first block of a UUID.
func shortID(id string) string {
	if head, _, ok := strings.Cut(id, "-"); ok && head != "" {
		return head
	}
	return id
}

func formatTimestamp(ts time.Time) string {
	return ts.In(time.Local).Format(time.DateTime)
}

// formatValue renders a value for key=value output. Field value lists join
// with commas; anything with spaces, quotes or '=' is quoted.
func formatValue(v slog.Value) string {
	var s string
	switch v.Kind() {
	case slog.KindTime:
		s = formatTimestamp(v.Time())
	case slog.KindAny:
		switch x := v.Any().(type) {
		case []string:
			s = strings.Join(x, ",")
		case error:
			s = x.Error()
		default:
			s = fmt.Sprint(x)
		}
	default:
		s = v.String()
	}
	if s == "" || strings.ContainsFunc(s, func(r rune) bool { return r <= ' ' || r == '=' || r == '"' }) {
		return strconv.Quote(s)
	}
	return s
}
