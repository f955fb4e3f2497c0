package queue

import (
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// Message is a LifecycleEvent read back from the stream.
type Message struct {
	ID             string
	EventType      string
	OrganizationID int64
	ProjectID      *int64
	ActivityLogID  int64
	Attempt        int
	TraceID        string
	Raw            redis.XMessage
}

func (m Message) Event() LifecycleEvent {
	return LifecycleEvent{
		EventType:      m.EventType,
		OrganizationID: m.OrganizationID,
		ProjectID:      m.ProjectID,
		ActivityLogID:  m.ActivityLogID,
		TraceID:        m.TraceID,
		Attempt:        m.Attempt,
	}
}

// ParseMessage decodes the stream entry written by eventValues. The first
// malformed field wins; later fields are not inspected.
func ParseMessage(raw redis.XMessage) (Message, error) {
	f := fields{values: raw.Values}
	msg := Message{
		ID:             raw.ID,
		EventType:      f.required("event_type"),
		OrganizationID: f.requiredInt("organization_id"),
		ActivityLogID:  f.requiredInt("activity_log_id"),
		ProjectID:      f.optionalInt("project_id"),
		Attempt:        int(f.defaultInt("attempt", 1)),
		TraceID:        f.text("trace_id"),
		Raw:            raw,
	}
	if f.err != nil {
		return Message{}, f.err
	}
	if msg.Attempt < 1 {
		msg.Attempt = 1
	}
	return msg, nil
}

// fields reads typed values out of a stream entry, remembering the first error.
type fields struct {
	values map[string]any
	err    error
}

func (f *fields) lookup(key string) (string, bool) {
	v, ok := f.values[key]
	if !ok {
		return "", false
	}
	if s, isString := v.(string); isString {
		return s, true
	}
	return fmt.Sprint(v), true
}

func (f *fields) fail(err error) {
	if f.err == nil {
		f.err = err
	}
}

func (f *fields) text(key string) string {
	s, _ := f.lookup(key)
	return s
}

func (f *fields) required(key string) string {
	s, ok := f.lookup(key)
	if !ok || s == "" {
		f.fail(fmt.Errorf("missing %s", key))
	}
	return s
}

func (f *fields) parse(key, s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		f.fail(fmt.Errorf("parsing %s: %w", key, err))
	}
	return n
}

func (f *fields) requiredInt(key string) int64 {
	s, ok := f.lookup(key)
	if !ok {
		f.fail(fmt.Errorf("missing %s", key))
		return 0
	}
	return f.parse(key, s)
}

func (f *fields) optionalInt(key string) *int64 {
	s, ok := f.lookup(key)
	if !ok {
		return nil
	}
	n := f.parse(key, s)
	return &n
}

func (f *fields) defaultInt(key string, fallback int64) int64 {
	s, ok := f.lookup(key)
	if !ok {
		return fallback
	}
	return f.parse(key, s)
}
