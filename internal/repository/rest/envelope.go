package rest

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/remote"
	json "github.com/goccy/go-json"
)

// Kind says which shape the backend answered with.
type Kind int

const (
	KindEmpty Kind = iota
	KindBare
	KindPunchData
	KindData
	KindAttendanceData
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindBare:
		return "bare"
	case KindPunchData:
		return "punchData"
	case KindData:
		return "data"
	case KindAttendanceData:
		return "attendanceData"
	case KindObject:
		return "object"
	}
	return "empty"
}

// payloadKeys are tried in order.
var payloadKeys = []struct {
	name string
	kind Kind
}{
	{"punchData", KindPunchData},
	{"attendanceData", KindAttendanceData},
	{"data", KindData},
}

// Meta is the pagination the backend reported, zero when absent.
type Meta struct {
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}

// Envelope is every backend response reduced to records, message and pagination.
type Envelope struct {
	Kind    Kind
	Records []json.RawMessage
	// Single is true when the payload was one object rather than a list.
	Single  bool
	Message string
	Meta    Meta
}

// First returns the first record, or nil.
func (e Envelope) First() json.RawMessage {
	if len(e.Records) == 0 {
		return nil
	}
	return e.Records[0]
}

// Decode unmarshals every record into out, which must point to a slice.
func (e Envelope) Decode(out interface{}) error {
	parts := make([][]byte, len(e.Records))
	for i, record := range e.Records {
		parts[i] = record
	}
	raw := append(append([]byte{'['}, bytes.Join(parts, []byte{','})...), ']')
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %v", remote.ErrUnexpectedResponse, err)
	}
	return nil
}

// DecodeFirst unmarshals the first record into out.
func (e Envelope) DecodeFirst(out interface{}) error {
	first := e.First()
	if first == nil {
		return fmt.Errorf("%w: no record in %s response", remote.ErrUnexpectedResponse, e.Kind)
	}
	if err := json.Unmarshal(first, out); err != nil {
		return fmt.Errorf("%w: %v", remote.ErrUnexpectedResponse, err)
	}
	return nil
}

// ParseEnvelope normalizes a backend body. An empty body yields KindEmpty.
func ParseEnvelope(body []byte) (Envelope, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return Envelope{Kind: KindEmpty}, nil
	}

	switch body[0] {
	case '[':
		var records []json.RawMessage
		if err := json.Unmarshal(body, &records); err != nil {
			return Envelope{}, fmt.Errorf("%w: %v", remote.ErrUnexpectedResponse, err)
		}
		return Envelope{Kind: KindBare, Records: records}, nil
	case '{':
	default:
		return Envelope{}, fmt.Errorf("%w: body is neither an object nor an array", remote.ErrUnexpectedResponse)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", remote.ErrUnexpectedResponse, err)
	}

	env := Envelope{
		Message: messageOf(fields),
		Meta:    metaOf(fields),
	}

	for _, key := range payloadKeys {
		payload, ok := fields[key.name]
		if !ok || isNull(payload) {
			continue
		}
		env.Kind = key.kind

		trimmed := bytes.TrimSpace(payload)
		switch trimmed[0] {
		case '[':
			if err := json.Unmarshal(trimmed, &env.Records); err != nil {
				return Envelope{}, fmt.Errorf("%w: %v", remote.ErrUnexpectedResponse, err)
			}
		case '{':
			// {data: {attendanceData: [...], pagination: {...}}}
			inner, err := ParseEnvelope(trimmed)
			if err == nil && inner.Kind != KindObject && inner.Kind != KindEmpty {
				inner.Kind = key.kind
				if inner.Message == "" {
					inner.Message = env.Message
				}
				inner.Meta = mergeMeta(inner.Meta, env.Meta)
				return inner, nil
			}
			env.Records = []json.RawMessage{trimmed}
			env.Single = true
		default:
			return Envelope{}, fmt.Errorf("%w: %s is not an object or array", remote.ErrUnexpectedResponse, key.name)
		}
		return env, nil
	}

	// No payload key: the object is the record itself, unless it is only a status reply.
	env.Kind = KindObject
	if !statusOnly(fields) {
		env.Records = []json.RawMessage{body}
		env.Single = true
	}
	return env, nil
}

var statusKeys = map[string]bool{"message": true, "msg": true, "success": true, "status": true}

func statusOnly(fields map[string]json.RawMessage) bool {
	for key := range fields {
		if !statusKeys[key] {
			return false
		}
	}
	return true
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func messageOf(fields map[string]json.RawMessage) string {
	for _, key := range []string{"message", "msg", "error"} {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && s != "" {
			return s
		}
		// {"error": {"message": "..."}}
		var nested map[string]json.RawMessage
		if err := json.Unmarshal(raw, &nested); err == nil {
			if msg := messageOf(nested); msg != "" {
				return msg
			}
		}
	}
	return ""
}

func metaOf(fields map[string]json.RawMessage) Meta {
	meta := Meta{
		Page:       intField(fields, "page", "currentPage"),
		Limit:      intField(fields, "limit", "perPage", "pageSize"),
		Total:      int64(intField(fields, "total", "totalRecords", "totalItems", "count")),
		TotalPages: intField(fields, "totalPages", "pages"),
	}
	for _, key := range []string{"pagination", "meta"} {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		var nested map[string]json.RawMessage
		if err := json.Unmarshal(raw, &nested); err == nil {
			meta = mergeMeta(meta, metaOf(nested))
		}
	}
	return meta
}

// mergeMeta fills zero fields of a from b.
func mergeMeta(a, b Meta) Meta {
	if a.Page == 0 {
		a.Page = b.Page
	}
	if a.Limit == 0 {
		a.Limit = b.Limit
	}
	if a.Total == 0 {
		a.Total = b.Total
	}
	if a.TotalPages == 0 {
		a.TotalPages = b.TotalPages
	}
	return a
}

// intField reads the first key holding a number or a numeric string.
func intField(fields map[string]json.RawMessage, keys ...string) int {
	for _, key := range keys {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		var n float64
		if err := json.Unmarshal(raw, &n); err == nil {
			return int(n)
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			if v, err := strconv.Atoi(s); err == nil {
				return v
			}
		}
	}
	return 0
}
