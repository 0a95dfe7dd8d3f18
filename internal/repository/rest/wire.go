package rest

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// flexTime accepts the timestamp spellings the backend has been seen to send.
type flexTime struct {
	Time  time.Time
	Valid bool
}

func (t *flexTime) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = flexTime{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// epoch milliseconds
		var ms int64
		if err := json.Unmarshal(data, &ms); err != nil {
			return fmt.Errorf("time %s: %w", data, err)
		}
		*t = flexTime{Time: time.UnixMilli(ms).UTC(), Valid: true}
		return nil
	}

	s = strings.TrimSpace(s)
	if s == "" {
		*t = flexTime{}
		return nil
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			*t = flexTime{Time: parsed, Valid: true}
			return nil
		}
	}
	return fmt.Errorf("unrecognized time %q", s)
}

func (t flexTime) Ptr() *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

// flexInt accepts numbers and numeric strings. Valid is false for null or "".
type flexInt struct {
	Value int
	Valid bool
}

func (n *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = flexInt{}
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*n = flexInt{Value: int(f), Valid: true}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s = strings.TrimSpace(s); s == "" {
		*n = flexInt{}
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("number %q: %w", s, err)
	}
	*n = flexInt{Value: int(f), Valid: true}
	return nil
}

func (n flexInt) Ptr() *int {
	if !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}

// flexFloat accepts numbers and numeric strings.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*f = 0
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		*f = flexFloat(v)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s = strings.TrimSpace(s); s == "" {
		*f = 0
		return nil
	}
	parsed, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("number %q: %w", s, err)
	}
	*f = flexFloat(parsed)
	return nil
}

// flexMonth accepts 1-12 or an English month name.
type flexMonth int

func (m *flexMonth) UnmarshalJSON(data []byte) error {
	var n flexInt
	if err := n.UnmarshalJSON(data); err == nil {
		*m = flexMonth(n.Value)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	s = strings.ToLower(strings.TrimSpace(s))
	for month := time.January; month <= time.December; month++ {
		name := strings.ToLower(month.String())
		if s == name || (len(s) >= 3 && strings.HasPrefix(name, s)) {
			*m = flexMonth(month)
			return nil
		}
	}
	return fmt.Errorf("unrecognized month %q", s)
}

// firstNonEmpty returns the first non-blank value.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
