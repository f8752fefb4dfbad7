package model

import (
	"bytes"
	"fmt"
	"time"

	"github.com/araddon/dateparse"
)

// InputLayout is the layout date inputs are edited in.
const InputLayout = "2006-01-02"

// Date is a calendar value stored as an ISO string. It accepts any layout
// dateparse understands when decoding, so older slots written as plain
// "YYYY-MM-DD" strings still hydrate.
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	return Date{Time: t}
}

// ParseDate parses s in UTC. An empty string is the zero Date.
func ParseDate(s string) (Date, error) {
	if s == "" {
		return Date{}, nil
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{Time: t}, nil
}

// MustDate is ParseDate for seed data.
func MustDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Input renders the date the way a date input field expects it.
func (d Date) Input() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(InputLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(time.RFC3339Nano) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) || bytes.Equal(b, []byte(`""`)) {
		*d = Date{}
		return nil
	}
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("date must be a string, got %s", b)
	}
	parsed, err := ParseDate(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Equal compares the instants, ignoring location.
func (d Date) Equal(o Date) bool {
	return d.Time.Equal(o.Time)
}
