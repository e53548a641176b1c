package model

import (
	"errors"
	"strings"
	"time"
)

// ErrInvalidDate is returned when a publishedDate value cannot be parsed.
var ErrInvalidDate = errors.New("invalid date value")

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// Date is a time.Time that accepts both RFC 3339 timestamps and plain
// YYYY-MM-DD strings in JSON, the two formats clients actually send.
type Date struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return ErrInvalidDate
}

// MarshalJSON implements json.Marshaler, always emitting RFC 3339.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(time.RFC3339) + `"`), nil
}
