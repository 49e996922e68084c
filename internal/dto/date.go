package dto

import (
	"encoding/json"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a due date as sent by clients: either a calendar date from a
// date input ("2006-01-02", read as midnight UTC) or an RFC 3339 timestamp.
// An empty string means no date.
type Date struct {
	Time  time.Time
	Valid bool
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Date{}
		return nil
	}

	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if raw == "" {
		*d = Date{}
		return nil
	}

	for _, layout := range []string{dateLayout, time.RFC3339Nano} {
		if t, err := time.Parse(layout, raw); err == nil {
			*d = Date{Time: t, Valid: true}
			return nil
		}
	}
	return fmt.Errorf("invalid date %q", raw)
}

// Ptr returns the date, or nil when d is absent or empty.
func (d *Date) Ptr() *time.Time {
	if d == nil || !d.Valid {
		return nil
	}
	t := d.Time
	return &t
}
