package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// naiveLayouts are offset-less ISO forms such as 2024-03-01T18:00:00.123456.
// They are read in the local zone, the zone they were written in.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// looseTime decodes RFC 3339 and naive ISO timestamps. null and "" decode to the zero time.
type looseTime time.Time

func (l *looseTime) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*l = looseTime{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	if s == "" {
		*l = looseTime{}
		return nil
	}

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		*l = looseTime(t)
		return nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			*l = looseTime(t)
			return nil
		}
	}
	return fmt.Errorf("unrecognised timestamp %q", s)
}

func (l *looseTime) ptr() *time.Time {
	if l == nil || time.Time(*l).IsZero() {
		return nil
	}
	t := time.Time(*l)
	return &t
}
