package schedule

import (
	"fmt"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// DayHours is the operating range for one weekday. The range is half-open:
// a slot may start at Open, and every slot must end by Close.
// The zero value means closed.
type DayHours struct {
	Open  string // "HH:MM"
	Close string // "HH:MM"
}

func (d DayHours) Closed() bool {
	return d.Open == "" && d.Close == ""
}

// BusinessHours maps each weekday to its operating range. SlotMinutes is the
// slot granularity shared by all days. Location is the wall-clock zone in which
// dates and slot labels are interpreted.
type BusinessHours struct {
	Days        map[time.Weekday]DayHours
	SlotMinutes int
	Location    *time.Location
}

// Validate checks every configured day parses and has open <= close.
func (b BusinessHours) Validate() error {
	if b.SlotMinutes <= 0 {
		return fmt.Errorf("slot minutes must be positive, got %d", b.SlotMinutes)
	}
	if b.Location == nil {
		return fmt.Errorf("location not set")
	}
	for day, hours := range b.Days {
		if hours.Closed() {
			continue
		}
		open, err := parseMinutes(hours.Open)
		if err != nil {
			return fmt.Errorf("%s open time: %w", day, err)
		}
		close, err := parseMinutes(hours.Close)
		if err != nil {
			return fmt.Errorf("%s close time: %w", day, err)
		}
		if open > close {
			return fmt.Errorf("%s: open %s is after close %s", day, hours.Open, hours.Close)
		}
	}
	return nil
}

// SlotsForDay returns every candidate slot label for the given date, ordered
// and duplicate-free. A slot is included when it starts at or after the open
// time and the full slot still fits before the close time. Closed days yield
// an empty list.
func (b BusinessHours) SlotsForDay(date time.Time) []string {
	hours, ok := b.Days[date.Weekday()]
	if !ok || hours.Closed() {
		return nil
	}

	open, err := parseMinutes(hours.Open)
	if err != nil {
		return nil
	}
	close, err := parseMinutes(hours.Close)
	if err != nil {
		return nil
	}

	var slots []string
	for t := open; t+b.SlotMinutes <= close; t += b.SlotMinutes {
		slots = append(slots, fmt.Sprintf("%02d:%02d", t/60, t%60))
	}
	return slots
}

// IsWorkingDay reports whether the weekday of date has a configured range.
func (b BusinessHours) IsWorkingDay(date time.Time) bool {
	hours, ok := b.Days[date.Weekday()]
	return ok && !hours.Closed()
}

// ParseDate parses a YYYY-MM-DD string as midnight in the configured location.
func (b BusinessHours) ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, b.Location)
}

// NormalizeTime truncates a time label to HH:MM, dropping any seconds carried
// over from database TIME columns.
func NormalizeTime(label string) string {
	if len(label) > len(TimeLayout) {
		return label[:len(TimeLayout)]
	}
	return label
}

func parseMinutes(label string) (int, error) {
	t, err := time.Parse(TimeLayout, label)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", label, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}
