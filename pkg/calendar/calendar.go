// Package calendar converts CSV event listings into iCalendar files.
//
// The expected CSV header is Event,Date,StartTime,EndTime with dates as
// 2006-01-02 and times as 15:04. Rows that fail to parse are skipped and
// reported, never fatal.
package calendar

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
)

const productID = "-//Chillaid//Bulk ICS Generator//EN"

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"

	// icsTimeLayout is the floating date-time form (no timezone marker):
	// events keep their wall-clock time in whatever zone the consumer is.
	icsTimeLayout = "20060102T150405"
)

// Event is one calendar entry parsed from a CSV row.
type Event struct {
	Name  string
	Start time.Time
	End   time.Time
}

// RowError records a CSV row that could not be turned into an event.
type RowError struct {
	Row int
	Err error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

// Options configures calendar generation.
type Options struct {
	// UID generates event identifiers. Nil means random UUIDs.
	UID func(Event) string

	// Now supplies the DTSTAMP clock. Nil means time.Now.
	Now func() time.Time
}

// ParseCSV reads events from r. Malformed rows are returned as RowErrors
// alongside the events that did parse.
func ParseCSV(r io.Reader) ([]Event, []RowError, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	for _, required := range []string{"Event", "Date", "StartTime", "EndTime"} {
		if _, ok := cols[required]; !ok {
			return nil, nil, fmt.Errorf("missing column %q", required)
		}
	}

	var events []Event
	var rowErrs []RowError

	for row := 1; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			rowErrs = append(rowErrs, RowError{Row: row, Err: err})
			continue
		}

		event, err := parseRow(record, cols)
		if err != nil {
			rowErrs = append(rowErrs, RowError{Row: row, Err: err})
			continue
		}
		events = append(events, event)
	}

	return events, rowErrs, nil
}

func parseRow(record []string, cols map[string]int) (Event, error) {
	field := func(name string) (string, error) {
		i := cols[name]
		if i >= len(record) {
			return "", fmt.Errorf("missing column %q", name)
		}
		return record[i], nil
	}

	name, err := field("Event")
	if err != nil {
		return Event{}, err
	}
	dateStr, err := field("Date")
	if err != nil {
		return Event{}, err
	}
	startStr, err := field("StartTime")
	if err != nil {
		return Event{}, err
	}
	endStr, err := field("EndTime")
	if err != nil {
		return Event{}, err
	}

	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return Event{}, fmt.Errorf("invalid date %q: %w", dateStr, err)
	}
	start, err := atTime(date, startStr)
	if err != nil {
		return Event{}, fmt.Errorf("invalid start time %q: %w", startStr, err)
	}
	end, err := atTime(date, endStr)
	if err != nil {
		return Event{}, fmt.Errorf("invalid end time %q: %w", endStr, err)
	}

	return Event{Name: name, Start: start, End: end}, nil
}

func atTime(date time.Time, clock string) (time.Time, error) {
	t, err := time.Parse(timeLayout, clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location()), nil
}

// Build assembles a VCALENDAR from events.
func Build(events []Event, opts Options) *ics.Calendar {
	uid := opts.UID
	if uid == nil {
		uid = func(Event) string { return uuid.NewString() }
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	cal := ics.NewCalendar()
	cal.SetProductId(productID)
	cal.SetVersion("2.0")

	for _, event := range events {
		ve := cal.AddEvent(uid(event))
		ve.SetDtStampTime(now())
		ve.SetProperty(ics.ComponentPropertyDtStart, event.Start.Format(icsTimeLayout))
		ve.SetProperty(ics.ComponentPropertyDtEnd, event.End.Format(icsTimeLayout))
		ve.SetSummary(event.Name)
	}

	return cal
}

// Convert reads CSV from r and writes the resulting calendar to w,
// returning the events written and the rows skipped.
func Convert(r io.Reader, w io.Writer, opts Options) ([]Event, []RowError, error) {
	events, rowErrs, err := ParseCSV(r)
	if err != nil {
		return nil, nil, err
	}
	if err := Build(events, opts).SerializeTo(w); err != nil {
		return events, rowErrs, fmt.Errorf("serialize calendar: %w", err)
	}
	return events, rowErrs, nil
}
