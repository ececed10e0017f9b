package api

import (
	"fmt"
	"time"

	"eventcast/internal/event"
)

const defaultDuration = 3 * time.Hour

// StartEnd turns the envelope's local date/time strings into instants in
// the given fixed-offset zone. Missing start time defaults to 19:00;
// missing end time defaults to start plus three hours. The envelope was
// validated before adapters run, so the date parses here.
func StartEnd(env event.Envelope, loc *time.Location) (time.Time, time.Time, error) {
	day, err := event.ParseDate(env.Date)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	start, err := atClock(day, env.Time, "19:00", loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start time: %w", err)
	}

	if env.EndTime == "" {
		return start, start.Add(defaultDuration), nil
	}
	end, err := atClock(day, env.EndTime, "", loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("end time: %w", err)
	}
	if !end.After(start) {
		// Past-midnight end times roll to the next day.
		end = end.Add(24 * time.Hour)
	}
	return start, end, nil
}

func atClock(day time.Time, clock, fallback string, loc *time.Location) (time.Time, error) {
	if clock == "" {
		clock = fallback
	}
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad clock %q", clock)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
}
