package broadcast

import (
	"time"
)

// Wire formats for calendar values carried by domain records.
const (
	DateFormat  = "2006-01-02"
	ClockFormat = "15:04"
)

// Event is anything with a resolvable broadcast instant. Implemented by
// domain.MatchingNight and domain.Matchbox.
type Event interface {
	// Broadcast returns the explicit broadcast date (YYYY-MM-DD) and clock
	// time (HH:MM); either may be empty.
	Broadcast() (date, clock string)

	// Fallback returns the instant used when no usable broadcast date is
	// set, typically the record's creation timestamp.
	Fallback() time.Time
}

// Option configures instant resolution.
type Option func(*options)

type options struct {
	airTime string
}

// WithDefaultAirTime makes date-only events resolve at the given clock time
// (HH:MM) instead of start-of-day. The original broadcasts aired at a fixed
// slot, so callers that track real shows usually pass "20:15".
func WithDefaultAirTime(clock string) Option {
	return func(o *options) {
		o.airTime = clock
	}
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ResolveInstant returns the canonical instant for an event.
//
// Explicit date and time combine into a single instant; an explicit date
// without a time resolves to start-of-day (or the configured default air
// time); no date, or an unparseable one, falls back to Event.Fallback.
// All resolved instants are UTC.
func ResolveInstant(e Event, opts ...Option) time.Time {
	o := applyOptions(opts)
	return resolve(e, o)
}

func resolve(e Event, o options) time.Time {
	date, clock := e.Broadcast()
	if date == "" {
		return e.Fallback()
	}

	day, err := time.ParseInLocation(DateFormat, date, time.UTC)
	if err != nil {
		return e.Fallback()
	}

	if clock == "" {
		clock = o.airTime
	}
	if clock != "" {
		if t, err := time.ParseInLocation(ClockFormat, clock, time.UTC); err == nil {
			return day.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute)
		}
	}

	return day
}

// IsBefore reports whether a's resolved instant is strictly before b's.
// Equal instants are not ordered: IsBefore(a, b) and IsBefore(b, a) are both
// false for a tie.
func IsBefore(a, b Event, opts ...Option) bool {
	o := applyOptions(opts)
	return resolve(a, o).Before(resolve(b, o))
}

// hasExplicitClock reports whether the event carries a parseable explicit
// broadcast time. Used only as a sort tie-breaker.
func hasExplicitClock(e Event) bool {
	date, clock := e.Broadcast()
	if date == "" || clock == "" {
		return false
	}
	_, err := time.ParseInLocation(ClockFormat, clock, time.UTC)
	return err == nil
}
