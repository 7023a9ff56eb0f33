// Package clock provides an injectable source of the current date.
package clock

import "time"

// DateLayout is the ISO 8601 calendar date layout used by the store.
const DateLayout = "2006-01-02"

// Today is the sentinel date value resolved to the current date.
const Today = "today"

// Clock returns the current time. A nil Clock uses the system clock.
type Clock func() time.Time

// System is the wall clock.
var System Clock = time.Now

// Fixed returns a Clock that always reports t.
func Fixed(t time.Time) Clock {
	return func() time.Time { return t }
}

// Now returns the current time according to c.
func (c Clock) Now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}

// Today returns the current local date as YYYY-MM-DD.
func (c Clock) Today() string {
	return c.Now().Format(DateLayout)
}

// Resolve returns the current date if date is the "today" sentinel,
// and date unchanged otherwise.
func (c Clock) Resolve(date string) string {
	if date == Today {
		return c.Today()
	}
	return date
}
