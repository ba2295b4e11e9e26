// Package report builds the daily admin order report, mails it to every
// admin and archives a copy.
package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/model"
)

// ErrNoAdmins is returned when there is nobody to send the report to.
var ErrNoAdmins = errors.New("no admin users to send the report to")

// OrderSource lists orders created in a time window, cancelled excluded.
type OrderSource interface {
	ListCreatedBetween(ctx context.Context, start, end time.Time) ([]model.Order, error)
}

// AdminSource lists users by role.
type AdminSource interface {
	ListByRole(ctx context.Context, role model.Role) ([]model.User, error)
}

// Archiver stores a built report and returns where it went.
type Archiver interface {
	Archive(ctx context.Context, report *model.DailyReport) (string, error)
}

// ParseDate parses a YYYY-MM-DD date as midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(time.DateOnly, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return d, nil
}

// Yesterday returns midnight of the day before now, in loc.
func Yesterday(now time.Time, loc *time.Location) time.Time {
	y, m, d := now.In(loc).Date()
	return time.Date(y, m, d-1, 0, 0, 0, 0, loc)
}

// dayBounds returns the first and last instant of date's day in loc.
// Postgres timestamps carry microseconds, so the end is one microsecond
// before the next midnight.
func dayBounds(date time.Time, loc *time.Location) (time.Time, time.Time) {
	y, m, d := date.In(loc).Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1).Add(-time.Microsecond)
}
