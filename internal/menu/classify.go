package menu

import (
	"time"

	"github.com/ressharu/menu-bot/pkg/dateutil"
)

// DefaultReferenceYear is the year menu records are pinned to when the
// config does not say otherwise. The feed only carries month and day, so a
// year has to be supplied to place records on the calendar.
const DefaultReferenceYear = 2024

// Classifier buckets menu records into the current ISO week versus every
// other week. Pure: the reference "today" is always passed in, never read
// from the clock.
type Classifier struct {
	year     int
	locale   string
	location *time.Location
}

// NewClassifier creates a classifier for the given reference year, weekday
// locale and time zone. Zero values fall back to defaults.
func NewClassifier(year int, locale string, location *time.Location) *Classifier {
	if year == 0 {
		year = DefaultReferenceYear
	}
	if locale == "" {
		locale = dateutil.LocaleJapanese
	}
	if location == nil {
		location = time.Local
	}

	return &Classifier{
		year:     year,
		locale:   locale,
		location: location,
	}
}

// Classify partitions menus into records whose first day falls in the same
// ISO week as today and records in any other week (past or future — the
// split is binary, not "next week"). Records with no days, or whose month
// and first day don't form a real date in the reference year, land in
// neither bucket.
func (c *Classifier) Classify(menus []WeeklyMenu, today time.Time) (currentWeek, otherWeek []WeeklyMenu) {
	for _, m := range menus {
		firstDay, ok := m.FirstDay()
		if !ok {
			continue
		}

		candidate, ok := dateutil.MakeDate(c.year, m.Month, firstDay, c.location)
		if !ok {
			continue
		}

		if dateutil.IsSameWeek(candidate, today) {
			currentWeek = append(currentWeek, m)
		} else {
			otherWeek = append(otherWeek, m)
		}
	}

	return currentWeek, otherWeek
}

// WeekdayLabel returns the weekday name of (month, day) in the reference
// year, in the configured locale. Invalid dates yield an empty string.
func (c *Classifier) WeekdayLabel(month, day int) string {
	date, ok := dateutil.MakeDate(c.year, month, day, c.location)
	if !ok {
		return ""
	}
	return dateutil.WeekdayName(date, c.locale)
}

// Year returns the reference year the classifier pins records to
func (c *Classifier) Year() int {
	return c.year
}
