package dateutil

import "time"

// Locale identifiers for weekday names
const (
	LocaleEnglish  = "en"
	LocaleJapanese = "ja"
)

var japaneseWeekdays = [7]string{
	"日曜日", // Sunday first, matching time.Weekday numbering
	"月曜日",
	"火曜日",
	"水曜日",
	"木曜日",
	"金曜日",
	"土曜日",
}

// StartOfDay returns the start of the day (00:00:00) for the given date
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// Today returns today's date (start of day) in the given location
func Today(loc *time.Location) time.Time {
	return StartOfDay(time.Now().In(loc))
}

// GetWeekNumber returns the ISO week number for the given date
func GetWeekNumber(date time.Time) (year int, week int) {
	year, week = date.ISOWeek()
	return
}

// IsSameWeek returns true if two dates are in the same ISO week
func IsSameWeek(date1, date2 time.Time) bool {
	year1, week1 := GetWeekNumber(date1)
	year2, week2 := GetWeekNumber(date2)
	return year1 == year2 && week1 == week2
}

// MakeDate builds a date from its components and reports whether the
// combination is a real calendar date. time.Date normalizes overflow
// (February 30 becomes March 1 or 2), so validity is checked by comparing
// the normalized result against the inputs.
func MakeDate(year, month, day int, loc *time.Location) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	if date.Year() != year || date.Month() != time.Month(month) || date.Day() != day {
		return time.Time{}, false
	}
	return date, true
}

// WeekdayName returns the weekday name of the given date in the given
// locale. Unknown locales fall back to English.
func WeekdayName(date time.Time, locale string) string {
	if locale == LocaleJapanese {
		return japaneseWeekdays[int(date.Weekday())]
	}
	return date.Weekday().String()
}

// ParseDate parses a date string in the formats the CLI accepts
func ParseDate(dateStr string, loc *time.Location) (time.Time, error) {
	formats := []string{
		"2006-01-02",
		"2006/01/02",
	}

	var lastErr error
	for _, format := range formats {
		t, err := time.ParseInLocation(format, dateStr, loc)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}

	return time.Time{}, lastErr
}
