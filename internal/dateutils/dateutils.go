// Package dateutils provides common date and month-key operations used throughout the application.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// MonthKeyLayout is the canonical layout for ledger month keys (e.g. "March 2025").
const MonthKeyLayout = "January 2006"

// monthKeyFormats is a list of layouts to try when parsing month keys,
// tolerating abbreviated month names and numeric forms from older data.
var monthKeyFormats = []string{
	MonthKeyLayout,
	"Jan 2006",
	"2006-01",
	"01/2006",
}

// ParseMonthKey parses a "Month Year" key into the first day of that month (UTC).
func ParseMonthKey(key string) (time.Time, error) {
	key = CleanDateString(key)
	for _, format := range monthKeyFormats {
		if t, err := time.Parse(format, key); err == nil {
			return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse month key: %s", key)
}

// FormatMonthKey formats a date as a canonical month key.
func FormatMonthKey(date time.Time) string {
	return date.Format(MonthKeyLayout)
}

// CleanDateString removes unwanted characters and normalizes a date string
func CleanDateString(dateStr string) string {
	dateStr = strings.TrimSpace(dateStr)

	// Replace multiple spaces with a single space
	re := regexp.MustCompile(`\s+`)
	dateStr = re.ReplaceAllString(dateStr, " ")

	return dateStr
}

// StartOfMonth returns the first day of the month for a given date
func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// EndOfMonth returns the last day of the month for a given date
func EndOfMonth(date time.Time) time.Time {
	return StartOfMonth(date).AddDate(0, 1, -1)
}

// DaysInMonth returns the number of calendar days in the month of the given date.
func DaysInMonth(date time.Time) int {
	return EndOfMonth(date).Day()
}

// DaysInMonthKey returns the number of calendar days in the month the key encodes.
func DaysInMonthKey(key string) (int, error) {
	t, err := ParseMonthKey(key)
	if err != nil {
		return 0, err
	}
	return DaysInMonth(t), nil
}
