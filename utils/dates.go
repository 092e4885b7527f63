package utils

import (
	"log"
	"os"
	"time"
)

// DateLocation is the application's timezone. "Today" for import validation
// is midnight in this location.
var DateLocation = time.UTC

// InitializeDateLocation sets up the application's timezone from the
// APP_TIMEZONE environment variable, defaulting to UTC.
func InitializeDateLocation() error {
	timezone := os.Getenv("APP_TIMEZONE")
	if timezone == "" {
		timezone = "UTC"
		log.Printf("APP_TIMEZONE not set, using UTC")
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return err
	}
	DateLocation = loc
	return nil
}

// NormalizeDate truncates a time to midnight in the application timezone.
func NormalizeDate(t time.Time) time.Time {
	year, month, day := t.In(DateLocation).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, DateLocation)
}

// Today returns today's date at midnight in the application timezone.
func Today() time.Time {
	return NormalizeDate(time.Now())
}
