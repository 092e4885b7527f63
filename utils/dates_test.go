package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDate(t *testing.T) {
	ts := time.Date(2023, 5, 17, 15, 42, 59, 123, time.UTC)

	normalized := NormalizeDate(ts)

	assert.Equal(t, 2023, normalized.Year())
	assert.Equal(t, time.May, normalized.Month())
	assert.Equal(t, 17, normalized.Day())
	assert.Equal(t, 0, normalized.Hour())
	assert.Equal(t, 0, normalized.Minute())
	assert.Equal(t, 0, normalized.Second())
}

func TestToday_IsMidnight(t *testing.T) {
	today := Today()

	assert.Equal(t, 0, today.Hour())
	assert.Equal(t, 0, today.Minute())
	assert.Equal(t, 0, today.Second())
	assert.False(t, today.After(time.Now().In(DateLocation)))
}

func TestInitializeDateLocation(t *testing.T) {
	original := DateLocation
	t.Cleanup(func() { DateLocation = original })

	t.Setenv("APP_TIMEZONE", "Europe/Warsaw")
	require.NoError(t, InitializeDateLocation())
	assert.Equal(t, "Europe/Warsaw", DateLocation.String())

	t.Setenv("APP_TIMEZONE", "Not/AZone")
	assert.Error(t, InitializeDateLocation())

	t.Setenv("APP_TIMEZONE", "")
	require.NoError(t, InitializeDateLocation())
	assert.Equal(t, "UTC", DateLocation.String())
}
