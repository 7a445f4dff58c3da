package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "personalsite/internal/errors"
	"personalsite/internal/schedule"
)

// fakeBookings maps YYYY-MM-DD to booked time labels and records every query.
type fakeBookings struct {
	booked  map[string][]string
	queried []string
}

func (f *fakeBookings) ListBookedTimes(date time.Time) ([]string, error) {
	key := date.Format(schedule.DateLayout)
	f.queried = append(f.queried, key)
	return f.booked[key], nil
}

func testHours() schedule.BusinessHours {
	days := map[time.Weekday]schedule.DayHours{}
	for d := time.Monday; d <= time.Friday; d++ {
		days[d] = schedule.DayHours{Open: "09:00", Close: "17:00"}
	}
	return schedule.BusinessHours{Days: days, SlotMinutes: 60, Location: time.UTC}
}

func allWeekdaySlots() []string {
	return []string{"09:00", "10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00"}
}

func TestCheckAvailabilityWithBookings(t *testing.T) {
	// 2025-06-04 is a Wednesday.
	repo := &fakeBookings{booked: map[string][]string{
		"2025-06-04": {"09:00", "11:00"},
	}}
	svc := NewAvailabilityService(testHours(), repo)

	result, err := svc.CheckAvailability("2025-06-04")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-04", result.Date)
	assert.Equal(t, []string{"10:00", "12:00", "13:00", "14:00", "15:00", "16:00"}, result.AvailableSlots)
	assert.Nil(t, result.NextAvailableDay)
}

func TestClosedDaySkipsRepositoryAndFindsNextDay(t *testing.T) {
	// 2025-06-07 is a Saturday; the following Monday is 2025-06-09.
	repo := &fakeBookings{booked: map[string][]string{}}
	svc := NewAvailabilityService(testHours(), repo)

	result, err := svc.CheckAvailability("2025-06-07")
	require.NoError(t, err)
	assert.Empty(t, result.AvailableSlots)
	require.NotNil(t, result.NextAvailableDay)
	assert.Equal(t, "2025-06-09", *result.NextAvailableDay)

	// Saturday itself and the Sunday in between must never hit the repository.
	assert.NotContains(t, repo.queried, "2025-06-07")
	assert.NotContains(t, repo.queried, "2025-06-08")
}

func TestFullyBookedDayReturnsEarliestFreeDay(t *testing.T) {
	// 2025-06-02 is a Monday. It and the next five working days are fully
	// booked; 2025-06-10 (Tuesday next week) is the first free one.
	booked := map[string][]string{}
	for _, day := range []string{"2025-06-02", "2025-06-03", "2025-06-04", "2025-06-05", "2025-06-06", "2025-06-09"} {
		booked[day] = allWeekdaySlots()
	}
	repo := &fakeBookings{booked: booked}
	svc := NewAvailabilityService(testHours(), repo)

	result, err := svc.CheckAvailability("2025-06-02")
	require.NoError(t, err)
	assert.Empty(t, result.AvailableSlots)
	require.NotNil(t, result.NextAvailableDay)
	assert.Equal(t, "2025-06-10", *result.NextAvailableDay)
}

func TestNoAvailabilityWithinWindowIsNotAnError(t *testing.T) {
	booked := map[string][]string{}
	start, _ := time.Parse(schedule.DateLayout, "2025-06-02")
	for i := 0; i <= 31; i++ {
		booked[start.AddDate(0, 0, i).Format(schedule.DateLayout)] = allWeekdaySlots()
	}
	repo := &fakeBookings{booked: booked}
	svc := NewAvailabilityService(testHours(), repo)

	result, err := svc.CheckAvailability("2025-06-02")
	require.NoError(t, err)
	assert.Empty(t, result.AvailableSlots)
	assert.Nil(t, result.NextAvailableDay)
}

func TestNextAvailableDayBounds(t *testing.T) {
	repo := &fakeBookings{booked: map[string][]string{}}
	svc := NewAvailabilityService(testHours(), repo)

	after, _ := time.Parse(schedule.DateLayout, "2025-06-02")
	next, err := svc.NextAvailableDay(after)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.True(t, next.After(after), "next day must be strictly after the requested date")
	assert.False(t, next.After(after.AddDate(0, 0, nextDayLookahead)), "next day must stay within the window")
}

func TestFilterIsIdempotent(t *testing.T) {
	repo := &fakeBookings{booked: map[string][]string{
		"2025-06-04": {"09:00", "11:00"},
	}}
	svc := NewAvailabilityService(testHours(), repo)

	date, _ := time.Parse(schedule.DateLayout, "2025-06-04")
	first, err := svc.FreeSlots(date)
	require.NoError(t, err)
	second, err := svc.FreeSlots(date)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBookedTimesWithSecondsAreNormalized(t *testing.T) {
	repo := &fakeBookings{booked: map[string][]string{
		"2025-06-04": {"09:00:00", "11:00:00"},
	}}
	svc := NewAvailabilityService(testHours(), repo)

	date, _ := time.Parse(schedule.DateLayout, "2025-06-04")
	free, err := svc.FreeSlots(date)
	require.NoError(t, err)
	assert.NotContains(t, free, "09:00")
	assert.NotContains(t, free, "11:00")
	assert.Len(t, free, 6)
}

func TestCheckAvailabilityInvalidInput(t *testing.T) {
	svc := NewAvailabilityService(testHours(), &fakeBookings{})

	for _, input := range []string{"", "not-a-date", "2025-13-40"} {
		_, err := svc.CheckAvailability(input)
		require.Error(t, err, "input %q", input)
		assert.Equal(t, 400, apperrors.StatusOf(err))
	}
}
