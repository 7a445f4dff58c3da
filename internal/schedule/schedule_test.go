package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weekdayHours() BusinessHours {
	days := map[time.Weekday]DayHours{}
	for d := time.Monday; d <= time.Friday; d++ {
		days[d] = DayHours{Open: "09:00", Close: "17:00"}
	}
	return BusinessHours{Days: days, SlotMinutes: 60, Location: time.UTC}
}

func eveningHours() BusinessHours {
	days := map[time.Weekday]DayHours{
		time.Saturday: {Open: "00:00", Close: "14:00"},
		time.Friday:   {Open: "14:00", Close: "23:30"},
	}
	for d := time.Sunday; d <= time.Thursday; d++ {
		days[d] = DayHours{Open: "18:00", Close: "23:30"}
	}
	return BusinessHours{Days: days, SlotMinutes: 30, Location: time.UTC}
}

func TestSlotsForWeekday(t *testing.T) {
	hours := weekdayHours()
	// 2025-06-04 is a Wednesday.
	date, err := hours.ParseDate("2025-06-04")
	require.NoError(t, err)

	slots := hours.SlotsForDay(date)
	assert.Equal(t, []string{
		"09:00", "10:00", "11:00", "12:00",
		"13:00", "14:00", "15:00", "16:00",
	}, slots)
}

func TestSlotsForClosedDay(t *testing.T) {
	hours := weekdayHours()
	// 2025-06-07 is a Saturday.
	date, err := hours.ParseDate("2025-06-07")
	require.NoError(t, err)

	assert.Empty(t, hours.SlotsForDay(date))
	assert.False(t, hours.IsWorkingDay(date))
}

func TestSlotsStrictlyIncreasing(t *testing.T) {
	for name, hours := range map[string]BusinessHours{
		"weekday": weekdayHours(),
		"evening": eveningHours(),
	} {
		t.Run(name, func(t *testing.T) {
			start, err := hours.ParseDate("2025-06-02")
			require.NoError(t, err)
			for i := 0; i < 7; i++ {
				slots := hours.SlotsForDay(start.AddDate(0, 0, i))
				seen := map[string]bool{}
				for j, s := range slots {
					assert.False(t, seen[s], "duplicate slot %s", s)
					seen[s] = true
					if j > 0 {
						assert.Greater(t, s, slots[j-1])
					}
				}
			}
		})
	}
}

func TestEveningVariantSlots(t *testing.T) {
	hours := eveningHours()
	// 2025-06-06 is a Friday: 14:00 to 23:30 in 30-minute steps.
	date, err := hours.ParseDate("2025-06-06")
	require.NoError(t, err)

	slots := hours.SlotsForDay(date)
	require.NotEmpty(t, slots)
	assert.Equal(t, "14:00", slots[0])
	assert.Equal(t, "23:00", slots[len(slots)-1])
	assert.Len(t, slots, 19)
}

func TestValidate(t *testing.T) {
	hours := weekdayHours()
	assert.NoError(t, hours.Validate())

	bad := weekdayHours()
	bad.Days[time.Monday] = DayHours{Open: "17:00", Close: "09:00"}
	assert.Error(t, bad.Validate())

	bad = weekdayHours()
	bad.SlotMinutes = 0
	assert.Error(t, bad.Validate())

	bad = weekdayHours()
	bad.Days[time.Monday] = DayHours{Open: "9am", Close: "17:00"}
	assert.Error(t, bad.Validate())
}

func TestNormalizeTime(t *testing.T) {
	assert.Equal(t, "09:00", NormalizeTime("09:00:00"))
	assert.Equal(t, "09:00", NormalizeTime("09:00"))
	assert.Equal(t, "9:0", NormalizeTime("9:0"))
}
