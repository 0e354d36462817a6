package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var fullDay = []string{
	"10:00", "10:30", "11:00", "11:30", "12:00", "12:30",
	"14:00", "14:30", "15:00", "15:30",
}

func TestDaySlots(t *testing.T) {
	slots := DaySlots()

	assert.Equal(t, fullDay, slots)
	// обеденный час не предлагается
	assert.NotContains(t, slots, "13:00")
	assert.NotContains(t, slots, "13:30")
	assert.NotContains(t, slots, "16:00")
}

func TestIsBookableWeekday(t *testing.T) {
	// 2025-11-04 — вторник
	tue := time.Date(2025, 11, 4, 0, 0, 0, 0, time.UTC)
	assert.True(t, IsBookableWeekday(tue))
	assert.True(t, IsBookableWeekday(tue.AddDate(0, 0, 2)))  // четверг
	assert.False(t, IsBookableWeekday(tue.AddDate(0, 0, 1))) // среда
	assert.False(t, IsBookableWeekday(tue.AddDate(0, 0, 5))) // воскресенье
}

func TestIsPastDay(t *testing.T) {
	today := time.Date(2025, 11, 4, 15, 30, 0, 0, time.UTC)

	assert.True(t, IsPastDay(time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC), today))
	assert.True(t, IsPastDay(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), today))
	// сегодняшний день ещё доступен
	assert.False(t, IsPastDay(time.Date(2025, 11, 4, 0, 0, 0, 0, time.UTC), today))
	assert.False(t, IsPastDay(time.Date(2025, 11, 6, 0, 0, 0, 0, time.UTC), today))
}

func TestIsPastDayIgnoresClockTime(t *testing.T) {
	// Сравнение только по календарной дате: время суток и зона не влияют.
	today := time.Date(2025, 11, 4, 23, 59, 0, 0, time.FixedZone("ALMT", 5*3600))
	day := time.Date(2025, 11, 4, 0, 0, 0, 0, time.UTC)

	assert.False(t, IsPastDay(day, today))
}

func TestNormalizeTime(t *testing.T) {
	assert.Equal(t, "10:00", NormalizeTime("10:00:00"))
	assert.Equal(t, "10:00", NormalizeTime("10:00"))
	assert.Equal(t, "9:30", NormalizeTime("9:30"))
}

func TestSplitDayEvening(t *testing.T) {
	day, evening := SplitDayEvening(DaySlots())

	assert.Equal(t, []string{"10:00", "10:30", "11:00", "11:30", "12:00", "12:30"}, day)
	assert.Equal(t, []string{"14:00", "14:30", "15:00", "15:30"}, evening)
}
