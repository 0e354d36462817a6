package appointment

import (
	"time"
)

// Рабочий график центра: вторник и четверг, 10:00–16:00,
// приём по 30 минут, обед 13:00–14:00.
const (
	workDayStartHour = 10
	workDayEndHour   = 16
	lunchHour        = 13
	slotStepMinutes  = 30

	dateLayout = "2006-01-02"
	timeLayout = "15:04"

	// Slots starting at or after this time are shown in the
	// "evening" bucket. Display-only split.
	eveningBoundary = "14:00"
)

// DaySlots returns the ordered bookable time labels for one working day:
// 10:00..12:30 and 14:00..15:30, the 13:00 hour is lunch.
func DaySlots() []string {
	slots := make([]string, 0, 10)
	for h := workDayStartHour; h < workDayEndHour; h++ {
		if h == lunchHour {
			continue
		}
		for m := 0; m < 60; m += slotStepMinutes {
			slots = append(slots, time.Date(0, 1, 1, h, m, 0, 0, time.UTC).Format(timeLayout))
		}
	}
	return slots
}

// IsBookableWeekday reports whether the center takes appointments on that
// day of week (Tuesday and Thursday only).
func IsBookableWeekday(day time.Time) bool {
	wd := day.Weekday()
	return wd == time.Tuesday || wd == time.Thursday
}

// IsPastDay compares calendar dates as local Y-M-D triples. No timezone
// conversion: a date picked in the browser must not shift a day when the
// server runs in UTC.
func IsPastDay(day, today time.Time) bool {
	dy, dm, dd := day.Date()
	ty, tm, td := today.Date()
	if dy != ty {
		return dy < ty
	}
	if dm != tm {
		return dm < tm
	}
	return dd < td
}

// ParseDate parses a "YYYY-MM-DD" calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// NormalizeTime truncates a stored time to HH:MM. The column is
// time-typed in Postgres and may come back with a seconds component.
func NormalizeTime(s string) string {
	if len(s) > 5 {
		return s[:5]
	}
	return s
}

// SplitDayEvening partitions slot labels into the display buckets used by
// the booking form: day (<14:00) and evening (>=14:00).
func SplitDayEvening(slots []string) (day, evening []string) {
	day = make([]string, 0, len(slots))
	evening = make([]string, 0, len(slots))
	for _, s := range slots {
		if s < eveningBoundary {
			day = append(day, s)
		} else {
			evening = append(evening, s)
		}
	}
	return day, evening
}
