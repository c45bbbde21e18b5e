package availability

import (
	"fmt"
	"time"
)

// Period календарный период выборки
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// ParsePeriod разбирает период; пустая строка означает день
func ParsePeriod(s string) (Period, error) {
	switch p := Period(s); p {
	case "":
		return PeriodDay, nil
	case PeriodDay, PeriodWeek, PeriodMonth:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPeriod, s)
	}
}

// PeriodBounds возвращает полуинтервал [start, end) периода, содержащего ref.
// Границы считаются по календарю loc, неделя начинается с понедельника
func PeriodBounds(period Period, ref time.Time, loc *time.Location) (time.Time, time.Time, error) {
	local := ref.In(loc)
	dayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	switch period {
	case PeriodDay:
		return dayStart, dayStart.AddDate(0, 0, 1), nil
	case PeriodWeek:
		// Sunday = 0, сдвигаем к понедельнику
		offset := (int(dayStart.Weekday()) + 6) % 7
		start := dayStart.AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 7), nil
	case PeriodMonth:
		start := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 1, 0), nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %q", ErrUnknownPeriod, period)
	}
}
