package domain

import (
	"fmt"
	"time"
)

// ClockFormat формат времени суток в конфигурации (HH:MM)
const ClockFormat = "15:04"

// WorkingHours часы работы переговорных как смещения от полуночи
type WorkingHours struct {
	Open  time.Duration
	Close time.Duration
}

// ParseWorkingHours разбирает пару "HH:MM"
func ParseWorkingHours(openAt, closeAt string) (WorkingHours, error) {
	o, err := parseClock(openAt)
	if err != nil {
		return WorkingHours{}, fmt.Errorf("open time: %w", err)
	}
	c, err := parseClock(closeAt)
	if err != nil {
		return WorkingHours{}, fmt.Errorf("close time: %w", err)
	}
	if c <= o {
		return WorkingHours{}, fmt.Errorf("close time %s must be after open time %s", closeAt, openAt)
	}
	return WorkingHours{Open: o, Close: c}, nil
}

func parseClock(s string) (time.Duration, error) {
	t, err := time.Parse(ClockFormat, s)
	if err != nil {
		return 0, err
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

// On возвращает начало и конец рабочего дня для календарной даты day
func (h WorkingHours) On(day time.Time) (time.Time, time.Time) {
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return midnight.Add(h.Open), midnight.Add(h.Close)
}

// RoomSlot интервал сетки переговорной [Start, End)
type RoomSlot struct {
	Start     time.Time
	End       time.Time
	BookingID *int64 // занявшее слот бронирование, nil - слот свободен
}

// IsFree returns true if no active booking overlaps the slot
func (s *RoomSlot) IsFree() bool {
	return s.BookingID == nil
}

// Duration returns the slot length
func (s *RoomSlot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}
