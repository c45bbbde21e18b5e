package domain

import "time"

// Значения сетки слотов по умолчанию
const (
	DefaultSlotMinutes = 30
	DefaultHorizonDays = 90
)

// SlotsConfig параметры сетки свободных слотов переговорных
type SlotsConfig struct {
	Hours       WorkingHours
	SlotMinutes int
	HorizonDays int // 0 = без ограничения
}

// SlotDuration returns the grid step
func (c SlotsConfig) SlotDuration() time.Duration {
	return time.Duration(c.SlotMinutes) * time.Minute
}

// HasHorizon returns true if there's a limit on how far ahead slots are shown
func (c SlotsConfig) HasHorizon() bool {
	return c.HorizonDays > 0
}
