package domain

import (
	"time"

	"github.com/felipemsilva2/vrumi-connect-2026-sub003/pkg/types"
)

// Instructor инструктор
// Тариф и длительность занятия читаются в момент резервирования
// и замораживаются в бронировании
type Instructor struct {
	ID                    int64
	Name                  string
	City                  string
	State                 string
	Timezone              string // IANA-таймзона, например "America/Sao_Paulo"
	LessonDurationMinutes int
	PricePerLesson        types.Money
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// Location возвращает таймзону инструктора; при некорректной таймзоне - UTC
func (i *Instructor) Location() *time.Location {
	if i.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(i.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
