package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/domain"
	"github.com/felipemsilva2/vrumi-connect-2026-sub003/pkg/types"
)

func window(start, end types.TimeString) *domain.AvailabilityWindow {
	return &domain.AvailabilityWindow{
		InstructorID: 1,
		DayOfWeek:    1,
		StartTime:    start,
		EndTime:      end,
	}
}

func TestGenerateWindowSlots(t *testing.T) {
	tests := []struct {
		name     string
		window   *domain.AvailabilityWindow
		duration int
		expected []types.TimeString
	}{
		{
			name:     "even division",
			window:   window("08:00", "12:00"),
			duration: 60,
			expected: []types.TimeString{"08:00", "09:00", "10:00", "11:00"},
		},
		{
			name:     "50 minute lessons",
			window:   window("08:00", "10:00"),
			duration: 50,
			// Третий слот 09:40-10:30 вышел бы за окно
			expected: []types.TimeString{"08:00", "08:50"},
		},
		{
			name:     "slot exactly fills the window",
			window:   window("08:00", "08:50"),
			duration: 50,
			expected: []types.TimeString{"08:00"},
		},
		{
			name:     "window shorter than a lesson",
			window:   window("08:00", "08:30"),
			duration: 50,
			expected: []types.TimeString{},
		},
		{
			name:     "evening window up to midnight",
			window:   window("22:00", "24:00"),
			duration: 60,
			expected: []types.TimeString{"22:00", "23:00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots, err := generateWindowSlots(tt.window, tt.duration)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, slots)
		})
	}
}

func TestGenerateDaySlots(t *testing.T) {
	t.Run("multiple windows are merged and sorted", func(t *testing.T) {
		windows := []*domain.AvailabilityWindow{
			window("14:00", "16:00"),
			window("08:00", "10:00"),
		}

		slots, err := generateDaySlots(windows, 60)
		require.NoError(t, err)
		assert.Equal(t, []types.TimeString{"08:00", "09:00", "14:00", "15:00"}, slots)
	})

	t.Run("duplicate start times are collapsed", func(t *testing.T) {
		windows := []*domain.AvailabilityWindow{
			window("08:00", "10:00"),
			window("08:00", "09:00"),
		}

		slots, err := generateDaySlots(windows, 60)
		require.NoError(t, err)
		assert.Equal(t, []types.TimeString{"08:00", "09:00"}, slots)
	})

	t.Run("no windows", func(t *testing.T) {
		slots, err := generateDaySlots(nil, 60)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})
}

func TestSubtractOccupied(t *testing.T) {
	slots := []types.TimeString{"08:00", "09:00", "10:00", "11:00"}

	assert.Equal(t,
		[]types.TimeString{"08:00", "10:00"},
		subtractOccupied(slots, []types.TimeString{"09:00", "11:00"}))

	assert.Equal(t, slots, subtractOccupied(slots, nil))

	assert.Empty(t, subtractOccupied(slots, slots))
}

func TestFilterPastSlots(t *testing.T) {
	slots := []types.TimeString{"08:00", "09:00", "10:00"}
	now := time.Date(2026, 3, 16, 8, 30, 0, 0, time.UTC)

	// 08:00 уже начался, 09:00 и 10:00 ещё впереди
	assert.Equal(t, []types.TimeString{"09:00", "10:00"}, filterPastSlots(slots, now))

	// Ровно в начало слота - слот ещё доступен
	now = time.Date(2026, 3, 16, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, []types.TimeString{"09:00", "10:00"}, filterPastSlots(slots, now))
}

func TestIsDateInPast(t *testing.T) {
	now := time.Date(2026, 3, 16, 23, 0, 0, 0, time.UTC)

	assert.True(t, isDateInPast(time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), now))
	// Сегодняшняя дата не считается прошлым, даже поздно вечером
	assert.False(t, isDateInPast(time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), now))
	assert.False(t, isDateInPast(time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC), now))

	// Дата запроса - всегда UTC-полночь, а часы инструктора могут идти
	// в зоне западнее UTC; сегодня от этого прошлым не становится
	nowWest := time.Date(2026, 3, 16, 12, 0, 0, 0, saoPaulo)
	assert.False(t, isDateInPast(time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), nowWest))
	assert.True(t, isDateInPast(time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), nowWest))
}
