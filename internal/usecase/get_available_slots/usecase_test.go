package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/domain"
	instructorRepo "github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/infra/storage/instructor"
	"github.com/felipemsilva2/vrumi-connect-2026-sub003/pkg/types"
)

type fakeAvailabilityRepo struct {
	windows []*domain.AvailabilityWindow
}

func (f *fakeAvailabilityRepo) GetByInstructorAndWeekday(_ context.Context, _ int64, dayOfWeek int) ([]*domain.AvailabilityWindow, error) {
	var result []*domain.AvailabilityWindow
	for _, w := range f.windows {
		if w.DayOfWeek == dayOfWeek {
			result = append(result, w)
		}
	}
	return result, nil
}

type fakeBookingRepo struct {
	occupied []types.TimeString
}

func (f *fakeBookingRepo) GetActiveTimesByInstructorAndDate(_ context.Context, _ int64, _ time.Time) ([]types.TimeString, error) {
	return f.occupied, nil
}

type fakeInstructorRepo struct {
	instructor *domain.Instructor
}

func (f *fakeInstructorRepo) GetByID(_ context.Context, id int64) (*domain.Instructor, error) {
	if f.instructor == nil || f.instructor.ID != id {
		return nil, instructorRepo.ErrInstructorNotFound
	}
	return f.instructor, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

var saoPaulo = func() *time.Location {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		panic(err)
	}
	return loc
}()

func testUseCase(availability *fakeAvailabilityRepo, bookings *fakeBookingRepo, now time.Time) *UseCase {
	instructor := &domain.Instructor{
		ID:                    20,
		Timezone:              "America/Sao_Paulo",
		LessonDurationMinutes: 50,
		PricePerLesson:        15000,
	}
	return NewUseCase(
		availability,
		bookings,
		&fakeInstructorRepo{instructor: instructor},
		30,
		noopLogger{},
	).WithTimeProvider(&fixedTimeProvider{now: now})
}

// 2026-03-16 - понедельник (weekday 1)
var monday = time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

func TestExecute(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, saoPaulo)

	mondayWindow := &domain.AvailabilityWindow{
		InstructorID: 20,
		DayOfWeek:    1,
		StartTime:    "08:00",
		EndTime:      "11:00",
	}

	t.Run("slots from the weekly schedule", func(t *testing.T) {
		uc := testUseCase(
			&fakeAvailabilityRepo{windows: []*domain.AvailabilityWindow{mondayWindow}},
			&fakeBookingRepo{},
			now,
		)

		resp, err := uc.Execute(context.Background(), &Request{
			UserID:       10,
			InstructorID: 20,
			Date:         monday,
		})

		require.NoError(t, err)
		assert.Equal(t, []types.TimeString{"08:00", "08:50", "09:40"}, resp.Slots)
		assert.Equal(t, 50, resp.DurationMinutes)
		assert.Equal(t, "150.00", resp.Price)
	})

	t.Run("occupied times are subtracted", func(t *testing.T) {
		uc := testUseCase(
			&fakeAvailabilityRepo{windows: []*domain.AvailabilityWindow{mondayWindow}},
			&fakeBookingRepo{occupied: []types.TimeString{"08:50"}},
			now,
		)

		resp, err := uc.Execute(context.Background(), &Request{
			UserID:       10,
			InstructorID: 20,
			Date:         monday,
		})

		require.NoError(t, err)
		assert.Equal(t, []types.TimeString{"08:00", "09:40"}, resp.Slots)
	})

	t.Run("no windows on the requested weekday", func(t *testing.T) {
		uc := testUseCase(&fakeAvailabilityRepo{}, &fakeBookingRepo{}, now)

		resp, err := uc.Execute(context.Background(), &Request{
			UserID:       10,
			InstructorID: 20,
			Date:         monday,
		})

		require.NoError(t, err)
		assert.Empty(t, resp.Slots)
	})

	t.Run("today only future slots remain", func(t *testing.T) {
		// Дата приходит из хендлера как UTC-полночь (time.Parse без зоны),
		// часы инструктора при этом идут по Сан-Паулу
		todayNow := time.Date(2026, 3, 16, 9, 0, 0, 0, saoPaulo)
		uc := testUseCase(
			&fakeAvailabilityRepo{windows: []*domain.AvailabilityWindow{mondayWindow}},
			&fakeBookingRepo{},
			todayNow,
		)

		resp, err := uc.Execute(context.Background(), &Request{
			UserID:       10,
			InstructorID: 20,
			Date:         monday,
		})

		require.NoError(t, err)
		assert.Equal(t, []types.TimeString{"09:40"}, resp.Slots)
	})

	t.Run("today in a zone west of UTC is not past", func(t *testing.T) {
		// UTC-полночь сегодняшней даты раньше локальной полуночи Сан-Паулу,
		// но сегодняшний день прошедшим не считается
		date, err := time.Parse(domain.DateFormat, "2026-03-16")
		require.NoError(t, err)

		todayNow := time.Date(2026, 3, 16, 12, 0, 0, 0, saoPaulo)
		uc := testUseCase(
			&fakeAvailabilityRepo{windows: []*domain.AvailabilityWindow{mondayWindow}},
			&fakeBookingRepo{},
			todayNow,
		)

		resp, err := uc.Execute(context.Background(), &Request{
			UserID:       10,
			InstructorID: 20,
			Date:         date,
		})

		require.NoError(t, err)
		assert.Empty(t, resp.Slots)
	})

	t.Run("date in the past", func(t *testing.T) {
		uc := testUseCase(&fakeAvailabilityRepo{}, &fakeBookingRepo{}, now)

		_, err := uc.Execute(context.Background(), &Request{
			UserID:       10,
			InstructorID: 20,
			Date:         time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		})

		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("date beyond the booking horizon", func(t *testing.T) {
		uc := testUseCase(&fakeAvailabilityRepo{}, &fakeBookingRepo{}, now)

		_, err := uc.Execute(context.Background(), &Request{
			UserID:       10,
			InstructorID: 20,
			Date:         time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		})

		assert.ErrorIs(t, err, ErrDateTooFarInFuture)
	})

	t.Run("unknown instructor", func(t *testing.T) {
		uc := testUseCase(&fakeAvailabilityRepo{}, &fakeBookingRepo{}, now)

		_, err := uc.Execute(context.Background(), &Request{
			UserID:       10,
			InstructorID: 404,
			Date:         monday,
		})

		assert.ErrorIs(t, err, ErrInstructorNotFound)
	})

	t.Run("invalid request", func(t *testing.T) {
		uc := testUseCase(&fakeAvailabilityRepo{}, &fakeBookingRepo{}, now)

		_, err := uc.Execute(context.Background(), &Request{UserID: 10, InstructorID: 0, Date: monday})
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = uc.Execute(context.Background(), &Request{UserID: 10, InstructorID: 20})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
