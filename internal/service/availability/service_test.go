package availability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/domain"
	instructorRepo "github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/infra/storage/instructor"
	"github.com/felipemsilva2/vrumi-connect-2026-sub003/pkg/types"
)

type fakeAvailabilityRepo struct {
	windows map[int64][]*domain.AvailabilityWindow
}

func (f *fakeAvailabilityRepo) GetByInstructor(_ context.Context, instructorID int64) ([]*domain.AvailabilityWindow, error) {
	return f.windows[instructorID], nil
}

func (f *fakeAvailabilityRepo) ReplaceForInstructor(_ context.Context, instructorID int64, windows []*domain.AvailabilityWindow) error {
	f.windows[instructorID] = windows
	return nil
}

type fakeInstructorRepo struct {
	known map[int64]bool
}

func (f *fakeInstructorRepo) GetByID(_ context.Context, id int64) (*domain.Instructor, error) {
	if !f.known[id] {
		return nil, instructorRepo.ErrInstructorNotFound
	}
	return &domain.Instructor{ID: id}, nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

const instructorID = int64(20)

func win(day int, start, end types.TimeString) *domain.AvailabilityWindow {
	return &domain.AvailabilityWindow{
		InstructorID: instructorID,
		DayOfWeek:    day,
		StartTime:    start,
		EndTime:      end,
	}
}

func newTestService() (*Service, *fakeAvailabilityRepo) {
	repo := &fakeAvailabilityRepo{windows: make(map[int64][]*domain.AvailabilityWindow)}
	service := NewService(
		repo,
		&fakeInstructorRepo{known: map[int64]bool{instructorID: true}},
		&fakeTxManager{},
		noopLogger{},
	)
	return service, repo
}

func TestGetWindows(t *testing.T) {
	service, repo := newTestService()
	repo.windows[instructorID] = []*domain.AvailabilityWindow{win(1, "08:00", "12:00")}

	windows, err := service.GetWindows(context.Background(), instructorID)
	require.NoError(t, err)
	assert.Len(t, windows, 1)

	_, err = service.GetWindows(context.Background(), 404)
	assert.ErrorIs(t, err, ErrInstructorNotFound)
}

func TestReplaceWindows(t *testing.T) {
	t.Run("instructor replaces own schedule", func(t *testing.T) {
		service, repo := newTestService()
		repo.windows[instructorID] = []*domain.AvailabilityWindow{win(1, "08:00", "12:00")}

		newSchedule := []*domain.AvailabilityWindow{
			win(2, "09:00", "13:00"),
			win(4, "14:00", "18:00"),
		}

		err := service.ReplaceWindows(context.Background(), instructorID, newSchedule, instructorID, domain.RoleInstructor)
		require.NoError(t, err)
		assert.Equal(t, newSchedule, repo.windows[instructorID])
	})

	t.Run("admin can replace", func(t *testing.T) {
		service, _ := newTestService()

		err := service.ReplaceWindows(context.Background(), instructorID,
			[]*domain.AvailabilityWindow{win(1, "08:00", "12:00")}, 99, domain.RoleAdmin)
		assert.NoError(t, err)
	})

	t.Run("another user is rejected", func(t *testing.T) {
		service, _ := newTestService()

		err := service.ReplaceWindows(context.Background(), instructorID, nil, 777, domain.RoleStudent)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("empty schedule is allowed", func(t *testing.T) {
		service, repo := newTestService()
		repo.windows[instructorID] = []*domain.AvailabilityWindow{win(1, "08:00", "12:00")}

		err := service.ReplaceWindows(context.Background(), instructorID, nil, instructorID, domain.RoleInstructor)
		require.NoError(t, err)
		assert.Empty(t, repo.windows[instructorID])
	})

	t.Run("unknown instructor", func(t *testing.T) {
		service, _ := newTestService()

		err := service.ReplaceWindows(context.Background(), 404, nil, 404, domain.RoleInstructor)
		assert.ErrorIs(t, err, ErrInstructorNotFound)
	})
}

func TestReplaceWindowsValidation(t *testing.T) {
	tests := []struct {
		name    string
		windows []*domain.AvailabilityWindow
		wantErr error
	}{
		{
			name:    "start after end",
			windows: []*domain.AvailabilityWindow{win(1, "12:00", "08:00")},
			wantErr: ErrInvalidWindow,
		},
		{
			name:    "zero length window",
			windows: []*domain.AvailabilityWindow{win(1, "08:00", "08:00")},
			wantErr: ErrInvalidWindow,
		},
		{
			name:    "bad day of week",
			windows: []*domain.AvailabilityWindow{win(7, "08:00", "12:00")},
			wantErr: ErrInvalidWindow,
		},
		{
			name:    "bad time format",
			windows: []*domain.AvailabilityWindow{win(1, "8:00", "12:00")},
			wantErr: ErrInvalidWindow,
		},
		{
			name: "overlapping windows same day",
			windows: []*domain.AvailabilityWindow{
				win(1, "08:00", "12:00"),
				win(1, "11:00", "14:00"),
			},
			wantErr: ErrOverlappingWindows,
		},
		{
			name: "touching windows are fine",
			windows: []*domain.AvailabilityWindow{
				win(1, "08:00", "12:00"),
				win(1, "12:00", "16:00"),
			},
		},
		{
			name: "same times on different days are fine",
			windows: []*domain.AvailabilityWindow{
				win(1, "08:00", "12:00"),
				win(2, "08:00", "12:00"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _ := newTestService()

			err := service.ReplaceWindows(context.Background(), instructorID, tt.windows, instructorID, domain.RoleInstructor)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
