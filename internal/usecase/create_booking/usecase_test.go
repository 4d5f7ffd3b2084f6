package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/domain"
	bookingRepo "github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/infra/storage/booking"
	instructorStorage "github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/infra/storage/instructor"
	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/integrations/identityservice"
	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/service/contracts"
	"github.com/felipemsilva2/vrumi-connect-2026-sub003/pkg/types"
)

type fakeBookingRepo struct {
	slotTaken bool
	reserved  []*domain.Booking
}

func (f *fakeBookingRepo) Reserve(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if f.slotTaken {
		return nil, bookingRepo.ErrSlotTaken
	}
	booking.ID = int64(len(f.reserved) + 1)
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt
	f.reserved = append(f.reserved, booking)
	return booking, nil
}

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

type fakeInstructorRepo struct {
	instructor *domain.Instructor
}

func (f *fakeInstructorRepo) GetByID(_ context.Context, id int64) (*domain.Instructor, error) {
	if f.instructor == nil || f.instructor.ID != id {
		return nil, instructorStorage.ErrInstructorNotFound
	}
	return f.instructor, nil
}

type fakeContractRepo struct {
	created []*domain.Contract
}

func (f *fakeContractRepo) Create(_ context.Context, contract *domain.Contract) (*domain.Contract, error) {
	contract.ID = int64(len(f.created) + 1)
	f.created = append(f.created, contract)
	return contract, nil
}

type fakeRenderer struct {
	fail     bool
	lastData contracts.ContractData
}

func (f *fakeRenderer) Render(data contracts.ContractData) (string, error) {
	f.lastData = data
	if f.fail {
		return "", errors.New("template: missing key")
	}
	return "contract text", nil
}

type fakeIdentityClient struct {
	user *identityservice.User
}

func (f *fakeIdentityClient) GetUser(_ context.Context, userID int64) (*identityservice.User, error) {
	if f.user == nil || f.user.ID != userID {
		return nil, identityservice.ErrUserNotFound
	}
	return f.user, nil
}

type fakeTxManager struct {
	rolledBack bool
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		f.rolledBack = true
		return err
	}
	return nil
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

type testEnv struct {
	useCase   *UseCase
	bookings  *fakeBookingRepo
	contracts *fakeContractRepo
	renderer  *fakeRenderer
	txManager *fakeTxManager
	now       *fixedTimeProvider
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	instructor := &domain.Instructor{
		ID:                    20,
		Name:                  "Carlos Mendes",
		City:                  "Sao Paulo",
		State:                 "SP",
		Timezone:              "America/Sao_Paulo",
		LessonDurationMinutes: 50,
		PricePerLesson:        15000,
	}

	bookings := &fakeBookingRepo{}
	contractRepo := &fakeContractRepo{}
	renderer := &fakeRenderer{}
	txManager := &fakeTxManager{}
	now := &fixedTimeProvider{now: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)}

	useCase := NewUseCase(
		bookings,
		&fakeAvailabilityRepo{windows: []*domain.AvailabilityWindow{
			// 2026-03-16 - понедельник
			{InstructorID: 20, DayOfWeek: 1, StartTime: "08:00", EndTime: "11:00"},
		}},
		&fakeInstructorRepo{instructor: instructor},
		contractRepo,
		renderer,
		&fakeIdentityClient{user: &identityservice.User{
			ID:       10,
			FullName: "Ana Souza",
			Email:    "ana@example.com",
		}},
		txManager,
		Config{
			FeeRateBasisPoints:      1500,
			AdvanceBookingDays:      30,
			CancellationWindowHours: 24,
		},
		noopLogger{},
	).WithTimeProvider(now)

	return &testEnv{
		useCase:   useCase,
		bookings:  bookings,
		contracts: contractRepo,
		renderer:  renderer,
		txManager: txManager,
		now:       now,
	}
}

func validRequest() *Request {
	return &Request{
		StudentID:     10,
		InstructorID:  20,
		Date:          time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
		StartTime:     "08:50",
		ExpectedPrice: 15000,
	}
}

func TestExecuteSuccess(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.useCase.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "pending", resp.PaymentStatus)
	assert.Equal(t, types.TimeString("08:50"), resp.ScheduledTime)
	assert.Equal(t, 50, resp.DurationMinutes)

	// Деньги заморожены и сходятся до цента
	assert.Equal(t, types.Money(15000), resp.Price)
	assert.Equal(t, types.Money(2250), resp.PlatformFee)
	assert.Equal(t, types.Money(12750), resp.InstructorAmount)
	assert.Equal(t, resp.Price, resp.PlatformFee.Add(resp.InstructorAmount))

	// Договор создан в той же транзакции из замороженных данных
	require.Len(t, env.contracts.created, 1)
	contract := env.contracts.created[0]
	assert.Equal(t, resp.ID, contract.BookingID)
	assert.Equal(t, "contract text", contract.ContractText)

	data := env.renderer.lastData
	assert.Equal(t, "Ana Souza", data.StudentName)
	assert.Equal(t, "Carlos Mendes", data.InstructorName)
	assert.Equal(t, "150.00", data.Price)
	assert.Equal(t, "2026-03-16", data.LessonDate)
	assert.Equal(t, 24, data.CancellationWindowHours)
}

func TestExecutePriceMismatch(t *testing.T) {
	env := newTestEnv(t)

	req := validRequest()
	req.ExpectedPrice = 14000

	_, err := env.useCase.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrPriceMismatch)
	assert.Empty(t, env.bookings.reserved)
}

func TestExecuteInvalidSlot(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name  string
		start types.TimeString
	}{
		{name: "off-grid time", start: "08:30"},
		{name: "before the window", start: "07:00"},
		{name: "slot would overflow the window", start: "10:30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			req.StartTime = tt.start

			_, err := env.useCase.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidTimeSlot)
		})
	}
}

func TestExecuteSlotTaken(t *testing.T) {
	env := newTestEnv(t)
	env.bookings.slotTaken = true

	_, err := env.useCase.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Empty(t, env.contracts.created)
}

// Ошибка рендеринга договора откатывает транзакцию вместе с резервированием
func TestExecuteContractRenderFailure(t *testing.T) {
	env := newTestEnv(t)
	env.renderer.fail = true

	_, err := env.useCase.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrContractGeneration)
	assert.True(t, env.txManager.rolledBack)
	assert.Empty(t, env.contracts.created)
}

func TestExecuteDateValidation(t *testing.T) {
	env := newTestEnv(t)

	t.Run("date in the past", func(t *testing.T) {
		req := validRequest()
		req.Date = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

		_, err := env.useCase.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("date beyond the horizon", func(t *testing.T) {
		req := validRequest()
		req.Date = time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

		_, err := env.useCase.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrDateTooFarInFuture)
	})

	t.Run("slot already started today", func(t *testing.T) {
		// Сегодня понедельник 2026-03-16, 10:00 по Сан-Паулу
		loc, err := time.LoadLocation("America/Sao_Paulo")
		require.NoError(t, err)
		env.now.now = time.Date(2026, 3, 16, 10, 0, 0, 0, loc)

		req := validRequest()
		req.Date = time.Date(2026, 3, 16, 0, 0, 0, 0, loc)
		req.StartTime = "08:50"

		_, err = env.useCase.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrTooLateToBook)
	})
}

func TestExecuteUnknownParties(t *testing.T) {
	env := newTestEnv(t)

	t.Run("unknown instructor", func(t *testing.T) {
		req := validRequest()
		req.InstructorID = 404

		_, err := env.useCase.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInstructorNotFound)
	})

	t.Run("unknown student", func(t *testing.T) {
		req := validRequest()
		req.StudentID = 404

		_, err := env.useCase.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrStudentNotFound)
	})
}

func TestExecuteInvalidInput(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "zero student", mutate: func(r *Request) { r.StudentID = 0 }},
		{name: "zero instructor", mutate: func(r *Request) { r.InstructorID = 0 }},
		{name: "zero date", mutate: func(r *Request) { r.Date = time.Time{} }},
		{name: "bad time format", mutate: func(r *Request) { r.StartTime = "8am" }},
		{name: "zero price", mutate: func(r *Request) { r.ExpectedPrice = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := env.useCase.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
