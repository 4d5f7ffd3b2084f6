package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/domain"
	bookingRepo "github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/infra/storage/booking"
	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/integrations/paymentservice"
	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/service/bookings/models"
	"github.com/felipemsilva2/vrumi-connect-2026-sub003/pkg/types"
)

// --- Fakes ---

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{bookings: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		copied := *b
		repo.bookings[b.ID] = &copied
	}
	return repo
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) GetByStudentID(_ context.Context, studentID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range f.bookings {
		if b.StudentID != studentID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		copied := *b
		result = append(result, &copied)
	}
	return result, nil
}

func (f *fakeBookingRepo) GetByInstructorID(_ context.Context, instructorID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range f.bookings {
		if b.InstructorID != instructorID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		copied := *b
		result = append(result, &copied)
	}
	return result, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, from, to domain.BookingStatus) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	if b.Status != from {
		return bookingRepo.ErrStatusConflict
	}
	b.Status = to
	return nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, from domain.BookingStatus, reason string, cancelledBy string) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	if b.Status != from {
		return bookingRepo.ErrStatusConflict
	}
	now := time.Now()
	b.Status = domain.StatusCancelled
	b.CancellationReason = &reason
	b.CancelledBy = &cancelledBy
	b.CancelledAt = &now
	return nil
}

func (f *fakeBookingRepo) Complete(_ context.Context, id int64, completedAt time.Time) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	if b.Status != domain.StatusConfirmed {
		return bookingRepo.ErrStatusConflict
	}
	b.Status = domain.StatusCompleted
	b.CompletedAt = &completedAt
	return nil
}

func (f *fakeBookingRepo) SetPaymentStatus(_ context.Context, id int64, status domain.PaymentStatus) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.PaymentStatus = status
	return nil
}

type fakeInstructorRepo struct {
	instructors map[int64]*domain.Instructor
}

func (f *fakeInstructorRepo) GetByID(_ context.Context, id int64) (*domain.Instructor, error) {
	i, ok := f.instructors[id]
	if !ok {
		return nil, errors.New("instructor not found")
	}
	return i, nil
}

type fakeLedgerRepo struct {
	entries []*domain.Transaction
}

func (f *fakeLedgerRepo) Append(_ context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	f.entries = append(f.entries, tx)
	tx.ID = int64(len(f.entries))
	return tx, nil
}

type fakePaymentClient struct {
	degraded bool
	requests []paymentservice.RefundRequest
}

func (f *fakePaymentClient) RequestRefundWithGracefulDegradation(_ context.Context, req paymentservice.RefundRequest) (*paymentservice.RefundResponse, error) {
	f.requests = append(f.requests, req)
	if f.degraded {
		return nil, paymentservice.ErrServiceDegraded
	}
	return &paymentservice.RefundResponse{RefundID: "ref-1", Status: "completed"}, nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

// --- Test fixtures ---

const (
	studentID    = int64(10)
	instructorID = int64(20)
	adminID      = int64(99)
	bookingID    = int64(1)
)

var saoPaulo = mustLoadLocation("America/Sao_Paulo")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

func testInstructor() *domain.Instructor {
	return &domain.Instructor{
		ID:                    instructorID,
		Name:                  "Carlos Mendes",
		City:                  "Sao Paulo",
		State:                 "SP",
		Timezone:              "America/Sao_Paulo",
		LessonDurationMinutes: 50,
		PricePerLesson:        15000,
	}
}

// Занятие 2026-03-15 10:00 по времени инструктора
func testBooking(status domain.BookingStatus) *domain.Booking {
	signedAt := time.Date(2026, 3, 10, 12, 0, 0, 0, saoPaulo)
	return &domain.Booking{
		ID:               bookingID,
		StudentID:        studentID,
		InstructorID:     instructorID,
		ScheduledDate:    time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		ScheduledTime:    "10:00",
		DurationMinutes:  50,
		Price:            15000,
		PlatformFee:      2250,
		InstructorAmount: 12750,
		Status:           status,
		PaymentStatus:    domain.PaymentPending,
		ContractSignedAt: &signedAt,
	}
}

type testEnv struct {
	service    *Service
	bookings   *fakeBookingRepo
	ledger     *fakeLedgerRepo
	payments   *fakePaymentClient
	timeSource *fixedTimeProvider
}

func newTestEnv(t *testing.T, bookings ...*domain.Booking) *testEnv {
	t.Helper()

	bookingsRepo := newFakeBookingRepo(bookings...)
	ledger := &fakeLedgerRepo{}
	payments := &fakePaymentClient{}
	// За двое суток до занятия - окно отмены открыто
	timeSource := &fixedTimeProvider{now: time.Date(2026, 3, 13, 10, 0, 0, 0, saoPaulo)}

	service := NewService(
		bookingsRepo,
		&fakeInstructorRepo{instructors: map[int64]*domain.Instructor{instructorID: testInstructor()}},
		ledger,
		payments,
		&fakeTxManager{},
		24,
		noopLogger{},
	).WithTimeProvider(timeSource)

	return &testEnv{
		service:    service,
		bookings:   bookingsRepo,
		ledger:     ledger,
		payments:   payments,
		timeSource: timeSource,
	}
}

// --- Accept ---

func TestTransitionAccept(t *testing.T) {
	t.Run("instructor accepts pending booking with signed contract", func(t *testing.T) {
		env := newTestEnv(t, testBooking(domain.StatusPending))

		resp, err := env.service.Transition(context.Background(), &models.TransitionRequest{
			BookingID: bookingID,
			Event:     domain.EventAccept,
			ActorID:   instructorID,
			Role:      domain.RoleInstructor,
		})

		require.NoError(t, err)
		assert.Equal(t, "confirmed", resp.Status)
	})

	t.Run("accept without signed contract is rejected", func(t *testing.T) {
		booking := testBooking(domain.StatusPending)
		booking.ContractSignedAt = nil
		env := newTestEnv(t, booking)

		_, err := env.service.Transition(context.Background(), &models.TransitionRequest{
			BookingID: bookingID,
			Event:     domain.EventAccept,
			ActorID:   instructorID,
			Role:      domain.RoleInstructor,
		})

		assert.ErrorIs(t, err, ErrContractNotSigned)
	})

	t.Run("student cannot accept", func(t *testing.T) {
		env := newTestEnv(t, testBooking(domain.StatusPending))

		_, err := env.service.Transition(context.Background(), &models.TransitionRequest{
			BookingID: bookingID,
			Event:     domain.EventAccept,
			ActorID:   studentID,
			Role:      domain.RoleStudent,
		})

		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("stranger has no access at all", func(t *testing.T) {
		env := newTestEnv(t, testBooking(domain.StatusPending))

		_, err := env.service.Transition(context.Background(), &models.TransitionRequest{
			BookingID: bookingID,
			Event:     domain.EventAccept,
			ActorID:   777,
			Role:      domain.RoleInstructor,
		})

		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

// --- Cancel ---

func TestTransitionCancel(t *testing.T) {
	t.Run("student cancels outside the window", func(t *testing.T) {
		env := newTestEnv(t, testBooking(domain.StatusConfirmed))

		resp, err := env.service.Transition(context.Background(), &models.TransitionRequest{
			BookingID: bookingID,
			Event:     domain.EventCancel,
			ActorID:   studentID,
			Role:      domain.RoleStudent,
			Reason:    "schedule conflict",
		})

		require.NoError(t, err)
		assert.Equal(t, "cancelled", resp.Status)
		require.NotNil(t, resp.CancellationReason)
		assert.Equal(t, "schedule conflict", *resp.CancellationReason)
		require.NotNil(t, resp.CancelledBy)
		assert.Equal(t, "student", *resp.CancelledBy)
	})

	t.Run("reason is required", func(t *testing.T) {
		env := newTestEnv(t, testBooking(domain.StatusConfirmed))

		_, err := env.service.Transition(context.Background(), &models.TransitionRequest{
			BookingID: bookingID,
			Event:     domain.EventCancel,
			ActorID:   studentID,
			Role:      domain.RoleStudent,
			Reason:    "   ",
		})

		assert.ErrorIs(t, err, ErrReasonRequired)
	})

	t.Run("window closed for a party", func(t *testing.T) {
		env := newTestEnv(t, testBooking(domain.StatusConfirmed))
		// За 2 часа до занятия
		env.timeSource.now = time.Date(2026, 3, 15, 8, 0, 0, 0, saoPaulo)

		_, err := env.service.Transition(context.Background(), &models.TransitionRequest{
			BookingID: bookingID,
			Event:     domain.EventCancel,
			ActorID:   studentID,
			Role:      domain.RoleStudent,
			Reason:    "sick",
		})

		assert.ErrorIs(t, err, ErrCancellationWindowClosed)
	})

	t.Run("exactly at the window boundary is allowed", func(t *testing.T) {
		env := newTestEnv(t, testBooking(domain.StatusConfirmed))
		// Ровно за 24 часа
		env.timeSource.now = time.Date(2026, 3, 14, 10, 0, 0, 0, saoPaulo)

		_, err := env.service.Transition(context.Background(), &models.TransitionRequest{
			BookingID: bookingID,
			Event:     domain.EventCancel,
			ActorID:   studentID,
			Role:      domain.RoleStudent,
			Reason:    "moving",
		})

		assert.NoError(t, err)
	})

	t.Run("admin bypasses the window", func(t *testing.T) {
		env := newTestEnv(t, testBooking(domain.StatusConfirmed))
		env.timeSource.now = time.Date(2026, 3, 15, 9, 30, 0, 0, saoPaulo)

		resp, err := env.service.Transition(context.Background(), &models.TransitionRequest{
			BookingID: bookingID,
			Event:     domain.EventCancel,
			ActorID:   adminID,
			Role:      domain.RoleAdmin,
			Reason:    "instructor emergency",
		})

		require.NoError(t, err)
		assert.Equal(t, "cancelled", resp.Status)
		require.NotNil(t, resp.CancelledBy)
		assert.Equal(t, "admin", *resp.CancelledBy)
	})

	t.Run("unpaid booking does not trigger a refund", func(t *testing.T) {
		env := newTestEnv(t, testBooking(domain.StatusConfirmed))

		_, err := env.service.Transition(context.Background(), &models.TransitionRequest{
			BookingID: bookingID,
			Event:     domain.EventCancel,
			ActorID:   studentID,
			Role:      domain.RoleStudent,
			Reason:    "changed my mind",
		})

		require.NoError(t, err)
		assert.Empty(t, env.payments.requests)
		assert.Empty(t, env.ledger.entries)
	})

	t.Run("paid booking is refunded", func(t *testing.T) {
		booking := testBooking(domain.StatusConfirmed)
		booking.PaymentStatus = domain.PaymentCompleted
		env := newTestEnv(t, booking)

		resp, err := env.service.Transition(context.Background(), &models.TransitionRequest{
			BookingID: bookingID,
			Event:     domain.EventCancel,
			ActorID:   studentID,
			Role:      domain.RoleStudent,
			Reason:    "schedule conflict",
		})

		require.NoError(t, err)
		assert.Equal(t, "cancelled", resp.Status)
		assert.Equal(t, "refunded", resp.PaymentStatus)

		require.Len(t, env.payments.requests, 1)
		assert.Equal(t, types.Money(15000), env.payments.requests[0].Amount)

		require.Len(t, env.ledger.entries, 1)
		entry := env.ledger.entries[0]
		assert.Equal(t, domain.TxRefund, entry.Type)
		assert.Equal(t, domain.TxStatusCompleted, entry.Status)
		assert.Equal(t, types.Money(15000), entry.Amount)
	})

	t.Run("payment service outage does not block the cancel", func(t *testing.T) {
		booking := testBooking(domain.StatusConfirmed)
		booking.PaymentStatus = domain.PaymentCompleted
		env := newTestEnv(t, booking)
		env.payments.degraded = true

		resp, err := env.service.Transition(context.Background(), &models.TransitionRequest{
			BookingID: bookingID,
			Event:     domain.EventCancel,
			ActorID:   studentID,
			Role:      domain.RoleStudent,
			Reason:    "schedule conflict",
		})

		require.NoError(t, err)
		assert.Equal(t, "cancelled", resp.Status)
		// Возврат не подтверждён - статус оплаты не трогаем
		assert.Equal(t, "completed", resp.PaymentStatus)

		require.Len(t, env.ledger.entries, 1)
		assert.Equal(t, domain.TxStatusPendingReconciliation, env.ledger.entries[0].Status)
	})
}

// --- Complete ---

func TestTransitionComplete(t *testing.T) {
	t.Run("instructor completes after the lesson started", func(t *testing.T) {
		env := newTestEnv(t, testBooking(domain.StatusConfirmed))
		env.timeSource.now = time.Date(2026, 3, 15, 11, 0, 0, 0, saoPaulo)

		resp, err := env.service.Transition(context.Background(), &models.TransitionRequest{
			BookingID: bookingID,
			Event:     domain.EventComplete,
			ActorID:   instructorID,
			Role:      domain.RoleInstructor,
		})

		require.NoError(t, err)
		assert.Equal(t, "completed", resp.Status)
		require.NotNil(t, resp.CompletedAt)

		// Начисление в леджер: сумма инструктора, не полная цена
		require.Len(t, env.ledger.entries, 1)
		entry := env.ledger.entries[0]
		assert.Equal(t, domain.TxEarning, entry.Type)
		assert.Equal(t, domain.TxStatusCompleted, entry.Status)
		assert.Equal(t, types.Money(12750), entry.Amount)
		assert.Equal(t, instructorID, entry.InstructorID)
	})

	t.Run("complete before lesson start is rejected", func(t *testing.T) {
		env := newTestEnv(t, testBooking(domain.StatusConfirmed))
		env.timeSource.now = time.Date(2026, 3, 15, 9, 0, 0, 0, saoPaulo)

		_, err := env.service.Transition(context.Background(), &models.TransitionRequest{
			BookingID: bookingID,
			Event:     domain.EventComplete,
			ActorID:   instructorID,
			Role:      domain.RoleInstructor,
		})

		assert.ErrorIs(t, err, ErrLessonNotStarted)
		assert.Empty(t, env.ledger.entries)
	})

	t.Run("student cannot complete", func(t *testing.T) {
		env := newTestEnv(t, testBooking(domain.StatusConfirmed))
		env.timeSource.now = time.Date(2026, 3, 15, 11, 0, 0, 0, saoPaulo)

		_, err := env.service.Transition(context.Background(), &models.TransitionRequest{
			BookingID: bookingID,
			Event:     domain.EventComplete,
			ActorID:   studentID,
			Role:      domain.RoleStudent,
		})

		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

// --- Dispute and invalid transitions ---

func TestTransitionDispute(t *testing.T) {
	t.Run("student disputes confirmed booking", func(t *testing.T) {
		env := newTestEnv(t, testBooking(domain.StatusConfirmed))

		resp, err := env.service.Transition(context.Background(), &models.TransitionRequest{
			BookingID: bookingID,
			Event:     domain.EventDispute,
			ActorID:   studentID,
			Role:      domain.RoleStudent,
		})

		require.NoError(t, err)
		assert.Equal(t, "disputed", resp.Status)
	})

	t.Run("completed booking can be disputed", func(t *testing.T) {
		env := newTestEnv(t, testBooking(domain.StatusCompleted))

		resp, err := env.service.Transition(context.Background(), &models.TransitionRequest{
			BookingID: bookingID,
			Event:     domain.EventDispute,
			ActorID:   instructorID,
			Role:      domain.RoleInstructor,
		})

		require.NoError(t, err)
		assert.Equal(t, "disputed", resp.Status)
	})
}

func TestTransitionInvalid(t *testing.T) {
	tests := []struct {
		name   string
		status domain.BookingStatus
		event  domain.BookingEvent
	}{
		{name: "complete from pending", status: domain.StatusPending, event: domain.EventComplete},
		{name: "cancel from cancelled", status: domain.StatusCancelled, event: domain.EventCancel},
		{name: "accept from completed", status: domain.StatusCompleted, event: domain.EventAccept},
		{name: "complete from disputed", status: domain.StatusDisputed, event: domain.EventComplete},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, testBooking(tt.status))

			_, err := env.service.Transition(context.Background(), &models.TransitionRequest{
				BookingID: bookingID,
				Event:     tt.event,
				ActorID:   instructorID,
				Role:      domain.RoleInstructor,
				Reason:    "whatever",
			})

			assert.ErrorIs(t, err, ErrInvalidTransition)
		})
	}

	t.Run("unknown booking", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.service.Transition(context.Background(), &models.TransitionRequest{
			BookingID: 404,
			Event:     domain.EventAccept,
			ActorID:   instructorID,
			Role:      domain.RoleInstructor,
		})

		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

// conflictingBookingRepo имитирует гонку: между чтением и условным
// обновлением статус в БД успел поменять параллельный переход
type conflictingBookingRepo struct {
	*fakeBookingRepo
}

func (r *conflictingBookingRepo) UpdateStatus(_ context.Context, _ int64, _, _ domain.BookingStatus) error {
	return bookingRepo.ErrStatusConflict
}

func TestTransitionConcurrentConflict(t *testing.T) {
	repo := &conflictingBookingRepo{newFakeBookingRepo(testBooking(domain.StatusPending))}

	service := NewService(
		repo,
		&fakeInstructorRepo{instructors: map[int64]*domain.Instructor{instructorID: testInstructor()}},
		&fakeLedgerRepo{},
		&fakePaymentClient{},
		&fakeTxManager{},
		24,
		noopLogger{},
	).WithTimeProvider(&fixedTimeProvider{now: time.Date(2026, 3, 13, 10, 0, 0, 0, saoPaulo)})

	_, err := service.Transition(context.Background(), &models.TransitionRequest{
		BookingID: bookingID,
		Event:     domain.EventAccept,
		ActorID:   instructorID,
		Role:      domain.RoleInstructor,
	})

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

// --- Payment status and listings ---

func TestRecordPaymentStatus(t *testing.T) {
	env := newTestEnv(t, testBooking(domain.StatusPending))

	resp, err := env.service.RecordPaymentStatus(context.Background(), bookingID, domain.PaymentCompleted)
	require.NoError(t, err)
	assert.Equal(t, "completed", resp.PaymentStatus)

	_, err = env.service.RecordPaymentStatus(context.Background(), 404, domain.PaymentCompleted)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetByID(t *testing.T) {
	env := newTestEnv(t, testBooking(domain.StatusConfirmed))

	t.Run("party can read", func(t *testing.T) {
		resp, err := env.service.GetByID(context.Background(), bookingID, studentID, domain.RoleStudent)
		require.NoError(t, err)
		assert.Equal(t, bookingID, resp.ID)
		assert.Equal(t, "150.00", resp.Price)
		assert.Equal(t, "22.50", resp.PlatformFee)
		assert.Equal(t, "127.50", resp.InstructorAmount)
	})

	t.Run("admin can read", func(t *testing.T) {
		_, err := env.service.GetByID(context.Background(), bookingID, adminID, domain.RoleAdmin)
		assert.NoError(t, err)
	})

	t.Run("stranger cannot read", func(t *testing.T) {
		_, err := env.service.GetByID(context.Background(), bookingID, 777, domain.RoleStudent)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestGetStudentBookings(t *testing.T) {
	confirmed := testBooking(domain.StatusConfirmed)
	cancelled := testBooking(domain.StatusCancelled)
	cancelled.ID = 2
	env := newTestEnv(t, confirmed, cancelled)

	t.Run("all bookings", func(t *testing.T) {
		resp, err := env.service.GetStudentBookings(context.Background(), &models.GetPartyBookingsRequest{
			PartyID: studentID,
			ActorID: studentID,
			Role:    domain.RoleStudent,
		})
		require.NoError(t, err)
		assert.Equal(t, 2, resp.Total)
	})

	t.Run("filtered by status", func(t *testing.T) {
		status := "confirmed"
		resp, err := env.service.GetStudentBookings(context.Background(), &models.GetPartyBookingsRequest{
			PartyID: studentID,
			ActorID: studentID,
			Role:    domain.RoleStudent,
			Status:  &status,
		})
		require.NoError(t, err)
		require.Equal(t, 1, resp.Total)
		assert.Equal(t, "confirmed", resp.Bookings[0].Status)
	})

	t.Run("invalid status filter", func(t *testing.T) {
		status := "done"
		_, err := env.service.GetStudentBookings(context.Background(), &models.GetPartyBookingsRequest{
			PartyID: studentID,
			ActorID: studentID,
			Role:    domain.RoleStudent,
			Status:  &status,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("another student is rejected", func(t *testing.T) {
		_, err := env.service.GetStudentBookings(context.Background(), &models.GetPartyBookingsRequest{
			PartyID: studentID,
			ActorID: 777,
			Role:    domain.RoleStudent,
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}
