package create_booking

import (
	"time"

	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/domain"
	createBooking "github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/usecase/create_booking"
	"github.com/felipemsilva2/vrumi-connect-2026-sub003/pkg/types"
)

// CreateBookingRequest HTTP request model
// ExpectedPrice - цена, которую ученик видел при выборе слота, например "150.00"
type CreateBookingRequest struct {
	InstructorID  int64  `json:"instructorId"`
	Date          string `json:"date"`      // "2026-03-15"
	StartTime     string `json:"startTime"` // "10:00"
	ExpectedPrice string `json:"expectedPrice"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID               int64  `json:"id"`
	StudentID        int64  `json:"studentId"`
	InstructorID     int64  `json:"instructorId"`
	Date             string `json:"date"`
	StartTime        string `json:"startTime"`
	DurationMinutes  int    `json:"durationMinutes"`
	Price            string `json:"price"`
	PlatformFee      string `json:"platformFee"`
	InstructorAmount string `json:"instructorAmount"`
	Status           string `json:"status"`
	PaymentStatus    string `json:"paymentStatus"`
	CreatedAt        string `json:"createdAt"`
	UpdatedAt        string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(studentID int64) (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	price, err := types.NewMoneyFromString(r.ExpectedPrice)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		StudentID:     studentID,
		InstructorID:  r.InstructorID,
		Date:          date,
		StartTime:     startTime,
		ExpectedPrice: price,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:               resp.ID,
		StudentID:        resp.StudentID,
		InstructorID:     resp.InstructorID,
		Date:             resp.ScheduledDate.Format(domain.DateFormat),
		StartTime:        resp.ScheduledTime.String(),
		DurationMinutes:  resp.DurationMinutes,
		Price:            resp.Price.String(),
		PlatformFee:      resp.PlatformFee.String(),
		InstructorAmount: resp.InstructorAmount.String(),
		Status:           resp.Status,
		PaymentStatus:    resp.PaymentStatus,
		CreatedAt:        resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        resp.UpdatedAt.Format(time.RFC3339),
	}
}
