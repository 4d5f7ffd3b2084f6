package create_booking

import (
	"time"

	"github.com/felipemsilva2/vrumi-connect-2026-sub003/pkg/types"
)

// Request модель запроса на создание бронирования
// ExpectedPrice - цена, которую видел ученик на момент выбора слота;
// расхождение с текущей ценой инструктора отклоняет запрос
type Request struct {
	StudentID     int64
	InstructorID  int64
	Date          time.Time
	StartTime     types.TimeString
	ExpectedPrice types.Money
}

// Response модель ответа с созданным бронированием
// Деньги и расписание здесь уже заморожены
type Response struct {
	ID               int64
	StudentID        int64
	InstructorID     int64
	ScheduledDate    time.Time
	ScheduledTime    types.TimeString
	DurationMinutes  int
	Price            types.Money
	PlatformFee      types.Money
	InstructorAmount types.Money
	Status           string
	PaymentStatus    string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
