package domain

import "time"

// Contract договор, привязанный к бронированию
// Текст рендерится один раз в момент резервирования и больше не меняется;
// изменения тарифа или профиля инструктора не затрагивают выданный договор
type Contract struct {
	ID           int64
	BookingID    int64
	StudentID    int64
	InstructorID int64
	ContractText string

	StudentSignature *string
	StudentSignedAt  *time.Time

	CreatedAt time.Time
}

// IsSigned возвращает true, если студент подписал договор
func (c *Contract) IsSigned() bool {
	return c.StudentSignedAt != nil
}
