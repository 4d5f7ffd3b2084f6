package sign_contract

import (
	"time"

	"github.com/felipemsilva2/vrumi-connect-2026-sub003/internal/domain"
)

// SignContractRequest HTTP request model
type SignContractRequest struct {
	Signature string `json:"signature"`
}

// ContractResponse HTTP response model
type ContractResponse struct {
	BookingID        int64   `json:"bookingId"`
	StudentID        int64   `json:"studentId"`
	InstructorID     int64   `json:"instructorId"`
	ContractText     string  `json:"contractText"`
	StudentSignature *string `json:"studentSignature,omitempty"`
	StudentSignedAt  *string `json:"studentSignedAt,omitempty"`
	CreatedAt        string  `json:"createdAt"`
}

// FromDomainContract конвертирует domain.Contract в HTTP response
func FromDomainContract(c *domain.Contract) *ContractResponse {
	resp := &ContractResponse{
		BookingID:        c.BookingID,
		StudentID:        c.StudentID,
		InstructorID:     c.InstructorID,
		ContractText:     c.ContractText,
		StudentSignature: c.StudentSignature,
		CreatedAt:        c.CreatedAt.Format(time.RFC3339),
	}
	if c.StudentSignedAt != nil {
		signedAt := c.StudentSignedAt.Format(time.RFC3339)
		resp.StudentSignedAt = &signedAt
	}
	return resp
}
