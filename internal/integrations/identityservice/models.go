package identityservice

// User профиль пользователя из IdentityService
// Используется для заморозки отображаемых фактов в договоре
type User struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	City     string `json:"city"`
	State    string `json:"state"`
}

// ErrorResponse модель ошибки от IdentityService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
