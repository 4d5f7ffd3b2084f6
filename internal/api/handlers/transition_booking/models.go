package transition_booking

// TransitionBookingRequest HTTP request model
// event - одно из: accept, cancel, complete, dispute
// reason обязателен для cancel
type TransitionBookingRequest struct {
	Event  string `json:"event"`
	Reason string `json:"reason,omitempty"`
}
