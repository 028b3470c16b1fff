package reject_reservation

// RejectReservationRequest HTTP request model
type RejectReservationRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}
