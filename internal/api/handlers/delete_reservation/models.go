package delete_reservation

// DeleteReservationRequest HTTP request model
type DeleteReservationRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}
