package domain

import (
	"math"
	"time"
)

// Room represents a bookable meeting room
type Room struct {
	ID         int64
	Name       string
	HourlyRate *float64 // nil = non-billable room
	Capacity   int
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsBillable returns true if the room has an hourly rate
func (r *Room) IsBillable() bool {
	return r.HourlyRate != nil
}

// RateCents returns the hourly rate in cents, 0 for non-billable rooms
func (r *Room) RateCents() int64 {
	if r.HourlyRate == nil {
		return 0
	}
	return int64(math.Round(*r.HourlyRate * 100))
}
