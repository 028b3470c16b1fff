package domain

// Reservation policy defaults
const (
	DefaultMinDurationMinutes = 15
	DefaultMaxDurationMinutes = 720 // 12 hours
	MaxSharedParticipants     = 3
	MaxReasonLength           = 500
	MaxNotesLength            = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Report bucket labels for people without team/area assignment
const (
	NoTeamLabel = "(no team)"
	NoAreaLabel = "(no area)"
)

// LiveStates states that occupy a room slot
var LiveStates = []ReservationState{
	StatePending,
	StateAccepted,
}

// AllStates every reservation state
var AllStates = []ReservationState{
	StatePending,
	StateAccepted,
	StateRejected,
}
