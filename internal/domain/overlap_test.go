package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomReservations/pkg/types"
)

var testDay = time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

func reservation(id int64, start, end string) *Reservation {
	return &Reservation{
		ID:           id,
		RoomID:       1,
		Date:         testDay,
		StartTime:    types.TimeString(start),
		EndTime:      types.TimeString(end),
		RequesterID:  10,
		OnBehalfOfID: 10,
		State:        StatePending,
	}
}

func slot(start, end string) Slot {
	return Slot{
		RoomID:    1,
		Date:      testDay,
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name         string
		aStart, aEnd string
		bStart, bEnd string
		want         bool
	}{
		{"touching end to start", "09:00", "10:00", "10:00", "11:00", false},
		{"touching start to end", "10:00", "11:00", "09:00", "10:00", false},
		{"strict overlap", "09:00", "10:00", "09:30", "10:30", true},
		{"contained", "09:00", "12:00", "10:00", "11:00", true},
		{"identical", "09:00", "10:00", "09:00", "10:00", true},
		{"disjoint", "08:00", "09:00", "10:00", "11:00", false},
		{"malformed never overlaps", "9am", "10:00", "09:00", "10:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(types.TimeString(tt.aStart), types.TimeString(tt.aEnd), types.TimeString(tt.bStart), types.TimeString(tt.bEnd))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOverlapsIsSymmetric(t *testing.T) {
	times := []string{"08:00", "08:45", "09:00", "09:30", "10:00", "10:15", "11:00", "12:30"}

	for _, aStart := range times {
		for _, aEnd := range times {
			if aEnd <= aStart {
				continue
			}
			for _, bStart := range times {
				for _, bEnd := range times {
					if bEnd <= bStart {
						continue
					}
					a := reservation(1, aStart, aEnd)
					b := reservation(2, bStart, bEnd)

					ab := FindConflict(a.Slot(), []*Reservation{b}) != nil
					ba := FindConflict(b.Slot(), []*Reservation{a}) != nil
					assert.Equal(t, ab, ba, "A=%s-%s B=%s-%s", aStart, aEnd, bStart, bEnd)
				}
			}
		}
	}
}

func TestFindConflict_EndToEndScenario(t *testing.T) {
	x := reservation(1, "09:00", "10:30")
	existing := []*Reservation{x}

	got := FindConflict(slot("10:00", "11:00"), existing)
	require.NotNil(t, got)
	assert.Equal(t, int64(1), got.ID)

	assert.Nil(t, FindConflict(slot("10:30", "11:30"), existing))
}

func TestFindConflict_IgnoresNonLive(t *testing.T) {
	rejected := reservation(1, "09:00", "10:00")
	rejected.State = StateRejected
	deleted := reservation(2, "09:00", "10:00")
	deleted.Deleted = true

	assert.Nil(t, FindConflict(slot("09:00", "10:00"), []*Reservation{rejected, deleted}))
}

func TestFindConflict_AcceptedStillBlocks(t *testing.T) {
	accepted := reservation(1, "09:00", "10:00")
	accepted.State = StateAccepted

	assert.NotNil(t, FindConflict(slot("09:30", "09:45"), []*Reservation{accepted}))
}

func TestFindConflict_OtherRoomOrDay(t *testing.T) {
	otherRoom := reservation(1, "09:00", "10:00")
	otherRoom.RoomID = 2
	otherDay := reservation(2, "09:00", "10:00")
	otherDay.Date = testDay.AddDate(0, 0, 1)

	assert.Nil(t, FindConflict(slot("09:00", "10:00"), []*Reservation{otherRoom, otherDay}))
}

func TestFindConflict_ExcludesEditedReservation(t *testing.T) {
	self := reservation(7, "09:00", "10:00")
	candidate := slot("09:15", "10:15")
	candidate.ExcludeID = 7

	assert.Nil(t, FindConflict(candidate, []*Reservation{self}))
}

func TestFindConflict_TieBreak(t *testing.T) {
	later := reservation(1, "10:00", "11:00")
	earlyHighID := reservation(5, "09:00", "09:30")
	earlyLowID := reservation(3, "09:00", "09:45")

	got := FindConflict(slot("08:30", "12:00"), []*Reservation{later, earlyHighID, earlyLowID})
	require.NotNil(t, got)
	assert.Equal(t, int64(3), got.ID)
}

func TestSlotValidate(t *testing.T) {
	policy := DefaultIntervalPolicy()

	tests := []struct {
		name    string
		slot    Slot
		wantErr bool
	}{
		{"valid", slot("09:00", "10:00"), false},
		{"minimum length", slot("09:00", "09:15"), false},
		{"too short", slot("09:00", "09:10"), true},
		{"end equals start", slot("09:00", "09:00"), true},
		{"end before start", slot("10:00", "09:00"), true},
		{"malformed", slot("9:00", "10:00"), true},
		{"missing room", Slot{Date: testDay, StartTime: "09:00", EndTime: "10:00"}, true},
		{"missing end", Slot{RoomID: 1, Date: testDay, StartTime: "09:00"}, true},
		{"too long", slot("07:00", "19:30"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.slot.Validate(policy)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInterval)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateParticipants(t *testing.T) {
	assert.NoError(t, ValidateParticipants(1, nil, false))
	assert.NoError(t, ValidateParticipants(1, []int64{2, 3, 4}, true))

	assert.ErrorIs(t, ValidateParticipants(1, []int64{2, 3, 4, 5}, true), ErrInvalidParticipants)
	assert.ErrorIs(t, ValidateParticipants(1, []int64{2, 1}, true), ErrInvalidParticipants)
	assert.ErrorIs(t, ValidateParticipants(1, []int64{2, 2}, true), ErrInvalidParticipants)
	assert.ErrorIs(t, ValidateParticipants(1, nil, true), ErrInvalidParticipants)
	assert.ErrorIs(t, ValidateParticipants(0, nil, false), ErrInvalidParticipants)
}

func TestConflictErrorMatchesSentinel(t *testing.T) {
	err := error(NewConflictError(reservation(4, "09:00", "10:30"), "Sala A"))

	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "Sala A")
	assert.Contains(t, err.Error(), "2024-03-05 09:00-10:30")
}
