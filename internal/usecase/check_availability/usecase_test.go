package check_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomReservations/internal/availability"
	"github.com/m04kA/SMC-RoomReservations/internal/domain"
	roomRepo "github.com/m04kA/SMC-RoomReservations/internal/infra/storage/room"
	"github.com/m04kA/SMC-RoomReservations/pkg/logger"
	"github.com/m04kA/SMC-RoomReservations/pkg/ptr"
)

type fakeReservationRepo struct {
	getWithFilterFunc func(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error)
}

func (f *fakeReservationRepo) GetWithFilter(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	return f.getWithFilterFunc(ctx, filter)
}

type fakeRoomRepo struct {
	getByIDFunc func(ctx context.Context, id int64) (*domain.Room, error)
}

func (f *fakeRoomRepo) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	return f.getByIDFunc(ctx, id)
}

type fakeMetrics struct {
	conflicts []string
	verdicts  []string
}

func (m *fakeMetrics) RecordConflict(source string)           { m.conflicts = append(m.conflicts, source) }
func (m *fakeMetrics) RecordAvailabilityCheck(verdict string) { m.verdicts = append(m.verdicts, verdict) }

var day = time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

func salaA() *fakeRoomRepo {
	return &fakeRoomRepo{getByIDFunc: func(ctx context.Context, id int64) (*domain.Room, error) {
		return &domain.Room{ID: id, Name: "Sala A", HourlyRate: ptr.Ptr(8.0)}, nil
	}}
}

func existingX() *fakeReservationRepo {
	return &fakeReservationRepo{getWithFilterFunc: func(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
		return []*domain.Reservation{{
			ID: 1, RoomID: 1, Date: day, StartTime: "09:00", EndTime: "10:30", State: domain.StatePending,
		}}, nil
	}}
}

func TestCheck_EndToEndScenario(t *testing.T) {
	m := &fakeMetrics{}
	uc := NewUseCase(existingX(), salaA(), domain.DefaultIntervalPolicy(), m, logger.NewNop())

	verdict, err := uc.Check(context.Background(), availability.Candidate{RoomID: 1, Date: day, StartTime: "10:00", EndTime: "11:00"})
	require.NoError(t, err)
	require.NotNil(t, verdict.Conflict)
	assert.Equal(t, int64(1), verdict.Conflict.ReservationID)
	assert.Equal(t, "Sala A", verdict.Conflict.RoomName)

	verdict, err = uc.Check(context.Background(), availability.Candidate{RoomID: 1, Date: day, StartTime: "10:30", EndTime: "11:30"})
	require.NoError(t, err)
	assert.True(t, verdict.Available)

	assert.Equal(t, []string{"live"}, m.conflicts)
	assert.Equal(t, []string{"conflict", "available"}, m.verdicts)
}

func TestCheck_UsesDayFilter(t *testing.T) {
	var got domain.ReservationsFilter
	repo := &fakeReservationRepo{getWithFilterFunc: func(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
		got = filter
		return nil, nil
	}}
	uc := NewUseCase(repo, salaA(), domain.DefaultIntervalPolicy(), &fakeMetrics{}, logger.NewNop())

	_, err := uc.Check(context.Background(), availability.Candidate{RoomID: 3, Date: day.Add(15 * time.Hour), StartTime: "10:00", EndTime: "11:00"})
	require.NoError(t, err)

	require.NotNil(t, got.RoomID)
	assert.Equal(t, int64(3), *got.RoomID)
	assert.True(t, got.IsSingleDay())
	assert.Equal(t, day, *got.StartDate)
	assert.Equal(t, domain.LiveStates, got.States)
}

func TestCheck_ExcludesEditedReservation(t *testing.T) {
	uc := NewUseCase(existingX(), salaA(), domain.DefaultIntervalPolicy(), &fakeMetrics{}, logger.NewNop())

	verdict, err := uc.Check(context.Background(), availability.Candidate{RoomID: 1, Date: day, StartTime: "09:30", EndTime: "10:45", ExcludeID: 1})
	require.NoError(t, err)
	assert.True(t, verdict.Available)
}

func TestCheck_Errors(t *testing.T) {
	notFound := &fakeRoomRepo{getByIDFunc: func(ctx context.Context, id int64) (*domain.Room, error) {
		return nil, roomRepo.ErrRoomNotFound
	}}
	failing := &fakeReservationRepo{getWithFilterFunc: func(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
		return nil, errors.New("db down")
	}}
	valid := availability.Candidate{RoomID: 1, Date: day, StartTime: "10:00", EndTime: "11:00"}

	tests := []struct {
		name      string
		uc        *UseCase
		candidate availability.Candidate
		wantErr   error
	}{
		{
			name:      "invalid interval",
			uc:        NewUseCase(existingX(), salaA(), domain.DefaultIntervalPolicy(), &fakeMetrics{}, logger.NewNop()),
			candidate: availability.Candidate{RoomID: 1, Date: day, StartTime: "11:00", EndTime: "10:00"},
			wantErr:   domain.ErrInvalidInterval,
		},
		{
			name:      "room not found",
			uc:        NewUseCase(existingX(), notFound, domain.DefaultIntervalPolicy(), &fakeMetrics{}, logger.NewNop()),
			candidate: valid,
			wantErr:   ErrRoomNotFound,
		},
		{
			name:      "repository failure",
			uc:        NewUseCase(failing, salaA(), domain.DefaultIntervalPolicy(), &fakeMetrics{}, logger.NewNop()),
			candidate: valid,
			wantErr:   ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.uc.Check(context.Background(), tt.candidate)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
