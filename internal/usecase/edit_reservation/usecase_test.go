package edit_reservation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomReservations/internal/domain"
	reservationRepo "github.com/m04kA/SMC-RoomReservations/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-RoomReservations/internal/integrations/events"
	"github.com/m04kA/SMC-RoomReservations/pkg/logger"
	"github.com/m04kA/SMC-RoomReservations/pkg/ptr"
	"github.com/m04kA/SMC-RoomReservations/pkg/types"
)

type memoryRepo struct {
	mu           sync.Mutex
	reservations map[int64]*domain.Reservation
	locks        []roomDay
	getByIDFunc  func(id int64) (*domain.Reservation, error)
	updates      int
}

func (r *memoryRepo) LockRoomDay(ctx context.Context, roomID int64, date time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locks = append(r.locks, roomDay{roomID: roomID, date: date})
	return nil
}

func (r *memoryRepo) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	if r.getByIDFunc != nil {
		return r.getByIDFunc(id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	copied := *res
	return &copied, nil
}

func (r *memoryRepo) GetWithFilter(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Reservation
	for _, res := range r.reservations {
		if filter.RoomID != nil && res.RoomID != *filter.RoomID {
			continue
		}
		copied := *res
		out = append(out, &copied)
	}
	return out, nil
}

func (r *memoryRepo) Update(ctx context.Context, res *domain.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.reservations[res.ID]
	if !ok || !stored.IsPending() || stored.Deleted {
		return reservationRepo.ErrNotPending
	}
	copied := *res
	r.reservations[res.ID] = &copied
	r.updates++
	return nil
}

type serialTxManager struct {
	mu sync.Mutex
}

func (m *serialTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type fakeRoomRepo struct {
	rooms map[int64]*domain.Room
}

func (f *fakeRoomRepo) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	return f.rooms[id], nil
}

type fakePersonRepo struct {
	persons map[int64]*domain.Person
	calls   int
}

func (f *fakePersonRepo) GetByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Person, error) {
	f.calls++
	out := make(map[int64]*domain.Person)
	for _, id := range ids {
		if p, ok := f.persons[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

type fakePublisher struct {
	events []events.Event
}

func (p *fakePublisher) Publish(ctx context.Context, e events.Event) error {
	p.events = append(p.events, e)
	return nil
}

type fakeMetrics struct {
	conflicts   []string
	transitions []string
}

func (m *fakeMetrics) RecordConflict(source string)       { m.conflicts = append(m.conflicts, source) }
func (m *fakeMetrics) RecordTransition(transition string) { m.transitions = append(m.transitions, transition) }

var day = time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

type fixture struct {
	repo      *memoryRepo
	persons   *fakePersonRepo
	publisher *fakePublisher
	metrics   *fakeMetrics
	uc        *UseCase
}

func reservation(id, roomID int64, start, end string, state domain.ReservationState) *domain.Reservation {
	return &domain.Reservation{
		ID:               id,
		RoomID:           roomID,
		Date:             day,
		StartTime:        types.TimeString(start),
		EndTime:          types.TimeString(end),
		RequesterID:      10,
		OnBehalfOfID:     10,
		State:            state,
		ParticipantCount: 2,
		MeetingType:      domain.MeetingInternal,
		Participants:     []domain.ParticipantSnapshot{
			{PersonID: 10, Role: domain.RolePrimary, DisplayName: "Ana"},
		},
	}
}

func newFixture(existing ...*domain.Reservation) *fixture {
	legal := "Legal"
	f := &fixture{
		repo: &memoryRepo{reservations: make(map[int64]*domain.Reservation)},
		persons:   &fakePersonRepo{persons: map[int64]*domain.Person{
			10: {ID: 10, DisplayName: "Ana", Team: &legal},
			20: {ID: 20, DisplayName: "Bruno"},
		}},
		publisher: &fakePublisher{},
		metrics:   &fakeMetrics{},
	}
	for _, r := range existing {
		f.repo.reservations[r.ID] = r
	}
	rooms := &fakeRoomRepo{rooms: map[int64]*domain.Room{
		1: {ID: 1, Name: "Sala A", HourlyRate: ptr.Ptr(8.0), Capacity: 6, IsActive: true},
		2: {ID: 2, Name: "Sala B", Capacity: 4, IsActive: true},
		3: {ID: 3, Name: "Archive", IsActive: false},
	}}
	f.uc = NewUseCase(f.repo, rooms, f.persons, &serialTxManager{}, f.publisher, f.metrics, domain.DefaultIntervalPolicy(), logger.NewNop())
	return f
}

func TestExecute_ShiftDoesNotConflictWithItself(t *testing.T) {
	f := newFixture(reservation(1, 1, "09:00", "10:00", domain.StatePending))

	resp, err := f.uc.Execute(context.Background(), &Request{
		Actor:         domain.NewActor(10),
		ReservationID: 1,
		StartTime:     ptr.Ptr(types.TimeString("09:30")),
		EndTime:       ptr.Ptr(types.TimeString("10:30")),
	})

	require.NoError(t, err)
	assert.Equal(t, types.TimeString("09:30"), resp.Reservation.StartTime)
	assert.Equal(t, types.TimeString("10:30"), f.repo.reservations[1].EndTime)
	assert.Equal(t, "Sala A", resp.Room.Name)
	assert.Equal(t, []string{"edit"}, f.metrics.transitions)
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, events.EventEdited, f.publisher.events[0].Type)
	assert.Zero(t, f.persons.calls, "participants unchanged, snapshot kept")
}

func TestExecute_ConflictWithAnotherReservation(t *testing.T) {
	f := newFixture(
		reservation(1, 1, "09:00", "10:00", domain.StatePending),
		reservation(2, 1, "10:00", "11:00", domain.StateAccepted),
	)

	_, err := f.uc.Execute(context.Background(), &Request{
		Actor:         domain.NewActor(10),
		ReservationID: 1,
		EndTime:       ptr.Ptr(types.TimeString("10:15")),
	})

	var conflict *domain.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, int64(2), conflict.Existing.ID)
	assert.Equal(t, "Sala A", conflict.RoomName)
	assert.Equal(t, []string{"commit"}, f.metrics.conflicts)
	assert.Zero(t, f.repo.updates)
}

func TestExecute_TerminalReservationIsNeverEditable(t *testing.T) {
	for _, state := range []domain.ReservationState{domain.StateAccepted, domain.StateRejected} {
		for _, actor := range []domain.Actor{
			domain.NewActor(10),
			domain.NewActor(99, domain.ActionAdmin),
			domain.NewActor(99, domain.ActionApprove, domain.ActionAdmin),
		} {
			f := newFixture(reservation(1, 1, "09:00", "10:00", state))

			_, err := f.uc.Execute(context.Background(), &Request{
				Actor:         actor,
				ReservationID: 1,
				Notes:         ptr.Ptr("moved"),
			})
			assert.ErrorIs(t, err, domain.ErrInvalidTransition, "state=%s actor=%d", state, actor.PersonID)
		}
	}
}

func TestExecute_Ownership(t *testing.T) {
	f := newFixture(reservation(1, 1, "09:00", "10:00", domain.StatePending))

	_, err := f.uc.Execute(context.Background(), &Request{Actor: domain.NewActor(99), ReservationID: 1, Notes: ptr.Ptr("x")})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.uc.Execute(context.Background(), &Request{Actor: domain.NewActor(99, domain.ActionAdmin), ReservationID: 1, Notes: ptr.Ptr("x")})
	assert.NoError(t, err)
}

func TestExecute_MoveToAnotherRoomLocksBothKeysInOrder(t *testing.T) {
	f := newFixture(reservation(1, 2, "09:00", "10:00", domain.StatePending))

	_, err := f.uc.Execute(context.Background(), &Request{
		Actor:         domain.NewActor(10),
		ReservationID: 1,
		RoomID:        ptr.Ptr(int64(1)),
	})

	require.NoError(t, err)
	require.Len(t, f.repo.locks, 2)
	assert.Equal(t, int64(1), f.repo.locks[0].roomID)
	assert.Equal(t, int64(2), f.repo.locks[1].roomID)
	assert.Equal(t, int64(1), f.repo.reservations[1].RoomID)
}

func TestExecute_MoveToInactiveRoom(t *testing.T) {
	f := newFixture(reservation(1, 1, "09:00", "10:00", domain.StatePending))

	_, err := f.uc.Execute(context.Background(), &Request{Actor: domain.NewActor(10), ReservationID: 1, RoomID: ptr.Ptr(int64(3))})
	assert.ErrorIs(t, err, ErrRoomInactive)
}

func TestExecute_CapacityOfNewRoom(t *testing.T) {
	f := newFixture(reservation(1, 1, "09:00", "10:00", domain.StatePending))

	_, err := f.uc.Execute(context.Background(), &Request{
		Actor:            domain.NewActor(10),
		ReservationID:    1,
		RoomID:           ptr.Ptr(int64(2)),
		ParticipantCount: ptr.Ptr(5),
	})
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestExecute_ShareCostRebuildsSnapshot(t *testing.T) {
	f := newFixture(reservation(1, 1, "09:00", "10:00", domain.StatePending))

	resp, err := f.uc.Execute(context.Background(), &Request{
		Actor:         domain.NewActor(10),
		ReservationID: 1,
		IsSharedCost:  ptr.Ptr(true),
		SharedWithIDs: &[]int64{20},
	})

	require.NoError(t, err)
	require.Len(t, resp.Reservation.Participants, 2)
	assert.Equal(t, "Legal", resp.Reservation.Participants[0].TeamLabel())
	assert.Equal(t, int64(20), resp.Reservation.Participants[1].PersonID)
	assert.Equal(t, 1, f.persons.calls)
}

func TestExecute_InvalidPatch(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{"end before start", Request{EndTime: ptr.Ptr(types.TimeString("08:00"))}, domain.ErrInvalidInterval},
		{"shared without people", Request{IsSharedCost: ptr.Ptr(true)}, domain.ErrInvalidParticipants},
		{"primary among shared", Request{IsSharedCost: ptr.Ptr(true), SharedWithIDs: &[]int64{10}}, domain.ErrInvalidParticipants},
		{"unknown shared person", Request{IsSharedCost: ptr.Ptr(true), SharedWithIDs: &[]int64{77}}, ErrPersonNotFound},
		{"zero participants", Request{ParticipantCount: ptr.Ptr(0)}, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(reservation(1, 1, "09:00", "10:00", domain.StatePending))
			req := tt.req
			req.Actor = domain.NewActor(10)
			req.ReservationID = 1

			_, err := f.uc.Execute(context.Background(), &req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, f.repo.updates)
		})
	}
}

func TestExecute_NotFound(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{Actor: domain.NewActor(10), ReservationID: 5})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestExecute_AcceptedConcurrently(t *testing.T) {
	f := newFixture()
	calls := 0
	f.repo.getByIDFunc = func(id int64) (*domain.Reservation, error) {
		calls++
		if calls == 1 {
			return reservation(1, 1, "09:00", "10:00", domain.StatePending), nil
		}
		return reservation(1, 1, "09:00", "10:00", domain.StateAccepted), nil
	}

	_, err := f.uc.Execute(context.Background(), &Request{Actor: domain.NewActor(10), ReservationID: 1, Notes: ptr.Ptr("late")})

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, 2, calls)
	assert.Empty(t, f.publisher.events)
}

func TestLockOrder(t *testing.T) {
	later := day.AddDate(0, 0, 1)

	keys := lockOrder(roomDay{roomID: 2, date: day}, roomDay{roomID: 2, date: day})
	assert.Len(t, keys, 1)

	keys = lockOrder(roomDay{roomID: 2, date: later}, roomDay{roomID: 2, date: day})
	require.Len(t, keys, 2)
	assert.True(t, keys[0].date.Equal(day))

	keys = lockOrder(roomDay{roomID: 3, date: day}, roomDay{roomID: 1, date: later})
	assert.Equal(t, int64(1), keys[0].roomID)
}
