package create_reservation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomReservations/internal/domain"
	roomRepo "github.com/m04kA/SMC-RoomReservations/internal/infra/storage/room"
	"github.com/m04kA/SMC-RoomReservations/internal/integrations/events"
	"github.com/m04kA/SMC-RoomReservations/pkg/logger"
	"github.com/m04kA/SMC-RoomReservations/pkg/ptr"
	"github.com/m04kA/SMC-RoomReservations/pkg/types"
)

// memoryRepo хранилище броней в памяти
type memoryRepo struct {
	mu           sync.Mutex
	reservations []*domain.Reservation
	nextID       int64
	locks        []int64
	createErr    error
}

func (r *memoryRepo) LockRoomDay(ctx context.Context, roomID int64, date time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locks = append(r.locks, roomID)
	return nil
}

func (r *memoryRepo) GetWithFilter(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Reservation, 0, len(r.reservations))
	for _, res := range r.reservations {
		if filter.RoomID != nil && res.RoomID != *filter.RoomID {
			continue
		}
		copied := *res
		out = append(out, &copied)
	}
	return out, nil
}

func (r *memoryRepo) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	res.ID = r.nextID
	r.reservations = append(r.reservations, res)
	return res, nil
}

// serialTxManager выполняет транзакции строго по одной
type serialTxManager struct {
	mu sync.Mutex
}

func (m *serialTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type fakeRoomRepo struct {
	getByIDFunc func(ctx context.Context, id int64) (*domain.Room, error)
}

func (f *fakeRoomRepo) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	return f.getByIDFunc(ctx, id)
}

type fakePersonRepo struct {
	persons map[int64]*domain.Person
}

func (f *fakePersonRepo) GetByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Person, error) {
	out := make(map[int64]*domain.Person)
	for _, id := range ids {
		if p, ok := f.persons[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *fakePublisher) Publish(ctx context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

type fakeMetrics struct {
	mu          sync.Mutex
	conflicts   []string
	transitions []string
}

func (m *fakeMetrics) RecordConflict(source string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conflicts = append(m.conflicts, source)
}

func (m *fakeMetrics) RecordTransition(transition string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transitions = append(m.transitions, transition)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fixture struct {
	repo      *memoryRepo
	rooms     *fakeRoomRepo
	publisher *fakePublisher
	metrics   *fakeMetrics
	uc        *UseCase
}

func newFixture() *fixture {
	legal := "Legal"
	f := &fixture{
		repo: &memoryRepo{},
		rooms:     &fakeRoomRepo{getByIDFunc: func(ctx context.Context, id int64) (*domain.Room, error) {
			return &domain.Room{ID: id, Name: "Sala A", HourlyRate: ptr.Ptr(8.0), Capacity: 6, IsActive: true}, nil
		}},
		publisher: &fakePublisher{},
		metrics:   &fakeMetrics{},
	}
	persons := &fakePersonRepo{persons: map[int64]*domain.Person{
		10: {ID: 10, DisplayName: "Ana", Team: &legal},
		20: {ID: 20, DisplayName: "Bruno"},
		30: {ID: 30, DisplayName: "Carla"},
	}}
	f.uc = NewUseCase(f.repo, f.rooms, persons, &serialTxManager{}, f.publisher, f.metrics, domain.DefaultIntervalPolicy(), logger.NewNop())
	f.uc.timeProvider = fixedTime{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	return f
}

var day = time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

func request(start, end string) *Request {
	return &Request{
		Actor:     domain.NewActor(10),
		RoomID:    1,
		Date:      day,
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
	}
}

func TestExecute_CreatesPendingReservation(t *testing.T) {
	f := newFixture()

	req := request("09:00", "10:30")
	req.IsSharedCost = true
	req.SharedWithIDs = []int64{20, 30}
	req.ParticipantCount = 3

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	res := resp.Reservation
	assert.Equal(t, int64(1), res.ID)
	assert.Equal(t, domain.StatePending, res.State)
	assert.Equal(t, int64(10), res.OnBehalfOfID)
	assert.Equal(t, domain.MeetingInternal, res.MeetingType)
	assert.Equal(t, "Sala A", resp.Room.Name)

	require.Len(t, res.Participants, 3)
	assert.Equal(t, "Legal", res.Participants[0].TeamLabel())
	assert.Equal(t, domain.RoleShared, res.Participants[2].Role)

	assert.Equal(t, []int64{1}, f.repo.locks)
	assert.Equal(t, []string{"create"}, f.metrics.transitions)
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, events.EventCreated, f.publisher.events[0].Type)
}

func TestExecute_EndToEndConflict(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), request("09:00", "10:30"))
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), request("10:00", "11:00"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)

	var conflict *domain.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, int64(1), conflict.Existing.ID)
	assert.Equal(t, "Sala A", conflict.RoomName)
	assert.Equal(t, types.TimeString("10:30"), conflict.Existing.EndTime)

	_, err = f.uc.Execute(context.Background(), request("10:30", "11:30"))
	require.NoError(t, err)

	assert.Equal(t, []string{"commit"}, f.metrics.conflicts)
}

func TestExecute_ConcurrentOverlappingCreatesOnlyOneWins(t *testing.T) {
	f := newFixture()

	const callers = 8
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.uc.Execute(context.Background(), request("09:00", "10:00"))
		}(i)
	}
	wg.Wait()

	succeeded, conflicted := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domain.ErrConflict):
			conflicted++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, callers-1, conflicted)
	assert.Len(t, f.repo.reservations, 1)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{"end before start", func(r *Request) { r.EndTime = "08:00" }, domain.ErrInvalidInterval},
		{"too short", func(r *Request) { r.EndTime = "09:10" }, domain.ErrInvalidInterval},
		{"too many shared", func(r *Request) {
			r.IsSharedCost = true
			r.SharedWithIDs = []int64{20, 30, 40, 50}
		}, domain.ErrInvalidParticipants},
		{"primary among shared", func(r *Request) {
			r.IsSharedCost = true
			r.SharedWithIDs = []int64{10}
		}, domain.ErrInvalidParticipants},
		{"shared flag without people", func(r *Request) { r.IsSharedCost = true }, domain.ErrInvalidParticipants},
		{"unknown meeting type", func(r *Request) { r.MeetingType = "party" }, ErrInvalidInput},
		{"negative participants", func(r *Request) { r.ParticipantCount = -1 }, ErrInvalidInput},
		{"capacity exceeded", func(r *Request) { r.ParticipantCount = 7 }, ErrCapacityExceeded},
		{"unknown shared person", func(r *Request) {
			r.IsSharedCost = true
			r.SharedWithIDs = []int64{99}
		}, ErrPersonNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := request("09:00", "10:00")
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.repo.reservations)
		})
	}
}

func TestExecute_RoomErrors(t *testing.T) {
	f := newFixture()
	f.rooms.getByIDFunc = func(ctx context.Context, id int64) (*domain.Room, error) {
		return nil, roomRepo.ErrRoomNotFound
	}
	_, err := f.uc.Execute(context.Background(), request("09:00", "10:00"))
	assert.ErrorIs(t, err, ErrRoomNotFound)

	f.rooms.getByIDFunc = func(ctx context.Context, id int64) (*domain.Room, error) {
		return &domain.Room{ID: id, Name: "Old", IsActive: false}, nil
	}
	_, err = f.uc.Execute(context.Background(), request("09:00", "10:00"))
	assert.ErrorIs(t, err, ErrRoomInactive)
}

func TestExecute_PublishFailureDoesNotFailCommit(t *testing.T) {
	f := newFixture()
	f.publisher.err = errors.New("broker down")

	resp, err := f.uc.Execute(context.Background(), request("09:00", "10:00"))
	require.NoError(t, err)
	assert.NotZero(t, resp.Reservation.ID)
}

func TestExecute_RepositoryFailure(t *testing.T) {
	f := newFixture()
	f.repo.createErr = errors.New("disk full")

	_, err := f.uc.Execute(context.Background(), request("09:00", "10:00"))
	assert.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, f.publisher.events)
}
