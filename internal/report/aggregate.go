package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/m04kA/SMC-RoomReservations/internal/domain"
)

// Input данные для построения отчёта
type Input struct {
	Period       Period
	StateFilter  StateFilter
	Reservations []*domain.Reservation
	Rooms        map[int64]*domain.Room
	// Persons используется для участников без снимка на момент бронирования
	Persons map[int64]*domain.Person
}

// Options настройки агрегации
type Options struct {
	// IncludeNonBillableHours учитывать часы в комнатах без ставки (стоимость 0)
	IncludeNonBillableHours bool
}

// Aggregate строит отчёт по броням периода
// Каждая бронь обходится один раз на каждого оплачивающего участника,
// доля попадает в команду/направление самого участника.
// Отсутствие комнаты или участника приводит к ErrDataUnavailable без частичного результата
func Aggregate(in Input, opts Options) (*Report, error) {
	filter := in.StateFilter
	if filter == "" {
		filter = FilterActive
	}

	b := newBuilder()
	counted := make(map[int64]struct{})
	shared := make(map[int64]struct{})

	for _, r := range in.Reservations {
		if r == nil || !filter.Includes(r) || !in.Period.Contains(r.Date) {
			continue
		}

		room, ok := in.Rooms[r.RoomID]
		if !ok || room == nil {
			return nil, fmt.Errorf("%w: room id=%d of reservation id=%d not found", domain.ErrDataUnavailable, r.RoomID, r.ID)
		}
		if !room.IsBillable() && !opts.IncludeNonBillableHours {
			continue
		}

		funders, err := resolveFunders(r, in.Persons)
		if err != nil {
			return nil, err
		}

		hours := CentiHours(r.DurationMinutes())
		cost := CostCents(hours, room.RateCents())
		shares := SplitEvenly(cost, len(funders))

		for i, f := range funders {
			b.add(f, ShareRow{
				ReservationID:   r.ID,
				RoomID:          room.ID,
				RoomName:        room.Name,
				Date:            r.Date,
				StartTime:       r.StartTime,
				EndTime:         r.EndTime,
				State:           r.State,
				MeetingType:     r.MeetingType,
				Role:            f.Role,
				Billable:        room.IsBillable(),
				IsSharedCost:    r.IsSharedCost,
				Funders:         len(funders),
				SharedWith:      otherNames(funders, i),
				ReservationCost: cost,
				ParticipationBP: ParticipationBasisPoints(shares[i], cost, len(funders)),
				Amount:          Amount{CentiHours: hours, CostCents: shares[i]},
			})
		}

		counted[r.ID] = struct{}{}
		if r.IsSharedCost {
			shared[r.ID] = struct{}{}
		}
	}

	rep := b.build()
	rep.Period = in.Period
	rep.StateFilter = filter
	rep.ReservationCount = len(counted)
	rep.SharedReservationCount = len(shared)
	return rep, nil
}

// resolveFunders возвращает оплачивающих участников в порядке основной, совместные
func resolveFunders(r *domain.Reservation, persons map[int64]*domain.Person) ([]domain.ParticipantSnapshot, error) {
	ids := r.CostParticipantIDs()
	funders := make([]domain.ParticipantSnapshot, 0, len(ids))

	for pos, id := range ids {
		role := domain.RoleShared
		if pos == 0 {
			role = domain.RolePrimary
		}

		if snap, ok := r.Snapshot(id); ok {
			snap.Role = role
			snap.Position = pos
			funders = append(funders, snap)
			continue
		}

		p, ok := persons[id]
		if !ok || p == nil {
			return nil, fmt.Errorf("%w: person id=%d of reservation id=%d not found", domain.ErrDataUnavailable, id, r.ID)
		}
		funders = append(funders, domain.NewSnapshot(p, role, pos))
	}
	return funders, nil
}

func otherNames(funders []domain.ParticipantSnapshot, self int) []string {
	if len(funders) < 2 {
		return nil
	}
	names := make([]string, 0, len(funders)-1)
	for i, f := range funders {
		if i != self {
			names = append(names, f.DisplayName)
		}
	}
	return names
}

type builder struct {
	teams map[string]*TeamNode
	areas map[[2]string]*AreaNode
	nodes map[int64]map[[2]string]*PersonNode
}

func newBuilder() *builder {
	return &builder{
		teams: make(map[string]*TeamNode),
		areas: make(map[[2]string]*AreaNode),
		nodes: make(map[int64]map[[2]string]*PersonNode),
	}
}

func (b *builder) add(f domain.ParticipantSnapshot, row ShareRow) {
	teamName, areaName := f.TeamLabel(), f.AreaLabel()
	key := [2]string{teamName, areaName}

	team, ok := b.teams[teamName]
	if !ok {
		team = &TeamNode{Name: teamName}
		b.teams[teamName] = team
	}

	area, ok := b.areas[key]
	if !ok {
		area = &AreaNode{Name: areaName}
		b.areas[key] = area
		team.Areas = append(team.Areas, area)
	}

	// один и тот же человек может оказаться в разных командах по снимкам разных броней
	byArea, ok := b.nodes[f.PersonID]
	if !ok {
		byArea = make(map[[2]string]*PersonNode)
		b.nodes[f.PersonID] = byArea
	}
	person, ok := byArea[key]
	if !ok {
		person = &PersonNode{PersonID: f.PersonID, DisplayName: f.DisplayName}
		byArea[key] = person
		area.Persons = append(area.Persons, person)
	}

	person.Shares = append(person.Shares, row)
}

// build сортирует дерево и считает промежуточные итоги как суммы потомков
func (b *builder) build() *Report {
	rep := &Report{}

	for _, team := range b.teams {
		rep.Teams = append(rep.Teams, team)
	}
	sortBuckets(rep.Teams, domain.NoTeamLabel, func(t *TeamNode) string { return t.Name })

	for _, team := range rep.Teams {
		sortBuckets(team.Areas, domain.NoAreaLabel, func(a *AreaNode) string { return a.Name })

		for _, area := range team.Areas {
			sort.Slice(area.Persons, func(i, j int) bool {
				a, b := area.Persons[i], area.Persons[j]
				if a.DisplayName != b.DisplayName {
					return strings.ToLower(a.DisplayName) < strings.ToLower(b.DisplayName)
				}
				return a.PersonID < b.PersonID
			})

			for _, person := range area.Persons {
				sortShares(person.Shares)
				for _, s := range person.Shares {
					person.Total = person.Total.Add(s.Amount)
				}
				area.Total = area.Total.Add(person.Total)
			}
			team.Total = team.Total.Add(area.Total)
		}
		rep.Total = rep.Total.Add(team.Total)
	}

	return rep
}

// sortBuckets сортирует по имени, корзина без значения идёт последней
func sortBuckets[T any](items []T, noBucket string, name func(T) string) {
	sort.Slice(items, func(i, j int) bool {
		a, b := name(items[i]), name(items[j])
		if (a == noBucket) != (b == noBucket) {
			return b == noBucket
		}
		return a < b
	})
}

func sortShares(rows []ShareRow) {
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.StartTime != b.StartTime {
			return a.StartTime < b.StartTime
		}
		return a.ReservationID < b.ReservationID
	})
}
