package domain

import "fmt"

// Person represents an employee that can request or share a reservation
type Person struct {
	ID          int64
	DisplayName string
	Email       *string
	Team        *string
	Area        *string
}

// ParticipantRole describes how a person funds a reservation
type ParticipantRole string

const (
	RolePrimary ParticipantRole = "primary"
	RoleShared  ParticipantRole = "shared"
)

// ParticipantSnapshot captures who funds a reservation and their team/area at reservation time
type ParticipantSnapshot struct {
	PersonID    int64
	Role        ParticipantRole
	Position    int // 0 for primary, 1..3 for shared participants in order
	DisplayName string
	Team        *string
	Area        *string
}

// NewSnapshot builds a participant snapshot from the current person record
func NewSnapshot(p *Person, role ParticipantRole, position int) ParticipantSnapshot {
	return ParticipantSnapshot{
		PersonID:    p.ID,
		Role:        role,
		Position:    position,
		DisplayName: p.DisplayName,
		Team:        p.Team,
		Area:        p.Area,
	}
}

// TeamLabel returns the team name or the "(no team)" bucket
func (s ParticipantSnapshot) TeamLabel() string {
	if s.Team == nil || *s.Team == "" {
		return NoTeamLabel
	}
	return *s.Team
}

// AreaLabel returns the area name or the "(no area)" bucket
func (s ParticipantSnapshot) AreaLabel() string {
	if s.Area == nil || *s.Area == "" {
		return NoAreaLabel
	}
	return *s.Area
}

// BuildSnapshots снимает команду/направление оплачивающих участников:
// основной участник на позиции 0, совместные по порядку
func BuildSnapshots(primaryID int64, sharedWithIDs []int64, persons map[int64]*Person) ([]ParticipantSnapshot, error) {
	ids := append([]int64{primaryID}, sharedWithIDs...)
	snapshots := make([]ParticipantSnapshot, 0, len(ids))

	for pos, id := range ids {
		p, ok := persons[id]
		if !ok || p == nil {
			return nil, fmt.Errorf("%w: person id=%d", ErrUnknownPerson, id)
		}
		role := RoleShared
		if pos == 0 {
			role = RolePrimary
		}
		snapshots = append(snapshots, NewSnapshot(p, role, pos))
	}
	return snapshots, nil
}
