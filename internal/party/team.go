package party

import "slices"

// PlayerID identifies a player across the game.
type PlayerID uint64

// Capacity is the member limit chosen when a team is created.
type Capacity int

const (
	CapacityFive Capacity = 5
	CapacityTen  Capacity = 10
)

// Valid reports whether c is one of the supported tiers.
func (c Capacity) Valid() bool {
	return c == CapacityFive || c == CapacityTen
}

// Team is the record kept for a live team. Fields are only mutated by
// Manager; callers receive copies through View.
type Team struct {
	id         TeamID
	leader     PlayerID
	capacity   Capacity
	members    []PlayerID
	applicants []PlayerID
}

func (t *Team) ID() TeamID { return t.id }
func (t *Team) Leader() PlayerID { return t.leader }
func (t *Team) Capacity() Capacity { return t.capacity }
func (t *Team) MemberCount() int { return len(t.members) }
func (t *Team) ApplicantCount() int { return len(t.applicants) }
func (t *Team) Empty() bool { return len(t.members) == 0 }
func (t *Team) IsFull() bool { return len(t.members) >= int(t.capacity) }
func (t *Team) IsLeader(p PlayerID) bool { return t.leader == p }

func (t *Team) HasMember(p PlayerID) bool {
	return slices.Contains(t.members, p)
}

func (t *Team) IsApplicant(p PlayerID) bool {
	return slices.Contains(t.applicants, p)
}

// remaining is the number of free member slots.
func (t *Team) remaining() int {
	return int(t.capacity) - len(t.members)
}

func (t *Team) removeMember(p PlayerID) bool {
	i := slices.Index(t.members, p)
	if i < 0 {
		return false
	}
	t.members = slices.Delete(t.members, i, i+1)
	return true
}

// pushApplicant appends p, dropping the oldest entry first when the queue
// already holds limit entries. The dropped entry is returned with ok set.
func (t *Team) pushApplicant(p PlayerID, limit int) (evicted PlayerID, ok bool) {
	if len(t.applicants) >= limit {
		evicted, ok = t.applicants[0], true
		t.applicants = slices.Delete(t.applicants, 0, 1)
	}
	t.applicants = append(t.applicants, p)
	return evicted, ok
}

func (t *Team) removeApplicant(p PlayerID) bool {
	i := slices.Index(t.applicants, p)
	if i < 0 {
		return false
	}
	t.applicants = slices.Delete(t.applicants, i, i+1)
	return true
}

// View is an immutable snapshot of a team.
type View struct {
	ID         TeamID
	Leader     PlayerID
	Capacity   Capacity
	Members    []PlayerID
	Applicants []PlayerID
}

func (t *Team) view() View {
	return View{
		ID:         t.id,
		Leader:     t.leader,
		Capacity:   t.capacity,
		Members:    slices.Clone(t.members),
		Applicants: slices.Clone(t.applicants),
	}
}
