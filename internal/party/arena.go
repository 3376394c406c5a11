package party

// TeamID is a generation-checked team handle. The low 32 bits index an
// arena slot and the high 32 bits hold the slot generation at allocation
// time, so a handle kept after its team was torn down never resolves to a
// newer team that reused the slot. The zero TeamID is never issued.
type TeamID uint64

// NoTeam is the zero handle returned when a player has no team.
const NoTeam TeamID = 0

func makeTeamID(index, gen uint32) TeamID {
	return TeamID(uint64(gen)<<32 | uint64(index))
}

func (id TeamID) index() uint32 { return uint32(id) }

func (id TeamID) generation() uint32 { return uint32(id >> 32) }

type slot struct {
	gen  uint32
	team *Team
}

// arena stores live team records. Released slots are reused LIFO with a
// bumped generation.
type arena struct {
	slots []slot
	free  []uint32
	live  int
}

func (a *arena) alloc() (TeamID, *Team) {
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		idx = uint32(len(a.slots))
		a.slots = append(a.slots, slot{gen: 1})
	}

	s := &a.slots[idx]
	id := makeTeamID(idx, s.gen)
	s.team = &Team{id: id}
	a.live++
	return id, s.team
}

func (a *arena) get(id TeamID) *Team {
	idx := id.index()
	if id == NoTeam || int(idx) >= len(a.slots) {
		return nil
	}
	s := &a.slots[idx]
	if s.gen != id.generation() {
		return nil
	}
	return s.team
}

func (a *arena) valid(id TeamID) bool {
	return a.get(id) != nil
}

// release frees the slot behind id. Releasing a stale handle is a no-op.
func (a *arena) release(id TeamID) {
	if !a.valid(id) {
		return
	}
	idx := id.index()
	s := &a.slots[idx]
	s.team = nil
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	a.free = append(a.free, idx)
	a.live--
}

func (a *arena) len() int { return a.live }

func (a *arena) each(fn func(*Team)) {
	for i := range a.slots {
		if t := a.slots[i].team; t != nil {
			fn(t)
		}
	}
}
