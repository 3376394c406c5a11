package party

// Handle is the live entity handle the game assigns to a connected player.
type Handle uint64

// Directory resolves player ids to live handles.
type Directory interface {
	Lookup(id PlayerID) (Handle, bool)
}

// Roster is the in-memory Directory owned by a shard. Like Manager it is
// not safe for concurrent use.
type Roster struct {
	players map[PlayerID]Handle
	next    Handle
}

func NewRoster() *Roster {
	return &Roster{players: make(map[PlayerID]Handle)}
}

// Add registers id and returns its handle. Adding a known player returns
// the existing handle.
func (r *Roster) Add(id PlayerID) Handle {
	if h, ok := r.players[id]; ok {
		return h
	}
	r.next++
	r.players[id] = r.next
	return r.next
}

func (r *Roster) Remove(id PlayerID) {
	delete(r.players, id)
}

func (r *Roster) Lookup(id PlayerID) (Handle, bool) {
	h, ok := r.players[id]
	return h, ok
}

func (r *Roster) Len() int {
	return len(r.players)
}
