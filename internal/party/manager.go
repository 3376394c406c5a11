package party

import "slices"

// Manager owns the teams of one shard together with the player-team index.
// Every method either applies fully or leaves state untouched.
type Manager struct {
	dir   Directory
	teams arena
	index map[PlayerID]TeamID
	last  TeamID
	cfg   managerConfig
}

func NewManager(dir Directory, opts ...Option) *Manager {
	cfg := managerConfig{
		maxTeams:      DefaultMaxTeams,
		maxApplicants: DefaultMaxApplicants,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Manager{
		dir:   dir,
		index: make(map[PlayerID]TeamID),
		cfg:   cfg,
	}
}

// CreateTeam opens a team led by leader. members must include the leader;
// duplicates are collapsed and join order follows the slice.
func (m *Manager) CreateTeam(leader PlayerID, members []PlayerID, capacity Capacity) (TeamID, error) {
	if m.IsTeamListFull() {
		return NoTeam, ErrTeamListFull
	}
	if m.HasTeam(leader) {
		return NoTeam, ErrAlreadyInTeam
	}
	if !capacity.Valid() {
		return NoTeam, ErrInvalidCapacity
	}

	members = dedupe(members)
	if len(members) > int(capacity) {
		return NoTeam, ErrExceedsMaxMembers
	}
	if err := m.checkTeamless(members); err != nil {
		return NoTeam, err
	}
	if !slices.Contains(members, leader) {
		return NoTeam, ErrLeaderNotMember
	}
	if err := m.checkKnown(members); err != nil {
		return NoTeam, err
	}

	id, t := m.teams.alloc()
	t.leader = leader
	t.capacity = capacity
	m.last = id
	if fn := m.cfg.hooks.OnTeamCreated; fn != nil {
		fn(id, leader)
	}
	for _, p := range members {
		m.addMember(t, p)
	}
	return id, nil
}

// JoinTeam admits player into team. A pending application from the player
// to this team is consumed.
func (m *Manager) JoinTeam(team TeamID, player PlayerID) error {
	t := m.teams.get(team)
	if t == nil {
		return ErrTeamNotFound
	}
	if m.HasTeam(player) {
		return ErrAlreadyInTeam
	}
	if t.IsFull() {
		return ErrTeamFull
	}
	if _, ok := m.dir.Lookup(player); !ok {
		return ErrPlayerNotFound
	}

	t.removeApplicant(player)
	m.addMember(t, player)
	return nil
}

// JoinTeamBatch admits every listed player or none of them.
func (m *Manager) JoinTeamBatch(players []PlayerID, team TeamID) error {
	t := m.teams.get(team)
	if t == nil {
		return ErrTeamNotFound
	}
	players = dedupe(players)
	if len(players) > t.remaining() {
		return ErrBatchExceedsCapacity
	}
	if err := m.checkTeamless(players); err != nil {
		return err
	}
	if err := m.checkKnown(players); err != nil {
		return err
	}

	for _, p := range players {
		t.removeApplicant(p)
		m.addMember(t, p)
	}
	return nil
}

// LeaveTeam removes player from its team. When the leader leaves, the
// longest-standing remaining member takes over.
func (m *Manager) LeaveTeam(player PlayerID) error {
	t := m.teams.get(m.index[player])
	if t == nil {
		return ErrTeamNotFound
	}
	if !t.HasMember(player) {
		return ErrNotMember
	}

	m.delMember(t, player, ReasonLeave)
	if t.Empty() {
		m.destroy(t.id)
		return nil
	}
	if t.leader == player {
		m.setLeader(t, t.members[0])
	}
	return nil
}

func (m *Manager) KickMember(team TeamID, requester, target PlayerID) error {
	t := m.teams.get(team)
	if t == nil {
		return ErrTeamNotFound
	}
	if t.leader != requester {
		return ErrKickNotLeader
	}
	if t.leader == target || requester == target {
		return ErrKickSelf
	}
	if !t.HasMember(target) {
		return ErrNotMember
	}

	m.delMember(t, target, ReasonKick)
	return nil
}

// Disband removes every member and tears the team down.
func (m *Manager) Disband(team TeamID, requester PlayerID) error {
	t := m.teams.get(team)
	if t == nil {
		return ErrTeamNotFound
	}
	if t.leader != requester {
		return ErrDismissNotLeader
	}

	for _, p := range slices.Clone(t.members) {
		m.delMember(t, p, ReasonDisband)
	}
	m.destroy(team)
	return nil
}

// DisbandNoLeader disbands team on behalf of its current leader.
func (m *Manager) DisbandNoLeader(team TeamID) error {
	t := m.teams.get(team)
	if t == nil {
		return ErrTeamNotFound
	}
	return m.Disband(team, t.leader)
}

func (m *Manager) AppointLeader(team TeamID, requester, newLeader PlayerID) error {
	t := m.teams.get(team)
	if t == nil {
		return ErrTeamNotFound
	}
	if t.leader == newLeader {
		return ErrAppointSelf
	}
	if !t.HasMember(newLeader) {
		return ErrAppointTargetNotMember
	}
	if t.leader != requester {
		return ErrAppointNotLeader
	}

	m.setLeader(t, newLeader)
	return nil
}

// ApplyToTeam queues player as an applicant. A full queue drops its oldest
// entry to make room.
func (m *Manager) ApplyToTeam(team TeamID, player PlayerID) error {
	t := m.teams.get(team)
	if t == nil {
		return ErrTeamNotFound
	}
	if m.HasTeam(player) {
		return ErrAlreadyInTeam
	}
	if t.IsFull() {
		return ErrTeamFull
	}

	evicted, ok := t.pushApplicant(player, m.cfg.maxApplicants)
	if ok {
		if fn := m.cfg.hooks.OnApplicantEvicted; fn != nil {
			fn(team, evicted)
		}
	}
	if fn := m.cfg.hooks.OnApplicantAdded; fn != nil {
		fn(team, player)
	}
	return nil
}

// DelApplicant drops the oldest application by player. Absent applicants
// are ignored.
func (m *Manager) DelApplicant(team TeamID, player PlayerID) error {
	t := m.teams.get(team)
	if t == nil {
		return ErrTeamNotFound
	}
	if t.removeApplicant(player) {
		if fn := m.cfg.hooks.OnApplicantRemoved; fn != nil {
			fn(team, player)
		}
	}
	return nil
}

func (m *Manager) ClearApplyList(team TeamID) error {
	t := m.teams.get(team)
	if t == nil {
		return ErrTeamNotFound
	}
	t.applicants = nil
	if fn := m.cfg.hooks.OnApplicantsClear; fn != nil {
		fn(team)
	}
	return nil
}

// Shutdown forces every indexed player out of their team and returns how
// many players were removed. The manager stays usable afterwards.
func (m *Manager) Shutdown() int {
	players := make([]PlayerID, 0, len(m.index))
	for p := range m.index {
		players = append(players, p)
	}
	slices.Sort(players)

	n := 0
	for _, p := range players {
		if m.LeaveTeam(p) == nil {
			n++
		}
	}
	return n
}

func (m *Manager) addMember(t *Team, p PlayerID) {
	t.members = append(t.members, p)
	m.index[p] = t.id
	if fn := m.cfg.hooks.OnMemberAdded; fn != nil {
		fn(t.id, p)
	}
}

func (m *Manager) delMember(t *Team, p PlayerID, reason RemoveReason) {
	if !t.removeMember(p) {
		return
	}
	delete(m.index, p)
	if fn := m.cfg.hooks.OnMemberRemoved; fn != nil {
		fn(t.id, p, reason)
	}
}

func (m *Manager) setLeader(t *Team, p PlayerID) {
	from := t.leader
	t.leader = p
	if fn := m.cfg.hooks.OnLeaderChanged; fn != nil {
		fn(t.id, from, p)
	}
}

// destroy releases the team slot. Destroying a released team is a no-op.
func (m *Manager) destroy(team TeamID) {
	if !m.teams.valid(team) {
		return
	}
	m.teams.release(team)
	if fn := m.cfg.hooks.OnTeamDestroyed; fn != nil {
		fn(team)
	}
}

func (m *Manager) checkTeamless(players []PlayerID) error {
	for _, p := range players {
		if m.HasTeam(p) {
			return ErrAlreadyInTeam
		}
	}
	return nil
}

func (m *Manager) checkKnown(players []PlayerID) error {
	for _, p := range players {
		if _, ok := m.dir.Lookup(p); !ok {
			return ErrPlayerNotFound
		}
	}
	return nil
}

func dedupe(ids []PlayerID) []PlayerID {
	out := make([]PlayerID, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
