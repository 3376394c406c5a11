package party

// TeamCount is the number of live teams.
func (m *Manager) TeamCount() int { return m.teams.len() }

// PlayerCount is the number of players currently on a team.
func (m *Manager) PlayerCount() int { return len(m.index) }

// LastTeamID returns the most recently created team, which may since have
// been torn down.
func (m *Manager) LastTeamID() TeamID { return m.last }

func (m *Manager) IsTeamListFull() bool { return m.teams.len() >= m.cfg.maxTeams }

func (m *Manager) HasTeam(player PlayerID) bool {
	_, ok := m.index[player]
	return ok
}

// TeamOf returns the team player belongs to, or NoTeam.
func (m *Manager) TeamOf(player PlayerID) TeamID {
	id, ok := m.index[player]
	if !ok || !m.teams.valid(id) {
		return NoTeam
	}
	return id
}

func (m *Manager) Exists(team TeamID) bool { return m.teams.valid(team) }

func (m *Manager) MemberCount(team TeamID) int {
	if t := m.teams.get(team); t != nil {
		return t.MemberCount()
	}
	return 0
}

func (m *Manager) ApplicantCount(team TeamID) int {
	if t := m.teams.get(team); t != nil {
		return t.ApplicantCount()
	}
	return 0
}

// ApplicantCountOfPlayer counts the applicants on the team player belongs to.
func (m *Manager) ApplicantCountOfPlayer(player PlayerID) int {
	return m.ApplicantCount(m.TeamOf(player))
}

func (m *Manager) HasMember(team TeamID, player PlayerID) bool {
	t := m.teams.get(team)
	return t != nil && t.HasMember(player)
}

func (m *Manager) IsApplicant(team TeamID, player PlayerID) bool {
	t := m.teams.get(team)
	return t != nil && t.IsApplicant(player)
}

func (m *Manager) IsTeamFull(team TeamID) bool {
	t := m.teams.get(team)
	return t != nil && t.IsFull()
}

// Leader returns the leader of team. ok is false for unknown teams.
func (m *Manager) Leader(team TeamID) (leader PlayerID, ok bool) {
	t := m.teams.get(team)
	if t == nil {
		return 0, false
	}
	return t.leader, true
}

// LeaderOf returns the leader of the team player belongs to.
func (m *Manager) LeaderOf(player PlayerID) (PlayerID, bool) {
	return m.Leader(m.TeamOf(player))
}

// FirstApplicant returns the oldest queued applicant of team.
func (m *Manager) FirstApplicant(team TeamID) (PlayerID, bool) {
	t := m.teams.get(team)
	if t == nil || len(t.applicants) == 0 {
		return 0, false
	}
	return t.applicants[0], true
}

func (m *Manager) Members(team TeamID) []PlayerID {
	if t := m.teams.get(team); t != nil {
		return t.view().Members
	}
	return nil
}

func (m *Manager) Applicants(team TeamID) []PlayerID {
	if t := m.teams.get(team); t != nil {
		return t.view().Applicants
	}
	return nil
}

// View returns a snapshot of team.
func (m *Manager) View(team TeamID) (View, bool) {
	t := m.teams.get(team)
	if t == nil {
		return View{}, false
	}
	return t.view(), true
}

// Views snapshots every live team in slot order.
func (m *Manager) Views() []View {
	out := make([]View, 0, m.teams.len())
	m.teams.each(func(t *Team) {
		out = append(out, t.view())
	})
	return out
}
