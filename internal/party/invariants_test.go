package party

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkInvariants(t *testing.T, m *Manager) {
	t.Helper()

	seen := make(map[PlayerID]TeamID)
	m.teams.each(func(team *Team) {
		require.NotEmpty(t, team.members, "team %d has no members", team.id)
		assert.LessOrEqual(t, len(team.members), int(team.capacity))
		assert.LessOrEqual(t, len(team.applicants), m.cfg.maxApplicants)
		assert.Contains(t, team.members, team.leader)
		for _, p := range team.members {
			prev, dup := seen[p]
			assert.False(t, dup, "player %d in teams %d and %d", p, prev, team.id)
			seen[p] = team.id
			assert.Equal(t, team.id, m.index[p])
		}
	})
	assert.Len(t, m.index, len(seen))
	assert.LessOrEqual(t, m.TeamCount(), m.cfg.maxTeams)
}

func TestManager_RandomOperationsKeepInvariants(t *testing.T) {
	const players = 60
	r := rand.New(rand.NewPCG(7, 11))
	m, _ := setupManager(t, WithMaxTeams(12), WithMaxApplicants(4))

	player := func() PlayerID { return PlayerID(r.IntN(players)) }
	team := func() TeamID {
		views := m.Views()
		if len(views) == 0 || r.IntN(10) == 0 {
			return makeTeamID(uint32(r.IntN(4)), uint32(r.IntN(3)))
		}
		return views[r.IntN(len(views))].ID
	}

	for range 5000 {
		switch r.IntN(10) {
		case 0:
			leader := player()
			members := []PlayerID{leader, player(), player()}
			capacity := CapacityFive
			if r.IntN(2) == 0 {
				capacity = CapacityTen
			}
			_, _ = m.CreateTeam(leader, members, capacity)
		case 1:
			_ = m.JoinTeam(team(), player())
		case 2:
			_ = m.JoinTeamBatch([]PlayerID{player(), player()}, team())
		case 3:
			_ = m.LeaveTeam(player())
		case 4:
			id := team()
			leader, _ := m.Leader(id)
			_ = m.KickMember(id, leader, player())
		case 5:
			id := team()
			if r.IntN(2) == 0 {
				_ = m.DisbandNoLeader(id)
			} else {
				_ = m.Disband(id, player())
			}
		case 6:
			id := team()
			leader, _ := m.Leader(id)
			_ = m.AppointLeader(id, leader, player())
		case 7:
			_ = m.ApplyToTeam(team(), player())
		case 8:
			_ = m.DelApplicant(team(), player())
		case 9:
			if r.IntN(5) == 0 {
				_ = m.ClearApplyList(team())
			} else {
				_ = m.ApplyToTeam(team(), player())
			}
		}
		checkInvariants(t, m)
		if t.Failed() {
			t.FailNow()
		}
	}
}

func TestManager_FailedOperationsLeaveStateUnchanged(t *testing.T) {
	m, _ := setupManager(t)
	id := createTeam(t, m, 1, CapacityFive, 2, 3, 4)
	require.NoError(t, m.ApplyToTeam(id, 9))
	require.NoError(t, m.JoinTeam(id, 5))
	before, _ := m.View(id)

	assert.Error(t, m.JoinTeam(id, 6))
	assert.Error(t, m.JoinTeamBatch([]PlayerID{6}, id))
	assert.Error(t, m.KickMember(id, 2, 3))
	assert.Error(t, m.Disband(id, 3))
	assert.Error(t, m.AppointLeader(id, 3, 4))
	assert.Error(t, m.ApplyToTeam(id, 10))
	_, err := m.CreateTeam(6, []PlayerID{6, 5}, CapacityFive)
	assert.Error(t, err)

	after, _ := m.View(id)
	assert.Equal(t, before, after)
	assert.Equal(t, 5, m.PlayerCount())
}
