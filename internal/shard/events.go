package shard

import (
	"github.com/dimitrije/party-api/internal/hub"
	"github.com/dimitrije/party-api/internal/party"
)

// hooks translate manager callbacks into hub events buffered until the
// current operation finishes.
func (s *Shard) hooks() party.Hooks {
	emit := func(typ string, team party.TeamID, data any) {
		s.pending = append(s.pending, hub.Event{Type: typ, TeamID: uint64(team), Data: data})
	}

	return party.Hooks{
		OnTeamCreated: func(team party.TeamID, leader party.PlayerID) {
			emit(hub.EventTeamCreated, team, hub.TeamCreatedData{LeaderID: uint64(leader)})
		},
		OnMemberAdded: func(team party.TeamID, player party.PlayerID) {
			emit(hub.EventMemberJoined, team, hub.MemberData{PlayerID: uint64(player)})
		},
		OnMemberRemoved: func(team party.TeamID, player party.PlayerID, reason party.RemoveReason) {
			typ := hub.EventMemberLeft
			if reason == party.ReasonKick {
				typ = hub.EventMemberKicked
			}
			emit(typ, team, hub.MemberData{PlayerID: uint64(player), Reason: string(reason)})
		},
		OnLeaderChanged: func(team party.TeamID, from, to party.PlayerID) {
			emit(hub.EventLeaderChanged, team, hub.LeaderChangedData{From: uint64(from), To: uint64(to)})
		},
		OnTeamDestroyed: func(team party.TeamID) {
			emit(hub.EventTeamDisbanded, team, nil)
		},
		OnApplicantAdded: func(team party.TeamID, player party.PlayerID) {
			emit(hub.EventApplicantAdded, team, hub.ApplicantData{PlayerID: uint64(player)})
		},
		OnApplicantRemoved: func(team party.TeamID, player party.PlayerID) {
			emit(hub.EventApplicantRemoved, team, hub.ApplicantData{PlayerID: uint64(player)})
		},
		OnApplicantEvicted: func(team party.TeamID, player party.PlayerID) {
			s.metrics.ApplicantEvicted()
			emit(hub.EventApplicantEvicted, team, hub.ApplicantData{PlayerID: uint64(player)})
		},
		OnApplicantsClear: func(team party.TeamID) {
			emit(hub.EventApplicantsCleared, team, nil)
		},
	}
}
