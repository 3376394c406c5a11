package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dimitrije/party-api/internal/metrics"
	"github.com/dimitrije/party-api/internal/party"
	"github.com/dimitrije/party-api/internal/shard"
)

var ErrNotTeamLeader = errors.New("only the team leader can do this")

type TeamStats struct {
	Teams         int          `json:"teams"`
	TeamedPlayers int          `json:"teamed_players"`
	OnlinePlayers int          `json:"online_players"`
	LastTeamID    party.TeamID `json:"last_team_id"`
}

type TeamService struct {
	shard   *shard.Shard
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewTeamService(s *shard.Shard, m *metrics.Metrics, logger *slog.Logger) *TeamService {
	return &TeamService{shard: s, metrics: m, logger: logger}
}

// do runs fn on the shard and records the outcome under op.
func (s *TeamService) do(ctx context.Context, op string, fn shard.Func) error {
	err := s.shard.Do(ctx, fn)
	code := party.CodeOf(err)
	s.metrics.ObserveOp(op, uint32(code))

	switch {
	case err == nil:
	case code != party.CodeUnknown:
		s.logger.Debug("team operation rejected", "op", op, "code", uint32(code), "error", err)
	case errors.Is(err, ErrNotTeamLeader):
		s.logger.Debug("team operation rejected", "op", op, "error", err)
	default:
		s.logger.Error("team operation failed", "op", op, "error", err)
	}
	return err
}

func viewOf(m *party.Manager, team party.TeamID, out *party.View) {
	if v, ok := m.View(team); ok {
		*out = v
	}
}

func (s *TeamService) Create(ctx context.Context, leader party.PlayerID, members []party.PlayerID, capacity party.Capacity) (party.View, error) {
	var view party.View
	err := s.do(ctx, "create", func(m *party.Manager, _ *party.Roster) error {
		id, err := m.CreateTeam(leader, members, capacity)
		if err != nil {
			return err
		}
		viewOf(m, id, &view)
		return nil
	})
	if err != nil {
		return party.View{}, err
	}
	s.logger.Info("team created", "team_id", uint64(view.ID), "leader_id", uint64(leader), "capacity", int(capacity))
	return view, nil
}

func (s *TeamService) Get(ctx context.Context, team party.TeamID) (party.View, error) {
	var view party.View
	err := s.shard.Do(ctx, func(m *party.Manager, _ *party.Roster) error {
		v, ok := m.View(team)
		if !ok {
			return party.ErrTeamNotFound
		}
		view = v
		return nil
	})
	return view, err
}

// TeamOf returns the team player currently belongs to.
func (s *TeamService) TeamOf(ctx context.Context, player party.PlayerID) (party.View, error) {
	var view party.View
	err := s.shard.Do(ctx, func(m *party.Manager, _ *party.Roster) error {
		v, ok := m.View(m.TeamOf(player))
		if !ok {
			return party.ErrTeamNotFound
		}
		view = v
		return nil
	})
	return view, err
}

func (s *TeamService) IsMember(ctx context.Context, team party.TeamID, player party.PlayerID) (bool, error) {
	var member bool
	err := s.shard.Do(ctx, func(m *party.Manager, _ *party.Roster) error {
		if !m.Exists(team) {
			return party.ErrTeamNotFound
		}
		member = m.HasMember(team, player)
		return nil
	})
	return member, err
}

func (s *TeamService) Join(ctx context.Context, team party.TeamID, player party.PlayerID) (party.View, error) {
	var view party.View
	err := s.do(ctx, "join", func(m *party.Manager, _ *party.Roster) error {
		if err := m.JoinTeam(team, player); err != nil {
			return err
		}
		viewOf(m, team, &view)
		return nil
	})
	return view, err
}

// AddMembers joins players on the leader's behalf, all or none.
func (s *TeamService) AddMembers(ctx context.Context, team party.TeamID, requester party.PlayerID, players []party.PlayerID) (party.View, error) {
	var view party.View
	err := s.do(ctx, "join_batch", func(m *party.Manager, _ *party.Roster) error {
		if err := requireLeader(m, team, requester); err != nil {
			return err
		}
		if err := m.JoinTeamBatch(players, team); err != nil {
			return err
		}
		viewOf(m, team, &view)
		return nil
	})
	return view, err
}

// AcceptApplicant lets the leader admit a queued applicant.
func (s *TeamService) AcceptApplicant(ctx context.Context, team party.TeamID, requester, applicant party.PlayerID) (party.View, error) {
	var view party.View
	err := s.do(ctx, "accept", func(m *party.Manager, _ *party.Roster) error {
		if err := requireLeader(m, team, requester); err != nil {
			return err
		}
		if err := m.JoinTeam(team, applicant); err != nil {
			return err
		}
		viewOf(m, team, &view)
		return nil
	})
	return view, err
}

func (s *TeamService) Leave(ctx context.Context, player party.PlayerID) error {
	return s.do(ctx, "leave", func(m *party.Manager, _ *party.Roster) error {
		return m.LeaveTeam(player)
	})
}

func (s *TeamService) Kick(ctx context.Context, team party.TeamID, requester, target party.PlayerID) error {
	return s.do(ctx, "kick", func(m *party.Manager, _ *party.Roster) error {
		return m.KickMember(team, requester, target)
	})
}

func (s *TeamService) Disband(ctx context.Context, team party.TeamID, requester party.PlayerID) error {
	err := s.do(ctx, "disband", func(m *party.Manager, _ *party.Roster) error {
		return m.Disband(team, requester)
	})
	if err == nil {
		s.logger.Info("team disbanded", "team_id", uint64(team), "requester_id", uint64(requester))
	}
	return err
}

// ForceDisband disbands team regardless of who asks.
func (s *TeamService) ForceDisband(ctx context.Context, team party.TeamID) error {
	err := s.do(ctx, "force_disband", func(m *party.Manager, _ *party.Roster) error {
		return m.DisbandNoLeader(team)
	})
	if err == nil {
		s.logger.Warn("team force disbanded", "team_id", uint64(team))
	}
	return err
}

func (s *TeamService) AppointLeader(ctx context.Context, team party.TeamID, requester, newLeader party.PlayerID) (party.View, error) {
	var view party.View
	err := s.do(ctx, "appoint", func(m *party.Manager, _ *party.Roster) error {
		if err := m.AppointLeader(team, requester, newLeader); err != nil {
			return err
		}
		viewOf(m, team, &view)
		return nil
	})
	return view, err
}

func (s *TeamService) Apply(ctx context.Context, team party.TeamID, player party.PlayerID) error {
	return s.do(ctx, "apply", func(m *party.Manager, _ *party.Roster) error {
		return m.ApplyToTeam(team, player)
	})
}

// RemoveApplicant withdraws an application. Players may withdraw their own;
// the leader may reject anyone's.
func (s *TeamService) RemoveApplicant(ctx context.Context, team party.TeamID, requester, applicant party.PlayerID) error {
	return s.do(ctx, "del_applicant", func(m *party.Manager, _ *party.Roster) error {
		if requester != applicant {
			if err := requireLeader(m, team, requester); err != nil {
				return err
			}
		}
		return m.DelApplicant(team, applicant)
	})
}

func (s *TeamService) ClearApplicants(ctx context.Context, team party.TeamID, requester party.PlayerID) error {
	return s.do(ctx, "clear_applicants", func(m *party.Manager, _ *party.Roster) error {
		if err := requireLeader(m, team, requester); err != nil {
			return err
		}
		return m.ClearApplyList(team)
	})
}

func (s *TeamService) Stats(ctx context.Context) (TeamStats, error) {
	var stats TeamStats
	err := s.shard.Do(ctx, func(m *party.Manager, r *party.Roster) error {
		stats = TeamStats{
			Teams:         m.TeamCount(),
			TeamedPlayers: m.PlayerCount(),
			OnlinePlayers: r.Len(),
			LastTeamID:    m.LastTeamID(),
		}
		return nil
	})
	return stats, err
}

func requireLeader(m *party.Manager, team party.TeamID, requester party.PlayerID) error {
	leader, ok := m.Leader(team)
	if !ok {
		return party.ErrTeamNotFound
	}
	if leader != requester {
		return ErrNotTeamLeader
	}
	return nil
}
