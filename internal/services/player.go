package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dimitrije/party-api/internal/database"
	"github.com/dimitrije/party-api/internal/models"
	"github.com/dimitrije/party-api/internal/party"
	"github.com/dimitrije/party-api/internal/shard"
	"github.com/jackc/pgx/v5"
)

var ErrPlayerNotFound = errors.New("player not found")

// PlayerService keeps the players table and the shard roster in step.
type PlayerService struct {
	db     *database.DB
	shard  *shard.Shard
	logger *slog.Logger
}

func NewPlayerService(db *database.DB, s *shard.Shard, logger *slog.Logger) *PlayerService {
	return &PlayerService{db: db, shard: s, logger: logger}
}

// Register creates the player or updates its name and role.
func (s *PlayerService) Register(ctx context.Context, id int64, name, role string) (*models.Player, error) {
	var player models.Player
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO players (id, name, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, role = EXCLUDED.role, updated_at = NOW()
		RETURNING id, name, role, online, last_seen_at, created_at, updated_at
	`, id, name, role).Scan(
		&player.ID, &player.Name, &player.Role, &player.Online,
		&player.LastSeenAt, &player.CreatedAt, &player.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register player: %w", err)
	}
	return &player, nil
}

func (s *PlayerService) GetByID(ctx context.Context, id int64) (*models.Player, error) {
	var player models.Player
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, name, role, online, last_seen_at, created_at, updated_at
		FROM players WHERE id = $1
	`, id).Scan(
		&player.ID, &player.Name, &player.Role, &player.Online,
		&player.LastSeenAt, &player.CreatedAt, &player.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPlayerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return &player, nil
}

// Connect marks the player online and makes it known to the shard.
func (s *PlayerService) Connect(ctx context.Context, id int64) error {
	tag, err := s.db.Pool.Exec(ctx, `
		UPDATE players SET online = TRUE, last_seen_at = NOW(), updated_at = NOW()
		WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("failed to mark player online: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPlayerNotFound
	}

	err = s.shard.Do(ctx, func(_ *party.Manager, r *party.Roster) error {
		r.Add(party.PlayerID(id))
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to add player to roster: %w", err)
	}

	s.logger.Debug("player connected", "player_id", id)
	return nil
}

// Disconnect takes the player out of its team and the roster, then marks it
// offline.
func (s *PlayerService) Disconnect(ctx context.Context, id int64) error {
	err := s.shard.Do(ctx, func(m *party.Manager, r *party.Roster) error {
		p := party.PlayerID(id)
		if m.HasTeam(p) {
			if err := m.LeaveTeam(p); err != nil {
				return err
			}
		}
		r.Remove(p)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to remove player from shard: %w", err)
	}

	_, err = s.db.Pool.Exec(ctx, `
		UPDATE players SET online = FALSE, last_seen_at = NOW(), updated_at = NOW()
		WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("failed to mark player offline: %w", err)
	}

	s.logger.Debug("player disconnected", "player_id", id)
	return nil
}

// LoadOnline restores the roster from players marked online and returns how
// many were loaded.
func (s *PlayerService) LoadOnline(ctx context.Context) (int, error) {
	rows, err := s.db.Pool.Query(ctx, `SELECT id FROM players WHERE online ORDER BY id`)
	if err != nil {
		return 0, fmt.Errorf("failed to list online players: %w", err)
	}
	defer rows.Close()

	var ids []party.PlayerID
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return 0, fmt.Errorf("failed to scan player: %w", err)
		}
		ids = append(ids, party.PlayerID(id))
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("failed to list online players: %w", err)
	}

	err = s.shard.Do(ctx, func(_ *party.Manager, r *party.Roster) error {
		for _, id := range ids {
			r.Add(id)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to add players to roster: %w", err)
	}
	return len(ids), nil
}
