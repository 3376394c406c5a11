package models

import "time"

const (
	RolePlayer = "player"
	RoleAdmin  = "admin"
)

type Player struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	Role       string     `json:"role"`
	Online     bool       `json:"online"`
	LastSeenAt *time.Time `json:"last_seen_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (p *Player) IsAdmin() bool {
	return p.Role == RoleAdmin
}
