package dto

type CreateTeamRequest struct {
	Members  []uint64 `json:"members"`
	Capacity int      `json:"capacity"`
}

type AddMembersRequest struct {
	PlayerIDs []uint64 `json:"player_ids"`
}

type AppointLeaderRequest struct {
	PlayerID uint64 `json:"player_id"`
}

type TeamResponse struct {
	ID         uint64   `json:"id"`
	LeaderID   uint64   `json:"leader_id"`
	Capacity   int      `json:"capacity"`
	Members    []uint64 `json:"members"`
	Applicants []uint64 `json:"applicants"`
	Full       bool     `json:"full"`
}

type MembershipResponse struct {
	TeamID   uint64 `json:"team_id"`
	PlayerID uint64 `json:"player_id"`
	Member   bool   `json:"member"`
}

type StatsResponse struct {
	Teams         int    `json:"teams"`
	TeamedPlayers int    `json:"teamed_players"`
	OnlinePlayers int    `json:"online_players"`
	LastTeamID    uint64 `json:"last_team_id"`
	SSEClients    int    `json:"sse_clients"`
}

// ErrorResponse carries the team result code next to the message so game
// clients can branch on it.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  uint32 `json:"code,omitempty"`
}
