package handlers

import (
	"context"

	"github.com/dimitrije/party-api/internal/hub"
	"github.com/dimitrije/party-api/internal/models"
	"github.com/dimitrije/party-api/internal/party"
	"github.com/dimitrije/party-api/internal/services"
)

// TeamServiceInterface defines the methods used by handlers from TeamService
type TeamServiceInterface interface {
	Create(ctx context.Context, leader party.PlayerID, members []party.PlayerID, capacity party.Capacity) (party.View, error)
	Get(ctx context.Context, team party.TeamID) (party.View, error)
	TeamOf(ctx context.Context, player party.PlayerID) (party.View, error)
	IsMember(ctx context.Context, team party.TeamID, player party.PlayerID) (bool, error)
	Join(ctx context.Context, team party.TeamID, player party.PlayerID) (party.View, error)
	AddMembers(ctx context.Context, team party.TeamID, requester party.PlayerID, players []party.PlayerID) (party.View, error)
	AcceptApplicant(ctx context.Context, team party.TeamID, requester, applicant party.PlayerID) (party.View, error)
	Leave(ctx context.Context, player party.PlayerID) error
	Kick(ctx context.Context, team party.TeamID, requester, target party.PlayerID) error
	Disband(ctx context.Context, team party.TeamID, requester party.PlayerID) error
	ForceDisband(ctx context.Context, team party.TeamID) error
	AppointLeader(ctx context.Context, team party.TeamID, requester, newLeader party.PlayerID) (party.View, error)
	Apply(ctx context.Context, team party.TeamID, player party.PlayerID) error
	RemoveApplicant(ctx context.Context, team party.TeamID, requester, applicant party.PlayerID) error
	ClearApplicants(ctx context.Context, team party.TeamID, requester party.PlayerID) error
	Stats(ctx context.Context) (services.TeamStats, error)
}

// PlayerServiceInterface defines the methods used by handlers from PlayerService
type PlayerServiceInterface interface {
	GetByID(ctx context.Context, id int64) (*models.Player, error)
	Connect(ctx context.Context, id int64) error
	Disconnect(ctx context.Context, id int64) error
}

// HubInterface defines the methods used by handlers from the Hub
type HubInterface interface {
	Register(client *hub.Client)
	Unregister(client *hub.Client)
	Subscribe(clientID string, teamID uint64) bool
	Unsubscribe(clientID string, teamID uint64)
	ClientCount() int
}

var (
	_ TeamServiceInterface   = (*services.TeamService)(nil)
	_ PlayerServiceInterface = (*services.PlayerService)(nil)
	_ HubInterface           = (*hub.Hub)(nil)
)
