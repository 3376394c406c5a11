package testutil

import (
	"context"

	"github.com/dimitrije/party-api/internal/hub"
	"github.com/dimitrije/party-api/internal/models"
	"github.com/dimitrije/party-api/internal/party"
	"github.com/dimitrije/party-api/internal/services"
	"github.com/stretchr/testify/mock"
)

// MockTeamService mocks the TeamService
type MockTeamService struct {
	mock.Mock
}

func (m *MockTeamService) Create(ctx context.Context, leader party.PlayerID, members []party.PlayerID, capacity party.Capacity) (party.View, error) {
	args := m.Called(ctx, leader, members, capacity)
	return args.Get(0).(party.View), args.Error(1)
}

func (m *MockTeamService) Get(ctx context.Context, team party.TeamID) (party.View, error) {
	args := m.Called(ctx, team)
	return args.Get(0).(party.View), args.Error(1)
}

func (m *MockTeamService) TeamOf(ctx context.Context, player party.PlayerID) (party.View, error) {
	args := m.Called(ctx, player)
	return args.Get(0).(party.View), args.Error(1)
}

func (m *MockTeamService) IsMember(ctx context.Context, team party.TeamID, player party.PlayerID) (bool, error) {
	args := m.Called(ctx, team, player)
	return args.Bool(0), args.Error(1)
}

func (m *MockTeamService) Join(ctx context.Context, team party.TeamID, player party.PlayerID) (party.View, error) {
	args := m.Called(ctx, team, player)
	return args.Get(0).(party.View), args.Error(1)
}

func (m *MockTeamService) AddMembers(ctx context.Context, team party.TeamID, requester party.PlayerID, players []party.PlayerID) (party.View, error) {
	args := m.Called(ctx, team, requester, players)
	return args.Get(0).(party.View), args.Error(1)
}

func (m *MockTeamService) AcceptApplicant(ctx context.Context, team party.TeamID, requester, applicant party.PlayerID) (party.View, error) {
	args := m.Called(ctx, team, requester, applicant)
	return args.Get(0).(party.View), args.Error(1)
}

func (m *MockTeamService) Leave(ctx context.Context, player party.PlayerID) error {
	args := m.Called(ctx, player)
	return args.Error(0)
}

func (m *MockTeamService) Kick(ctx context.Context, team party.TeamID, requester, target party.PlayerID) error {
	args := m.Called(ctx, team, requester, target)
	return args.Error(0)
}

func (m *MockTeamService) Disband(ctx context.Context, team party.TeamID, requester party.PlayerID) error {
	args := m.Called(ctx, team, requester)
	return args.Error(0)
}

func (m *MockTeamService) ForceDisband(ctx context.Context, team party.TeamID) error {
	args := m.Called(ctx, team)
	return args.Error(0)
}

func (m *MockTeamService) AppointLeader(ctx context.Context, team party.TeamID, requester, newLeader party.PlayerID) (party.View, error) {
	args := m.Called(ctx, team, requester, newLeader)
	return args.Get(0).(party.View), args.Error(1)
}

func (m *MockTeamService) Apply(ctx context.Context, team party.TeamID, player party.PlayerID) error {
	args := m.Called(ctx, team, player)
	return args.Error(0)
}

func (m *MockTeamService) RemoveApplicant(ctx context.Context, team party.TeamID, requester, applicant party.PlayerID) error {
	args := m.Called(ctx, team, requester, applicant)
	return args.Error(0)
}

func (m *MockTeamService) ClearApplicants(ctx context.Context, team party.TeamID, requester party.PlayerID) error {
	args := m.Called(ctx, team, requester)
	return args.Error(0)
}

func (m *MockTeamService) Stats(ctx context.Context) (services.TeamStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(services.TeamStats), args.Error(1)
}

// MockPlayerService mocks the PlayerService
type MockPlayerService struct {
	mock.Mock
}

func (m *MockPlayerService) GetByID(ctx context.Context, id int64) (*models.Player, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Player), args.Error(1)
}

func (m *MockPlayerService) Connect(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPlayerService) Disconnect(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockHub mocks the event hub
type MockHub struct {
	mock.Mock
}

func (m *MockHub) Register(client *hub.Client) {
	m.Called(client)
}

func (m *MockHub) Unregister(client *hub.Client) {
	m.Called(client)
}

func (m *MockHub) Subscribe(clientID string, teamID uint64) bool {
	args := m.Called(clientID, teamID)
	return args.Bool(0)
}

func (m *MockHub) Unsubscribe(clientID string, teamID uint64) {
	m.Called(clientID, teamID)
}

func (m *MockHub) ClientCount() int {
	args := m.Called()
	return args.Int(0)
}
