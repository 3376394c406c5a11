package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/dimitrije/party-api/internal/middleware"
	"github.com/dimitrije/party-api/internal/models"
	"github.com/dimitrije/party-api/internal/party"
	"github.com/dimitrije/party-api/internal/services"
	"github.com/dimitrije/party-api/internal/testutil"
	"github.com/dimitrije/party-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupAdminTest(t *testing.T) (*testutil.MockTeamService, *testutil.MockHub, *testutil.HTTPTestClient, *services.JWTService) {
	t.Helper()
	mockTeamService := new(testutil.MockTeamService)
	mockHub := new(testutil.MockHub)
	handler := NewAdminHandler(mockTeamService, mockHub)
	jwtSvc := testutil.TestJWTService()

	app := drift.New()
	app.Use(middleware.Auth(jwtSvc))
	app.Use(middleware.RequireAdmin())
	app.Delete("/admin/teams/:id", handler.DisbandTeam)
	app.Get("/admin/stats", handler.Stats)

	return mockTeamService, mockHub, testutil.NewHTTPTestClient(t, app), jwtSvc
}

func adminAuth(t *testing.T, jwtSvc *services.JWTService) map[string]string {
	t.Helper()
	return testutil.AuthHeader(testutil.GenerateTestToken(t, jwtSvc, 1, models.RoleAdmin))
}

func TestAdminHandler_DisbandTeam(t *testing.T) {
	mockTeamService, _, client, jwtSvc := setupAdminTest(t)

	mockTeamService.On("ForceDisband", mock.Anything, party.TeamID(3)).Return(nil)
	mockTeamService.On("ForceDisband", mock.Anything, party.TeamID(4)).Return(party.ErrTeamNotFound)

	rec := client.DELETE("/admin/teams/3", adminAuth(t, jwtSvc))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = client.DELETE("/admin/teams/4", adminAuth(t, jwtSvc))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	mockTeamService.AssertExpectations(t)
}

func TestAdminHandler_RequiresAdmin(t *testing.T) {
	_, _, client, jwtSvc := setupAdminTest(t)

	rec := client.DELETE("/admin/teams/3", authAs(t, jwtSvc, 2))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminHandler_Stats(t *testing.T) {
	mockTeamService, mockHub, client, jwtSvc := setupAdminTest(t)

	mockTeamService.On("Stats", mock.Anything).Return(services.TeamStats{
		Teams:         2,
		TeamedPlayers: 7,
		OnlinePlayers: 30,
		LastTeamID:    party.TeamID(9),
	}, nil)
	mockHub.On("ClientCount").Return(4)

	rec := client.GET("/admin/stats", adminAuth(t, jwtSvc))

	assert.Equal(t, http.StatusOK, rec.Code)
	var response dto.StatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, dto.StatsResponse{
		Teams:         2,
		TeamedPlayers: 7,
		OnlinePlayers: 30,
		LastTeamID:    9,
		SSEClients:    4,
	}, response)
}
