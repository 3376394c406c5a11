package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

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

func setupPlayerTest(t *testing.T) (*testutil.MockPlayerService, *testutil.MockTeamService, *testutil.HTTPTestClient, *services.JWTService) {
	t.Helper()
	mockPlayerService := new(testutil.MockPlayerService)
	mockTeamService := new(testutil.MockTeamService)
	handler := NewPlayerHandler(mockPlayerService, mockTeamService)
	jwtSvc := testutil.TestJWTService()

	app := drift.New()
	app.Use(middleware.Auth(jwtSvc))
	app.Get("/players/me", handler.GetMe)
	app.Get("/players/me/team", handler.GetMyTeam)
	app.Post("/players/me/connect", handler.Connect)
	app.Post("/players/me/disconnect", handler.Disconnect)

	return mockPlayerService, mockTeamService, testutil.NewHTTPTestClient(t, app), jwtSvc
}

func TestPlayerHandler_GetMe(t *testing.T) {
	mockPlayerService, _, client, jwtSvc := setupPlayerTest(t)

	seen := time.Now().UTC().Truncate(time.Second)
	mockPlayerService.On("GetByID", mock.Anything, int64(12)).Return(&models.Player{
		ID:         12,
		Name:       "Aria",
		Role:       models.RolePlayer,
		Online:     true,
		LastSeenAt: &seen,
	}, nil)

	rec := client.GET("/players/me", authAs(t, jwtSvc, 12))

	assert.Equal(t, http.StatusOK, rec.Code)
	var response dto.PlayerResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, int64(12), response.ID)
	assert.Equal(t, "Aria", response.Name)
	assert.True(t, response.Online)
	require.NotNil(t, response.LastSeenAt)
	assert.True(t, seen.Equal(*response.LastSeenAt))
}

func TestPlayerHandler_GetMe_NotFound(t *testing.T) {
	mockPlayerService, _, client, jwtSvc := setupPlayerTest(t)

	mockPlayerService.On("GetByID", mock.Anything, int64(12)).Return(nil, services.ErrPlayerNotFound)

	rec := client.GET("/players/me", authAs(t, jwtSvc, 12))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "player not found")
}

func TestPlayerHandler_GetMyTeam(t *testing.T) {
	_, mockTeamService, client, jwtSvc := setupPlayerTest(t)

	mockTeamService.On("TeamOf", mock.Anything, party.PlayerID(2)).Return(sampleView(), nil)
	mockTeamService.On("TeamOf", mock.Anything, party.PlayerID(5)).Return(party.View{}, party.ErrTeamNotFound)

	rec := client.GET("/players/me/team", authAs(t, jwtSvc, 2))
	assert.Equal(t, http.StatusOK, rec.Code)
	var response dto.TeamResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Contains(t, response.Members, uint64(2))

	rec = client.GET("/players/me/team", authAs(t, jwtSvc, 5))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not in a team")
}

func TestPlayerHandler_Connect(t *testing.T) {
	mockPlayerService, _, client, jwtSvc := setupPlayerTest(t)

	mockPlayerService.On("Connect", mock.Anything, int64(3)).Return(nil)
	mockPlayerService.On("Connect", mock.Anything, int64(4)).Return(services.ErrPlayerNotFound)
	mockPlayerService.On("Connect", mock.Anything, int64(5)).Return(assert.AnError)

	assert.Equal(t, http.StatusOK, client.POST("/players/me/connect", nil, authAs(t, jwtSvc, 3)).Code)
	assert.Equal(t, http.StatusNotFound, client.POST("/players/me/connect", nil, authAs(t, jwtSvc, 4)).Code)
	assert.Equal(t, http.StatusInternalServerError, client.POST("/players/me/connect", nil, authAs(t, jwtSvc, 5)).Code)

	mockPlayerService.AssertExpectations(t)
}

func TestPlayerHandler_Disconnect(t *testing.T) {
	mockPlayerService, _, client, jwtSvc := setupPlayerTest(t)

	mockPlayerService.On("Disconnect", mock.Anything, int64(3)).Return(nil)
	mockPlayerService.On("Disconnect", mock.Anything, int64(4)).Return(assert.AnError)

	assert.Equal(t, http.StatusOK, client.POST("/players/me/disconnect", nil, authAs(t, jwtSvc, 3)).Code)
	assert.Equal(t, http.StatusInternalServerError, client.POST("/players/me/disconnect", nil, authAs(t, jwtSvc, 4)).Code)

	mockPlayerService.AssertExpectations(t)
}
