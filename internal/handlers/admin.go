package handlers

import (
	"github.com/dimitrije/party-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

type AdminHandler struct {
	teamService TeamServiceInterface
	hub         HubInterface
}

func NewAdminHandler(teamService TeamServiceInterface, hub HubInterface) *AdminHandler {
	return &AdminHandler{
		teamService: teamService,
		hub:         hub,
	}
}

func (h *AdminHandler) DisbandTeam(c *drift.Context) {
	teamID, ok := parseTeamID(c, "id")
	if !ok {
		return
	}

	if err := h.teamService.ForceDisband(c.Request.Context(), teamID); err != nil {
		writeTeamError(c, err)
		return
	}

	_ = c.JSON(200, map[string]string{"message": "team disbanded"})
}

func (h *AdminHandler) Stats(c *drift.Context) {
	stats, err := h.teamService.Stats(c.Request.Context())
	if err != nil {
		writeTeamError(c, err)
		return
	}

	_ = c.JSON(200, dto.StatsResponse{
		Teams:         stats.Teams,
		TeamedPlayers: stats.TeamedPlayers,
		OnlinePlayers: stats.OnlinePlayers,
		LastTeamID:    uint64(stats.LastTeamID),
		SSEClients:    h.hub.ClientCount(),
	})
}
