package handlers

import (
	"errors"

	"github.com/dimitrije/party-api/internal/party"
	"github.com/dimitrije/party-api/internal/services"
	"github.com/dimitrije/party-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

type PlayerHandler struct {
	playerService PlayerServiceInterface
	teamService   TeamServiceInterface
}

func NewPlayerHandler(playerService PlayerServiceInterface, teamService TeamServiceInterface) *PlayerHandler {
	return &PlayerHandler{
		playerService: playerService,
		teamService:   teamService,
	}
}

func (h *PlayerHandler) GetMe(c *drift.Context) {
	playerID, ok := currentPlayer(c)
	if !ok {
		return
	}

	player, err := h.playerService.GetByID(c.Request.Context(), int64(playerID))
	if err != nil {
		if errors.Is(err, services.ErrPlayerNotFound) {
			c.NotFound("player not found")
			return
		}
		c.InternalServerError("failed to get player")
		return
	}

	_ = c.JSON(200, dto.PlayerResponse{
		ID:         player.ID,
		Name:       player.Name,
		Role:       player.Role,
		Online:     player.Online,
		LastSeenAt: player.LastSeenAt,
	})
}

func (h *PlayerHandler) GetMyTeam(c *drift.Context) {
	playerID, ok := currentPlayer(c)
	if !ok {
		return
	}

	view, err := h.teamService.TeamOf(c.Request.Context(), playerID)
	if err != nil {
		if errors.Is(err, party.ErrTeamNotFound) {
			c.NotFound("not in a team")
			return
		}
		writeTeamError(c, err)
		return
	}

	_ = c.JSON(200, toTeamResponse(view))
}

// Connect puts the caller on the shard roster so it can form and join teams.
func (h *PlayerHandler) Connect(c *drift.Context) {
	playerID, ok := currentPlayer(c)
	if !ok {
		return
	}

	if err := h.playerService.Connect(c.Request.Context(), int64(playerID)); err != nil {
		if errors.Is(err, services.ErrPlayerNotFound) {
			c.NotFound("player not found")
			return
		}
		c.InternalServerError("failed to connect player")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "connected"})
}

func (h *PlayerHandler) Disconnect(c *drift.Context) {
	playerID, ok := currentPlayer(c)
	if !ok {
		return
	}

	if err := h.playerService.Disconnect(c.Request.Context(), int64(playerID)); err != nil {
		c.InternalServerError("failed to disconnect player")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "disconnected"})
}
