package handlers

import (
	"fmt"

	"github.com/dimitrije/party-api/internal/hub"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

type SSEHandler struct {
	hub         HubInterface
	teamService TeamServiceInterface
}

func NewSSEHandler(hub HubInterface, teamService TeamServiceInterface) *SSEHandler {
	return &SSEHandler{
		hub:         hub,
		teamService: teamService,
	}
}

// Connect streams the events of a team the caller belongs to.
func (h *SSEHandler) Connect(c *drift.Context) {
	playerID, ok := currentPlayer(c)
	if !ok {
		return
	}
	teamID, ok := parseTeamID(c, "id")
	if !ok {
		return
	}

	member, err := h.teamService.IsMember(c.Request.Context(), teamID, playerID)
	if err != nil || !member {
		c.NotFound("team not found")
		return
	}

	sseCtx := c.SSE()

	clientID := uuid.New().String()
	client := &hub.Client{
		ID:       clientID,
		PlayerID: uint64(playerID),
		Teams:    map[uint64]bool{uint64(teamID): true},
		Send:     make(chan []byte, 256),
	}

	h.hub.Register(client)
	defer h.hub.Unregister(client)

	if err := sseCtx.SendJSON(map[string]string{
		"type":      "connected",
		"client_id": clientID,
	}, "system", ""); err != nil {
		return
	}

	done := make(chan struct{})
	go func() {
		<-c.Request.Context().Done()
		close(done)
	}()

	for {
		select {
		case msg, ok := <-client.Send:
			if !ok {
				return
			}
			if err := sseCtx.Send(string(msg), "message", ""); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func (h *SSEHandler) Subscribe(c *drift.Context) {
	playerID, ok := currentPlayer(c)
	if !ok {
		return
	}

	clientID := c.Param("clientId")
	if clientID == "" {
		c.BadRequest("client_id is required")
		return
	}

	teamID, ok := parseTeamID(c, "id")
	if !ok {
		return
	}

	member, err := h.teamService.IsMember(c.Request.Context(), teamID, playerID)
	if err != nil || !member {
		c.NotFound("team not found")
		return
	}

	if !h.hub.Subscribe(clientID, uint64(teamID)) {
		c.NotFound("client not found")
		return
	}

	_ = c.JSON(200, map[string]string{
		"message": fmt.Sprintf("subscribed to team %d", teamID),
	})
}

func (h *SSEHandler) Unsubscribe(c *drift.Context) {
	if _, ok := currentPlayer(c); !ok {
		return
	}

	clientID := c.Param("clientId")
	if clientID == "" {
		c.BadRequest("client_id is required")
		return
	}

	teamID, ok := parseTeamID(c, "id")
	if !ok {
		return
	}

	h.hub.Unsubscribe(clientID, uint64(teamID))

	_ = c.JSON(200, map[string]string{
		"message": fmt.Sprintf("unsubscribed from team %d", teamID),
	})
}
