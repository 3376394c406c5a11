package handlers

import (
	"github.com/dimitrije/party-api/internal/party"
	"github.com/dimitrije/party-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

type TeamHandler struct {
	teamService TeamServiceInterface
}

func NewTeamHandler(teamService TeamServiceInterface) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

// Create makes the caller the leader of a new team. An empty member list
// means a solo team.
func (h *TeamHandler) Create(c *drift.Context) {
	playerID, ok := currentPlayer(c)
	if !ok {
		return
	}

	var req dto.CreateTeamRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	members := toPlayerIDs(req.Members)
	if len(members) == 0 {
		members = []party.PlayerID{playerID}
	}

	view, err := h.teamService.Create(c.Request.Context(), playerID, members, party.Capacity(req.Capacity))
	if err != nil {
		writeTeamError(c, err)
		return
	}

	_ = c.JSON(201, toTeamResponse(view))
}

func (h *TeamHandler) Get(c *drift.Context) {
	if _, ok := currentPlayer(c); !ok {
		return
	}
	teamID, ok := parseTeamID(c, "id")
	if !ok {
		return
	}

	view, err := h.teamService.Get(c.Request.Context(), teamID)
	if err != nil {
		writeTeamError(c, err)
		return
	}

	_ = c.JSON(200, toTeamResponse(view))
}

func (h *TeamHandler) GetMembership(c *drift.Context) {
	if _, ok := currentPlayer(c); !ok {
		return
	}
	teamID, ok := parseTeamID(c, "id")
	if !ok {
		return
	}
	target, ok := parsePlayerID(c, "memberId")
	if !ok {
		return
	}

	member, err := h.teamService.IsMember(c.Request.Context(), teamID, target)
	if err != nil {
		writeTeamError(c, err)
		return
	}

	_ = c.JSON(200, dto.MembershipResponse{
		TeamID:   uint64(teamID),
		PlayerID: uint64(target),
		Member:   member,
	})
}

func (h *TeamHandler) Join(c *drift.Context) {
	playerID, ok := currentPlayer(c)
	if !ok {
		return
	}
	teamID, ok := parseTeamID(c, "id")
	if !ok {
		return
	}

	view, err := h.teamService.Join(c.Request.Context(), teamID, playerID)
	if err != nil {
		writeTeamError(c, err)
		return
	}

	_ = c.JSON(200, toTeamResponse(view))
}

func (h *TeamHandler) AddMembers(c *drift.Context) {
	playerID, ok := currentPlayer(c)
	if !ok {
		return
	}
	teamID, ok := parseTeamID(c, "id")
	if !ok {
		return
	}

	var req dto.AddMembersRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if len(req.PlayerIDs) == 0 {
		c.BadRequest("player_ids is required")
		return
	}

	view, err := h.teamService.AddMembers(c.Request.Context(), teamID, playerID, toPlayerIDs(req.PlayerIDs))
	if err != nil {
		writeTeamError(c, err)
		return
	}

	_ = c.JSON(200, toTeamResponse(view))
}

func (h *TeamHandler) Leave(c *drift.Context) {
	playerID, ok := currentPlayer(c)
	if !ok {
		return
	}

	if err := h.teamService.Leave(c.Request.Context(), playerID); err != nil {
		writeTeamError(c, err)
		return
	}

	_ = c.JSON(200, map[string]string{"message": "left team"})
}

func (h *TeamHandler) Kick(c *drift.Context) {
	playerID, ok := currentPlayer(c)
	if !ok {
		return
	}
	teamID, ok := parseTeamID(c, "id")
	if !ok {
		return
	}
	target, ok := parsePlayerID(c, "memberId")
	if !ok {
		return
	}

	if err := h.teamService.Kick(c.Request.Context(), teamID, playerID, target); err != nil {
		writeTeamError(c, err)
		return
	}

	_ = c.JSON(200, map[string]string{"message": "member kicked"})
}

func (h *TeamHandler) Disband(c *drift.Context) {
	playerID, ok := currentPlayer(c)
	if !ok {
		return
	}
	teamID, ok := parseTeamID(c, "id")
	if !ok {
		return
	}

	if err := h.teamService.Disband(c.Request.Context(), teamID, playerID); err != nil {
		writeTeamError(c, err)
		return
	}

	_ = c.JSON(200, map[string]string{"message": "team disbanded"})
}

func (h *TeamHandler) AppointLeader(c *drift.Context) {
	playerID, ok := currentPlayer(c)
	if !ok {
		return
	}
	teamID, ok := parseTeamID(c, "id")
	if !ok {
		return
	}

	var req dto.AppointLeaderRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	view, err := h.teamService.AppointLeader(c.Request.Context(), teamID, playerID, party.PlayerID(req.PlayerID))
	if err != nil {
		writeTeamError(c, err)
		return
	}

	_ = c.JSON(200, toTeamResponse(view))
}

func (h *TeamHandler) Apply(c *drift.Context) {
	playerID, ok := currentPlayer(c)
	if !ok {
		return
	}
	teamID, ok := parseTeamID(c, "id")
	if !ok {
		return
	}

	if err := h.teamService.Apply(c.Request.Context(), teamID, playerID); err != nil {
		writeTeamError(c, err)
		return
	}

	_ = c.JSON(202, map[string]string{"message": "application queued"})
}

func (h *TeamHandler) RemoveApplicant(c *drift.Context) {
	playerID, ok := currentPlayer(c)
	if !ok {
		return
	}
	teamID, ok := parseTeamID(c, "id")
	if !ok {
		return
	}
	applicant, ok := parsePlayerID(c, "playerId")
	if !ok {
		return
	}

	if err := h.teamService.RemoveApplicant(c.Request.Context(), teamID, playerID, applicant); err != nil {
		writeTeamError(c, err)
		return
	}

	_ = c.JSON(200, map[string]string{"message": "application removed"})
}

func (h *TeamHandler) AcceptApplicant(c *drift.Context) {
	playerID, ok := currentPlayer(c)
	if !ok {
		return
	}
	teamID, ok := parseTeamID(c, "id")
	if !ok {
		return
	}
	applicant, ok := parsePlayerID(c, "playerId")
	if !ok {
		return
	}

	view, err := h.teamService.AcceptApplicant(c.Request.Context(), teamID, playerID, applicant)
	if err != nil {
		writeTeamError(c, err)
		return
	}

	_ = c.JSON(200, toTeamResponse(view))
}

func (h *TeamHandler) ClearApplicants(c *drift.Context) {
	playerID, ok := currentPlayer(c)
	if !ok {
		return
	}
	teamID, ok := parseTeamID(c, "id")
	if !ok {
		return
	}

	if err := h.teamService.ClearApplicants(c.Request.Context(), teamID, playerID); err != nil {
		writeTeamError(c, err)
		return
	}

	_ = c.JSON(200, map[string]string{"message": "applications cleared"})
}
