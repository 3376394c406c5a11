package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/dimitrije/party-api/internal/middleware"
	"github.com/dimitrije/party-api/internal/party"
	"github.com/dimitrije/party-api/internal/services"
	"github.com/dimitrije/party-api/internal/shard"
	"github.com/dimitrije/party-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

func teamStatus(err error) int {
	switch {
	case errors.Is(err, party.ErrTeamNotFound),
		errors.Is(err, party.ErrPlayerNotFound),
		errors.Is(err, services.ErrPlayerNotFound):
		return http.StatusNotFound
	case errors.Is(err, party.ErrKickNotLeader),
		errors.Is(err, party.ErrDismissNotLeader),
		errors.Is(err, party.ErrAppointNotLeader),
		errors.Is(err, services.ErrNotTeamLeader):
		return http.StatusForbidden
	case errors.Is(err, party.ErrTeamListFull),
		errors.Is(err, party.ErrAlreadyInTeam),
		errors.Is(err, party.ErrTeamFull),
		errors.Is(err, party.ErrBatchExceedsCapacity):
		return http.StatusConflict
	case errors.Is(err, shard.ErrClosed),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	case party.CodeOf(err) != party.CodeUnknown:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeTeamError reports a failed team operation. Result codes are only
// exposed for errors raised by the team core.
func writeTeamError(c *drift.Context, err error) {
	status := teamStatus(err)
	if status == http.StatusInternalServerError {
		c.InternalServerError("team operation failed")
		return
	}

	resp := dto.ErrorResponse{Error: err.Error()}
	if code := party.CodeOf(err); code != party.CodeUnknown {
		resp.Code = uint32(code)
	}
	_ = c.JSON(status, resp)
}

func currentPlayer(c *drift.Context) (party.PlayerID, bool) {
	id, ok := middleware.GetPlayerID(c)
	if !ok || id < 0 {
		c.Unauthorized("not authenticated")
		return 0, false
	}
	return party.PlayerID(id), true
}

func parseTeamID(c *drift.Context, name string) (party.TeamID, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || party.TeamID(id) == party.NoTeam {
		c.BadRequest("invalid team id")
		return party.NoTeam, false
	}
	return party.TeamID(id), true
}

func parsePlayerID(c *drift.Context, name string) (party.PlayerID, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.BadRequest("invalid player id")
		return 0, false
	}
	return party.PlayerID(id), true
}

func toPlayerIDs(ids []uint64) []party.PlayerID {
	out := make([]party.PlayerID, len(ids))
	for i, id := range ids {
		out[i] = party.PlayerID(id)
	}
	return out
}

func fromPlayerIDs(ids []party.PlayerID) []uint64 {
	out := make([]uint64, len(ids))
	for i, id := range ids {
		out[i] = uint64(id)
	}
	return out
}

func toTeamResponse(v party.View) dto.TeamResponse {
	return dto.TeamResponse{
		ID:         uint64(v.ID),
		LeaderID:   uint64(v.Leader),
		Capacity:   int(v.Capacity),
		Members:    fromPlayerIDs(v.Members),
		Applicants: fromPlayerIDs(v.Applicants),
		Full:       len(v.Members) >= int(v.Capacity),
	}
}
