package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/dimitrije/party-api/internal/party"
	"github.com/dimitrije/party-api/internal/services"
	"github.com/dimitrije/party-api/internal/shard"
	"github.com/stretchr/testify/assert"
)

func TestTeamStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{party.ErrTeamNotFound, http.StatusNotFound},
		{party.ErrPlayerNotFound, http.StatusNotFound},
		{services.ErrPlayerNotFound, http.StatusNotFound},
		{party.ErrKickNotLeader, http.StatusForbidden},
		{party.ErrDismissNotLeader, http.StatusForbidden},
		{party.ErrAppointNotLeader, http.StatusForbidden},
		{services.ErrNotTeamLeader, http.StatusForbidden},
		{party.ErrTeamListFull, http.StatusConflict},
		{party.ErrAlreadyInTeam, http.StatusConflict},
		{party.ErrTeamFull, http.StatusConflict},
		{party.ErrBatchExceedsCapacity, http.StatusConflict},
		{party.ErrExceedsMaxMembers, http.StatusBadRequest},
		{party.ErrInvalidCapacity, http.StatusBadRequest},
		{party.ErrLeaderNotMember, http.StatusBadRequest},
		{party.ErrNotMember, http.StatusBadRequest},
		{party.ErrKickSelf, http.StatusBadRequest},
		{party.ErrAppointSelf, http.StatusBadRequest},
		{party.ErrAppointTargetNotMember, http.StatusBadRequest},
		{shard.ErrClosed, http.StatusServiceUnavailable},
		{context.DeadlineExceeded, http.StatusServiceUnavailable},
		{fmt.Errorf("wrapped: %w", party.ErrTeamFull), http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, teamStatus(tt.err))
		})
	}
}

func TestPlayerIDConversions(t *testing.T) {
	ids := toPlayerIDs([]uint64{3, 1, 2})

	assert.Equal(t, []party.PlayerID{3, 1, 2}, ids)
	assert.Equal(t, []uint64{3, 1, 2}, fromPlayerIDs(ids))
	assert.Empty(t, toPlayerIDs(nil))
}
