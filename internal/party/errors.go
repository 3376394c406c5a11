package party

import "errors"

// Code is the numeric result code reported to game clients.
type Code uint32

const (
	CodeOK                    Code = 0
	CodeTeamListFull          Code = 3001
	CodeTeamNotFound          Code = 3002
	CodeAlreadyInTeam         Code = 3003
	CodeExceedsMaxMemberCount Code = 3004
	CodeTeamFull              Code = 3005
	CodeBatchExceedsCapacity  Code = 3006
	CodeNotMember             Code = 3007
	CodeKickNotLeader         Code = 3008
	CodeKickSelf              Code = 3009
	CodeDismissNotLeader      Code = 3010
	CodeAppointSelf           Code = 3011
	CodePlayerNotFound        Code = 3012
	CodeUnknown               Code = 3999
)

// Error is a team operation failure with a stable result code.
type Error struct {
	code Code
	msg  string
}

func (e *Error) Error() string { return e.msg }

// Code returns the client-facing result code.
func (e *Error) Code() Code { return e.code }

func newError(code Code, msg string) *Error {
	return &Error{code: code, msg: msg}
}

var (
	ErrTeamListFull         = newError(CodeTeamListFull, "team list is full")
	ErrTeamNotFound         = newError(CodeTeamNotFound, "team not found")
	ErrAlreadyInTeam        = newError(CodeAlreadyInTeam, "player is already in a team")
	ErrExceedsMaxMembers    = newError(CodeExceedsMaxMemberCount, "member list exceeds team capacity")
	ErrTeamFull             = newError(CodeTeamFull, "team is full")
	ErrBatchExceedsCapacity = newError(CodeBatchExceedsCapacity, "member list exceeds remaining capacity")
	ErrNotMember            = newError(CodeNotMember, "player is not a member of the team")
	ErrKickNotLeader        = newError(CodeKickNotLeader, "only the leader can kick members")
	ErrKickSelf             = newError(CodeKickSelf, "leader cannot kick themselves")
	ErrDismissNotLeader     = newError(CodeDismissNotLeader, "only the leader can disband the team")
	ErrAppointSelf          = newError(CodeAppointSelf, "player is already the leader")
	ErrPlayerNotFound       = newError(CodePlayerNotFound, "player not found")

	// The two appoint failures below keep the result codes game clients
	// already branch on: a non-member target reports team-not-found and a
	// non-leader requester reports appoint-self.
	ErrAppointTargetNotMember = newError(CodeTeamNotFound, "new leader is not a member of the team")
	ErrAppointNotLeader       = newError(CodeAppointSelf, "only the leader can appoint a new leader")

	// ErrInvalidCapacity reports a capacity outside the supported tiers.
	ErrInvalidCapacity = newError(CodeExceedsMaxMemberCount, "unsupported team capacity")
	// ErrLeaderNotMember reports a create request whose member list omits the leader.
	ErrLeaderNotMember = newError(CodeNotMember, "leader must be included in the member list")
)

// CodeOf maps err to its result code. nil maps to CodeOK and errors that
// did not originate in this package map to CodeUnknown.
func CodeOf(err error) Code {
	if err == nil {
		return CodeOK
	}
	var perr *Error
	if errors.As(err, &perr) {
		return perr.code
	}
	return CodeUnknown
}
