package party

const (
	// DefaultMaxTeams is the ceiling on live teams per manager.
	DefaultMaxTeams = 10000
	// DefaultMaxApplicants bounds each team's applicant queue.
	DefaultMaxApplicants = 20
)

// RemoveReason says why a member left a team.
type RemoveReason string

const (
	ReasonLeave   RemoveReason = "leave"
	ReasonKick    RemoveReason = "kick"
	ReasonDisband RemoveReason = "disband"
)

// Hooks are invoked synchronously from inside Manager operations, after
// the corresponding mutation. Nil fields are skipped.
type Hooks struct {
	OnTeamCreated      func(team TeamID, leader PlayerID)
	OnMemberAdded      func(team TeamID, player PlayerID)
	OnMemberRemoved    func(team TeamID, player PlayerID, reason RemoveReason)
	OnLeaderChanged    func(team TeamID, from, to PlayerID)
	OnTeamDestroyed    func(team TeamID)
	OnApplicantAdded   func(team TeamID, player PlayerID)
	OnApplicantRemoved func(team TeamID, player PlayerID)
	OnApplicantEvicted func(team TeamID, player PlayerID)
	OnApplicantsClear  func(team TeamID)
}

// Option configures a Manager.
type Option func(*managerConfig)

type managerConfig struct {
	maxTeams      int
	maxApplicants int
	hooks         Hooks
}

// WithMaxTeams overrides DefaultMaxTeams. Values below 1 are ignored.
func WithMaxTeams(n int) Option {
	return func(c *managerConfig) {
		if n > 0 {
			c.maxTeams = n
		}
	}
}

// WithMaxApplicants overrides DefaultMaxApplicants. Values below 1 are ignored.
func WithMaxApplicants(n int) Option {
	return func(c *managerConfig) {
		if n > 0 {
			c.maxApplicants = n
		}
	}
}

func WithHooks(h Hooks) Option {
	return func(c *managerConfig) {
		c.hooks = h
	}
}
