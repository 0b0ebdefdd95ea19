// Package onboarding implements the pre-authentication flow: a linear,
// skippable state machine driving intro slides, permission prompts, the
// auth gate, and profile setup.
package onboarding

// State is the current phase of the flow. Exactly one is active at a time;
// the lifecycle is one-directional and terminates at StateComplete.
type State int

const (
	StateIntro State = iota
	StatePermissions
	StateAuth
	StateProfileSetup
	StateComplete
)

var stateNames = map[State]string{
	StateIntro:        "intro",
	StatePermissions:  "permissions",
	StateAuth:         "auth",
	StateProfileSetup: "profile-setup",
	StateComplete:     "complete",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Fixed progress fractions for the post-intro states.
const (
	progressPermissions  = 0.4
	progressAuth         = 0.6
	progressProfileSetup = 0.8
	progressComplete     = 1.0
)
