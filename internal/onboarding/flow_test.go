package onboarding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miltrack/miltrack/internal/models"
)

func TestAdvanceWalksAllStates(t *testing.T) {
	f := NewFlow()

	want := []State{StateIntro, StatePermissions, StateAuth, StateProfileSetup, StateComplete}
	for _, s := range want {
		assert.Equal(t, s, f.State())
		f.Advance()
	}

	// Terminal: no forward transition.
	assert.Equal(t, StateComplete, f.State())
	f.Advance()
	assert.Equal(t, StateComplete, f.State())
}

func TestAdvanceThenRetreatRestoresState(t *testing.T) {
	states := []State{StateIntro, StatePermissions, StateAuth, StateProfileSetup, StateComplete}

	for _, start := range states {
		f := NewFlow()
		f.state = start

		f.Advance()
		f.Retreat()

		switch start {
		case StateComplete:
			// Advance was the no-op; Retreat steps back.
			assert.Equal(t, StateProfileSetup, f.State())
		default:
			assert.Equal(t, start, f.State(), "from %v", start)
		}
	}
}

func TestRetreatIsNoOpAtIntro(t *testing.T) {
	f := NewFlow()
	f.Retreat()
	assert.Equal(t, StateIntro, f.State())
}

func TestSkipsAndComplete(t *testing.T) {
	f := NewFlow()
	f.SkipToAuth()
	assert.Equal(t, StateAuth, f.State())

	f = NewFlow()
	f.SkipToProfileSetup()
	assert.Equal(t, StateProfileSetup, f.State())

	f = NewFlow()
	f.NextSlide()
	f.Complete()
	assert.Equal(t, StateComplete, f.State())
}

func TestSlideNavigation(t *testing.T) {
	f := NewFlow()
	require.Len(t, f.Slides(), 3)
	assert.Equal(t, "mission", f.CurrentSlide().ID)

	f.PreviousSlide() // no-op at first slide
	assert.Equal(t, 0, f.SlideIndex())

	f.NextSlide()
	f.NextSlide()
	assert.Equal(t, "secure", f.CurrentSlide().ID)
	assert.Equal(t, StateIntro, f.State())

	// Past the last slide the flow leaves intro.
	f.NextSlide()
	assert.Equal(t, StatePermissions, f.State())

	f.PreviousSlide()
	assert.Equal(t, 2, f.SlideIndex())
}

func TestTogglePermission(t *testing.T) {
	f := NewFlow()

	f.TogglePermission("notifications")
	perms := f.Permissions()
	assert.True(t, perms[0].Granted)

	f.TogglePermission("notifications")
	assert.False(t, f.Permissions()[0].Granted)

	// Unknown id is a no-op.
	f.TogglePermission("location")
	for _, p := range f.Permissions() {
		assert.False(t, p.Granted)
	}
}

func TestCanProceedFromPermissions(t *testing.T) {
	f := NewFlow()
	// Default prompts are all optional.
	assert.True(t, f.CanProceedFromPermissions())

	f.permissions = []Permission{{ID: "a", Required: true}}
	assert.False(t, f.CanProceedFromPermissions())

	f.TogglePermission("a")
	assert.True(t, f.CanProceedFromPermissions())

	f.permissions = nil
	assert.True(t, f.CanProceedFromPermissions())
}

func TestDraftCompleteness(t *testing.T) {
	f := NewFlow()
	assert.False(t, f.CanProceedFromProfile())

	f.SetBranch(models.BranchArmy)
	f.SetRank("E-4")
	assert.False(t, f.CanProceedFromProfile())

	f.SetUnit("1st Battalion")
	assert.True(t, f.CanProceedFromProfile())

	d := f.Draft()
	require.NotNil(t, d.Branch)
	assert.Equal(t, models.BranchArmy, *d.Branch)
}

func TestProgress(t *testing.T) {
	f := NewFlow()
	assert.InDelta(t, 0.0, f.Progress(), 1e-9)

	f.NextSlide()
	assert.InDelta(t, 1.0/3.0, f.Progress(), 1e-9)

	f.state = StatePermissions
	assert.InDelta(t, 0.4, f.Progress(), 1e-9)
	f.state = StateAuth
	assert.InDelta(t, 0.6, f.Progress(), 1e-9)
	f.state = StateProfileSetup
	assert.InDelta(t, 0.8, f.Progress(), 1e-9)
	f.state = StateComplete
	assert.InDelta(t, 1.0, f.Progress(), 1e-9)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "intro", StateIntro.String())
	assert.Equal(t, "profile-setup", StateProfileSetup.String())
	assert.Equal(t, "unknown", State(99).String())
}
