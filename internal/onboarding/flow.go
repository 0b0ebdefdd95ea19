package onboarding

import "github.com/miltrack/miltrack/internal/models"

// Flow is the onboarding state machine. It is owned by a single caller (the
// shell) for its whole lifetime and is never resumed after completing.
type Flow struct {
	state       State
	slideIndex  int
	slides      []Slide
	permissions []Permission
	draft       Draft
}

// NewFlow starts at the first intro slide with the standard deck and
// permission prompts, nothing granted.
func NewFlow() *Flow {
	return &Flow{
		slides:      defaultSlides(),
		permissions: defaultPermissions(),
	}
}

// State returns the current phase.
func (f *Flow) State() State { return f.state }

// Advance moves one phase forward. No-op at complete.
func (f *Flow) Advance() {
	if f.state < StateComplete {
		f.state++
	}
}

// Retreat moves one phase back. No-op at intro.
func (f *Flow) Retreat() {
	if f.state > StateIntro {
		f.state--
	}
}

// SkipToAuth jumps straight to the auth gate, bypassing permissions.
func (f *Flow) SkipToAuth() { f.state = StateAuth }

// SkipToProfileSetup jumps straight to profile setup. Used after a
// registration that already carries credentials.
func (f *Flow) SkipToProfileSetup() { f.state = StateProfileSetup }

// Complete forces the terminal state from anywhere ("skip for now").
func (f *Flow) Complete() { f.state = StateComplete }

// Slides returns the intro deck.
func (f *Flow) Slides() []Slide { return f.slides }

// SlideIndex returns the current intro slide position.
func (f *Flow) SlideIndex() int { return f.slideIndex }

// CurrentSlide returns the slide under the cursor.
func (f *Flow) CurrentSlide() Slide { return f.slides[f.slideIndex] }

// NextSlide moves to the next intro slide; past the last slide it advances
// the flow to permissions.
func (f *Flow) NextSlide() {
	if f.slideIndex < len(f.slides)-1 {
		f.slideIndex++
		return
	}
	f.state = StatePermissions
}

// PreviousSlide moves back one intro slide. No-op at the first.
func (f *Flow) PreviousSlide() {
	if f.slideIndex > 0 {
		f.slideIndex--
	}
}

// Permissions returns a copy of the prompt list.
func (f *Flow) Permissions() []Permission {
	return append([]Permission(nil), f.permissions...)
}

// TogglePermission flips the granted flag for the matching entry. No-op
// when the id is unknown.
func (f *Flow) TogglePermission(id string) {
	for i := range f.permissions {
		if f.permissions[i].ID == id {
			f.permissions[i].Granted = !f.permissions[i].Granted
			return
		}
	}
}

// CanProceedFromPermissions is true when every required entry is granted.
// Optional entries never block; an empty list passes.
func (f *Flow) CanProceedFromPermissions() bool {
	for _, p := range f.permissions {
		if p.Required && !p.Granted {
			return false
		}
	}
	return true
}

// SetBranch records the draft's service branch.
func (f *Flow) SetBranch(b models.Branch) { f.draft.Branch = &b }

// SetRank records the draft's rank.
func (f *Flow) SetRank(r string) { f.draft.Rank = &r }

// SetUnit records the draft's unit.
func (f *Flow) SetUnit(u string) { f.draft.Unit = u }

// Draft returns the current profile-setup input.
func (f *Flow) Draft() Draft { return f.draft }

// CanProceedFromProfile is true when the draft is submittable.
func (f *Flow) CanProceedFromProfile() bool { return f.draft.Complete() }

// Progress is the UI progress fraction: slide position during intro, fixed
// fractions afterwards.
func (f *Flow) Progress() float64 {
	switch f.state {
	case StateIntro:
		return float64(f.slideIndex) / float64(len(f.slides))
	case StatePermissions:
		return progressPermissions
	case StateAuth:
		return progressAuth
	case StateProfileSetup:
		return progressProfileSetup
	default:
		return progressComplete
	}
}
