package onboarding

import "github.com/miltrack/miltrack/internal/models"

// Slide is one page of the intro deck.
type Slide struct {
	ID          string
	Title       string
	Subtitle    string
	Description string
}

// Permission is one permission prompt. Granted is user-toggled; Required
// entries block progression until granted.
type Permission struct {
	ID          string
	Title       string
	Description string
	Granted     bool
	Required    bool
}

// Draft is the transient profile-setup input. It is held only by the flow
// and discarded after submission; persistence is the caller's concern.
type Draft struct {
	Branch *models.Branch
	Rank   *string
	Unit   string
}

// Complete reports whether the draft can be submitted: branch and rank set,
// unit non-empty.
func (d Draft) Complete() bool {
	return d.Branch != nil && d.Rank != nil && d.Unit != ""
}

func defaultSlides() []Slide {
	return []Slide{
		{
			ID:          "mission",
			Title:       "Your Mission",
			Subtitle:    "Track Everything",
			Description: "Monitor your fitness, health, and readiness with military precision. Stay mission-ready with comprehensive tracking tools.",
		},
		{
			ID:          "all-in-one",
			Title:       "All-in-One",
			Subtitle:    "Complete Solution",
			Description: "From PT tests to sleep tracking, accountability to tools - everything you need in one secure platform.",
		},
		{
			ID:          "secure",
			Title:       "Secure & Private",
			Subtitle:    "Your Data, Protected",
			Description: "Military-grade security with end-to-end encryption. Your data stays private and secure, always.",
		},
	}
}

func defaultPermissions() []Permission {
	return []Permission{
		{
			ID:          "notifications",
			Title:       "Notifications",
			Description: "Get reminders for PT tests, health check-ins, and important updates.",
		},
		{
			ID:          "health-data",
			Title:       "Health Data",
			Description: "Sync with your health platform to track sleep, heart rate, and fitness metrics.",
		},
	}
}
