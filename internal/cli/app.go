package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/miltrack/miltrack/internal/config"
	"github.com/miltrack/miltrack/internal/logging"
	"github.com/miltrack/miltrack/internal/onboarding"
	"github.com/miltrack/miltrack/internal/router"
	"github.com/miltrack/miltrack/internal/session"
)

// App is the interactive shell: the session controller, the onboarding
// flow, and the router, wired to the terminal.
type App struct {
	env  *session.Environment
	flow *onboarding.Flow
	nav  *router.Router

	reader *bufio.Reader
	out    io.Writer
	logger logging.Logger
}

// NewApp resolves the service layer from configuration and builds the shell.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	flags := config.DetectFeatureFlags(cfg)
	services, err := session.ResolveServices(ctx, cfg, flags, logger)
	if err != nil {
		return nil, err
	}

	return &App{
		env:    session.NewEnvironment(services, flags, logger),
		flow:   onboarding.NewFlow(),
		nav:    router.New(),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		logger: logger,
	}, nil
}

// Run starts the REPL and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to Miltrack (type 'help' for commands)")
	a.Status(ctx)
	runREPL(ctx, a, a.status, a.reader, a.out)
}

func (a *App) isLoggedIn() bool {
	return a.env.State().Authenticated
}

func (a *App) inOnboarding() bool {
	return a.flow.State() != onboarding.StateComplete
}

// status builds the prompt decoration, e.g. "(user@example.com auth)".
func (a *App) status() string {
	s := ""
	if st := a.env.State(); st.User != nil {
		s = st.User.Email
	}
	if a.inOnboarding() {
		if s != "" {
			s += " "
		}
		s += a.flow.State().String()
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Status prints where the user currently is.
func (a *App) Status(ctx context.Context) {
	st := a.env.State()

	if a.inOnboarding() {
		fmt.Fprintf(a.out, "Onboarding: %s (%.0f%%)\n", a.flow.State(), a.flow.Progress()*100)
		if a.flow.State() == onboarding.StateIntro {
			slide := a.flow.CurrentSlide()
			fmt.Fprintf(a.out, "  %s - %s\n  %s\n", slide.Title, slide.Subtitle, slide.Description)
		}
		if a.flow.State() == onboarding.StatePermissions {
			a.printPermissions()
		}
	} else {
		fmt.Fprintf(a.out, "Screen: %s\n", a.nav.Current().Title())
	}

	if st.ErrorMessage != "" {
		fmt.Fprintf(a.out, "Error: %s\n", st.ErrorMessage)
	}
}

func (a *App) printPermissions() {
	for _, p := range a.flow.Permissions() {
		mark := " "
		if p.Granted {
			mark = "x"
		}
		fmt.Fprintf(a.out, "  [%s] %s - %s\n", mark, p.ID, p.Description)
	}
}
