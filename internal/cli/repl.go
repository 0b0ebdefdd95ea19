package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a
// lightweight stub.
type execIface interface {
	isLoggedIn() bool
	inOnboarding() bool

	Status(ctx context.Context)
	Next(ctx context.Context)
	Back(ctx context.Context)
	Skip(ctx context.Context)
	Grant(ctx context.Context, id string)

	Login(ctx context.Context) error
	Register(ctx context.Context) error
	Guest(ctx context.Context)
	Profile(ctx context.Context) error
	Logout(ctx context.Context)
	Whoami(ctx context.Context)

	Goto(ctx context.Context, name string)
	Root(ctx context.Context)
}

// runREPL reads a line, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF or when the user types "exit" or "quit".
//
// Command handlers print their own errors; the loop stays up regardless of
// what a handler returns.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	for {
		fmt.Fprintf(out, "miltrack %s> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.inOnboarding() {
				fmt.Fprintln(out, "Available commands: status, next, back, skip, grant <id>, login, register, guest, profile, exit")
			} else if a.isLoggedIn() {
				fmt.Fprintln(out, "Available commands: status, goto <screen>, back, root, whoami, logout, exit")
			} else {
				fmt.Fprintln(out, "Available commands: status, login, register, guest, exit")
			}

		case "status":
			a.Status(ctx)

		case "next":
			a.Next(ctx)

		case "back":
			a.Back(ctx)

		case "skip":
			a.Skip(ctx)

		case "grant":
			if len(args) == 0 {
				fmt.Fprintln(out, "Usage: grant <permission-id>")
				continue
			}
			a.Grant(ctx, args[0])

		case "login":
			_ = a.Login(ctx)

		case "register":
			_ = a.Register(ctx)

		case "guest":
			a.Guest(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "goto":
			if len(args) == 0 {
				fmt.Fprintln(out, "Usage: goto <screen>")
				continue
			}
			a.Goto(ctx, args[0])

		case "root":
			a.Root(ctx)

		case "whoami":
			a.Whoami(ctx)

		case "logout":
			a.Logout(ctx)

		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return

		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}
	}
}
