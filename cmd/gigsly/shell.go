package main

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/gigsly/gigsly-client/internal/core/domain"
	"github.com/gigsly/gigsly-client/internal/core/service"
)

const shellHelp = `commands:
  open <path>                     visit a page
  where                           show the current page and pending intent
  login <email> <password>        log in and land on the intent or home page
  signup <name> <email> <password> [CLIENT|PROFESSIONAL]
  logout                          forget the session
  whoami                          show the current user
  can <action>                    check a gated action
  quit                            leave the shell
`

// shellCommand keeps one session and navigator alive across lines, so a
// page that bounced to login is resumed after logging in.
func shellCommand() *cli.Command {
	return &cli.Command{
		Name:  "shell",
		Usage: "Browse interactively with a single session",
		Action: withApp(func(ctx context.Context, cmd *cli.Command, a *app) error {
			if err := a.ready(ctx); err != nil {
				return err
			}
			sh := &shell{app: a}
			scanner := bufio.NewScanner(cmd.Root().Reader)

			sh.prompt()
			for scanner.Scan() {
				quit, err := sh.exec(ctx, strings.Fields(scanner.Text()))
				if err != nil {
					a.printf("error: %v\n", err)
				}
				if quit {
					return nil
				}
				sh.prompt()
			}
			return scanner.Err()
		}),
	}
}

type shell struct {
	*app
}

func (s *shell) prompt() {
	s.printf("gigsly:%s> ", s.nav.Current())
}

func (s *shell) exec(ctx context.Context, args []string) (bool, error) {
	if len(args) == 0 {
		return false, nil
	}

	switch name, rest := args[0], args[1:]; name {
	case "quit", "exit":
		return true, nil

	case "help":
		s.printf("%s", shellHelp)

	case "open":
		if len(rest) != 1 {
			return false, fmt.Errorf("usage: open <path>")
		}
		printDecision(s.app, s.nav.Navigate(rest[0]))

	case "where":
		if intent := s.nav.Intent(); intent != "" {
			s.printf("%s (pending %s)\n", s.nav.Current(), intent)
		} else {
			s.printf("%s\n", s.nav.Current())
		}

	case "login":
		if len(rest) != 2 {
			return false, fmt.Errorf("usage: login <email> <password>")
		}
		landing, err := s.nav.Login(ctx, rest[0], rest[1])
		if err != nil {
			return false, describeAuthError(err)
		}
		s.printf("logged in, now at %s\n", landing)

	case "signup":
		if len(rest) < 3 || len(rest) > 4 {
			return false, fmt.Errorf("usage: signup <name> <email> <password> [role]")
		}
		role := domain.RoleClient
		if len(rest) == 4 {
			role = domain.ParseRole(rest[3])
		}
		landing, err := s.nav.Signup(ctx, domain.SignupInput{
			FullName: rest[0],
			Email:    rest[1],
			Password: rest[2],
			Role:     role,
		})
		if err != nil {
			return false, describeAuthError(err)
		}
		s.printf("signed up, now at %s\n", landing)

	case "logout":
		s.session.Logout()
		// Re-check now so the next prompt does not wait on the event worker.
		s.nav.Resume()
		s.printf("logged out, now at %s\n", s.nav.Current())

	case "whoami":
		snap := s.session.Snapshot()
		if !snap.IsAuthenticated() {
			s.printf("%s\n", snap.State)
			return false, nil
		}
		s.printf("%s <%s> %s\n", snap.User.FullName, snap.User.Email, snap.User.Role)

	case "can":
		if len(rest) != 1 {
			return false, fmt.Errorf("usage: can <action>")
		}
		s.printf("%s\n", describeDecision(service.Resolve(domain.Action(rest[0]), s.session.User())))

	default:
		return false, fmt.Errorf("unknown command %q, try help", name)
	}
	return false, nil
}
