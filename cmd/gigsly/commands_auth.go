package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/gigsly/gigsly-client/internal/core/domain"
	"github.com/gigsly/gigsly-client/internal/core/service"
)

func loginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Log in with email and password",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "password", Required: true, Sources: cli.EnvVars("GIGSLY_PASSWORD")},
		},
		Action: withApp(func(ctx context.Context, cmd *cli.Command, a *app) error {
			if err := a.ready(ctx); err != nil {
				return err
			}
			landing, err := a.nav.Login(ctx, cmd.String("email"), cmd.String("password"))
			if err != nil {
				return describeAuthError(err)
			}
			u := a.session.User()
			a.printf("Logged in as %s (%s). Next: %s\n", u.FullName, u.Role, landing)
			return nil
		}),
	}
}

func signupCommand() *cli.Command {
	return &cli.Command{
		Name:  "signup",
		Usage: "Create a client or professional account",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Required: true, Usage: "Full name"},
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "password", Required: true, Sources: cli.EnvVars("GIGSLY_PASSWORD")},
			&cli.StringFlag{Name: "role", Value: string(domain.RoleClient), Usage: "CLIENT or PROFESSIONAL"},
		},
		Action: withApp(func(ctx context.Context, cmd *cli.Command, a *app) error {
			if err := a.ready(ctx); err != nil {
				return err
			}
			landing, err := a.nav.Signup(ctx, domain.SignupInput{
				FullName: cmd.String("name"),
				Email:    cmd.String("email"),
				Password: cmd.String("password"),
				Role:     domain.ParseRole(cmd.String("role")),
			})
			if err != nil {
				return describeAuthError(err)
			}
			u := a.session.User()
			a.printf("Welcome to Gigsly, %s (%s). Next: %s\n", u.FullName, u.Role, landing)
			return nil
		}),
	}
}

func logoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "Forget the stored session",
		Action: withApp(func(ctx context.Context, cmd *cli.Command, a *app) error {
			a.session.Logout()
			a.printf("Logged out.\n")
			return nil
		}),
	}
}

func whoamiCommand() *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "Show the current session",
		Action: withApp(func(ctx context.Context, cmd *cli.Command, a *app) error {
			if err := a.ready(ctx); err != nil {
				return err
			}
			s := a.session.Snapshot()
			if a.asJSON {
				return a.printJSON(map[string]any{"state": s.State.String(), "user": s.User})
			}
			if !s.IsAuthenticated() {
				a.printf("Not logged in.\n")
				return nil
			}
			a.printf("%s <%s>\nrole: %s\nid: %d\n", s.User.FullName, s.User.Email, s.User.Role, s.User.ID)
			return nil
		}),
	}
}

func openCommand() *cli.Command {
	return &cli.Command{
		Name:      "open",
		Usage:     "Check whether a page can be opened with the current session",
		ArgsUsage: "<path>",
		Action: withApp(func(ctx context.Context, cmd *cli.Command, a *app) error {
			path := cmd.Args().First()
			if path == "" {
				return errors.New("a path is required, e.g. gigsly open /browse")
			}
			if err := a.ready(ctx); err != nil {
				return err
			}
			printDecision(a, a.nav.Navigate(path))
			return nil
		}),
	}
}

func canCommand() *cli.Command {
	return &cli.Command{
		Name:      "can",
		Usage:     "Check whether the current user may perform an action",
		ArgsUsage: "<action>",
		Action: withApp(func(ctx context.Context, cmd *cli.Command, a *app) error {
			action := domain.Action(cmd.Args().First())
			if action == "" {
				return fmt.Errorf("an action is required, one of: %s", actionNames())
			}
			if err := a.ready(ctx); err != nil {
				return err
			}
			d := service.Resolve(action, a.session.User())
			if a.asJSON {
				return a.printJSON(map[string]any{"action": action, "outcome": d.Outcome.String(), "notice": d.Notice})
			}
			a.printf("%s\n", describeDecision(d))
			return nil
		}),
	}
}

func actionsCommand() *cli.Command {
	return &cli.Command{
		Name:  "actions",
		Usage: "List every gated action and whether the current user may perform it",
		Action: withApp(func(ctx context.Context, cmd *cli.Command, a *app) error {
			if err := a.ready(ctx); err != nil {
				return err
			}
			user := a.session.User()
			w := newTable(a.out)
			fmt.Fprintln(w, "ACTION\tVERDICT")
			for _, action := range domain.Actions() {
				fmt.Fprintf(w, "%s\t%s\n", action, describeDecision(service.Resolve(action, user)))
			}
			return w.Flush()
		}),
	}
}

func printDecision(a *app, d domain.GuardDecision) {
	switch d.Outcome {
	case domain.GuardRedirect:
		a.printf("redirect -> %s (will return to %s after login)\n", d.Location, d.Intent)
	case domain.GuardLoading:
		a.printf("loading %s\n", d.Location)
	default:
		a.printf("render %s\n", d.Location)
	}
}

func describeDecision(d domain.Decision) string {
	switch d.Outcome {
	case domain.OutcomeProceed:
		return "allowed"
	case domain.OutcomeRedirectToAuth:
		return "log in required"
	default:
		return d.Notice.Title + ": " + d.Notice.Description
	}
}

func actionNames() string {
	names := make([]string, 0, len(domain.AccessRules))
	for _, a := range domain.Actions() {
		names = append(names, string(a))
	}
	return strings.Join(names, ", ")
}

// describeAuthError turns login and signup failures into user-facing text.
func describeAuthError(err error) error {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return fmt.Errorf("please fix the following:\n  %s", strings.Join(ve.Messages, "\n  "))
	case errors.Is(err, domain.ErrInvalidCredentials):
		return errors.New("invalid email or password")
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return errors.New("an account with this email already exists")
	}
	return err
}
