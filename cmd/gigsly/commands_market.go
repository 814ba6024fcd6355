package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/gigsly/gigsly-client/internal/core/domain"
)

func tasksCommand() *cli.Command {
	return &cli.Command{
		Name:  "tasks",
		Usage: "Browse posted tasks",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "status", Usage: "OPEN, IN_PROGRESS, COMPLETED, CANCELLED or CLOSED"},
		},
		Action: withApp(func(ctx context.Context, cmd *cli.Command, a *app) error {
			if err := a.enter(ctx, domain.PathBrowse, domain.ActionBrowseTasks); err != nil {
				return err
			}
			tasks, err := a.market.ListTasks(ctx, domain.TaskStatus(strings.ToUpper(cmd.String("status"))))
			if err != nil {
				return err
			}
			return a.printTasks(tasks)
		}),
	}
}

func findWorkCommand() *cli.Command {
	return &cli.Command{
		Name:  "find-work",
		Usage: "List open tasks you can apply for",
		Action: withApp(func(ctx context.Context, cmd *cli.Command, a *app) error {
			if err := a.enter(ctx, domain.PathFindWork, domain.ActionFindWork); err != nil {
				return err
			}
			tasks, err := a.market.ListTasks(ctx, domain.TaskOpen)
			if err != nil {
				return err
			}
			return a.printTasks(tasks)
		}),
	}
}

func postTaskCommand() *cli.Command {
	return &cli.Command{
		Name:  "post-task",
		Usage: "Post a new task for professionals to bid on",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Required: true},
			&cli.StringFlag{Name: "description", Required: true},
			&cli.Int64Flag{Name: "category", Usage: "Category id"},
			&cli.FloatFlag{Name: "budget-min"},
			&cli.FloatFlag{Name: "budget-max"},
			&cli.StringFlag{Name: "priority", Usage: "LOW, MEDIUM, HIGH or URGENT"},
			&cli.StringFlag{Name: "deadline", Usage: "RFC 3339 timestamp or YYYY-MM-DD"},
			&cli.StringFlag{Name: "skills", Usage: "Comma separated required skills"},
			&cli.StringFlag{Name: "location"},
			&cli.BoolFlag{Name: "remote"},
			&cli.StringFlag{Name: "duration", Usage: "Estimated duration, e.g. \"2 days\""},
		},
		Action: withApp(func(ctx context.Context, cmd *cli.Command, a *app) error {
			if err := a.enter(ctx, domain.PathPostTask, domain.ActionPostTask); err != nil {
				return err
			}

			draft := domain.TaskDraft{
				Title:             cmd.String("title"),
				Description:       cmd.String("description"),
				Priority:          domain.TaskPriority(strings.ToUpper(cmd.String("priority"))),
				RequiredSkills:    cmd.String("skills"),
				Location:          cmd.String("location"),
				Remote:            cmd.Bool("remote"),
				EstimatedDuration: cmd.String("duration"),
			}
			if cmd.IsSet("category") {
				id := cmd.Int64("category")
				draft.CategoryID = &id
			}
			draft.BudgetMin = optionalFloat(cmd, "budget-min")
			draft.BudgetMax = optionalFloat(cmd, "budget-max")
			if raw := cmd.String("deadline"); raw != "" {
				deadline, err := parseDeadline(raw)
				if err != nil {
					return err
				}
				draft.Deadline = &deadline
			}

			task, err := a.market.PostTask(ctx, draft)
			if err != nil {
				return describeAPIError(err)
			}
			if a.asJSON {
				return a.printJSON(task)
			}
			a.printf("Posted task #%d %q (%s)\n", task.ID, task.Title, task.Status)
			return nil
		}),
	}
}

func myTasksCommand() *cli.Command {
	return &cli.Command{
		Name:  "my-tasks",
		Usage: "List tasks you posted or were assigned",
		Action: withApp(func(ctx context.Context, cmd *cli.Command, a *app) error {
			if err := a.enter(ctx, domain.PathDashboardTasks, domain.ActionMyTasks); err != nil {
				return err
			}
			tasks, err := a.market.MyTasks(ctx)
			if err != nil {
				return err
			}
			return a.printTasks(tasks)
		}),
	}
}

func taskStatusCommand() *cli.Command {
	return &cli.Command{
		Name:      "task-status",
		Usage:     "Move one of your tasks to a new status",
		ArgsUsage: "<task-id> <status>",
		Action: withApp(func(ctx context.Context, cmd *cli.Command, a *app) error {
			id, err := idArg(cmd, 0, "task id")
			if err != nil {
				return err
			}
			status := domain.TaskStatus(strings.ToUpper(cmd.Args().Get(1)))
			if status == "" {
				return errors.New("a status is required")
			}
			if err := a.enter(ctx, domain.PathDashboardTasks, domain.ActionMyTasks); err != nil {
				return err
			}
			task, err := a.market.UpdateTaskStatus(ctx, id, status)
			if err != nil {
				return describeAPIError(err)
			}
			a.printf("Task #%d is now %s\n", task.ID, task.Status)
			return nil
		}),
	}
}

func applyCommand() *cli.Command {
	return &cli.Command{
		Name:  "apply",
		Usage: "Send a proposal for an open task",
		Flags: []cli.Flag{
			&cli.Int64Flag{Name: "task", Required: true, Usage: "Task id"},
			&cli.StringFlag{Name: "message", Required: true},
			&cli.FloatFlag{Name: "amount", Usage: "Proposed amount"},
			&cli.StringFlag{Name: "duration", Usage: "Estimated duration"},
		},
		Action: withApp(func(ctx context.Context, cmd *cli.Command, a *app) error {
			if err := a.enter(ctx, domain.PathFindWork, domain.ActionApply); err != nil {
				return err
			}
			p, err := a.market.SubmitProposal(ctx, domain.ProposalDraft{
				TaskID:            cmd.Int64("task"),
				Message:           cmd.String("message"),
				ProposedAmount:    optionalFloat(cmd, "amount"),
				EstimatedDuration: cmd.String("duration"),
			})
			if err != nil {
				return describeAPIError(err)
			}
			if a.asJSON {
				return a.printJSON(p)
			}
			a.printf("Proposal #%d sent for task #%d (%s)\n", p.ID, p.TaskID, p.Status)
			return nil
		}),
	}
}

func myProposalsCommand() *cli.Command {
	return &cli.Command{
		Name:  "my-proposals",
		Usage: "List the proposals you sent",
		Action: withApp(func(ctx context.Context, cmd *cli.Command, a *app) error {
			if err := a.enter(ctx, domain.PathDashboardProposals, domain.ActionMyProposals); err != nil {
				return err
			}
			proposals, err := a.market.MyProposals(ctx)
			if err != nil {
				return err
			}
			return a.printProposals(proposals)
		}),
	}
}

func taskProposalsCommand() *cli.Command {
	return &cli.Command{
		Name:      "task-proposals",
		Usage:     "List proposals received on one of your tasks",
		ArgsUsage: "<task-id>",
		Action: withApp(func(ctx context.Context, cmd *cli.Command, a *app) error {
			id, err := idArg(cmd, 0, "task id")
			if err != nil {
				return err
			}
			if err := a.enter(ctx, domain.PathDashboardTasks, domain.ActionManageTaskProposals); err != nil {
				return err
			}
			proposals, err := a.market.TaskProposals(ctx, id)
			if err != nil {
				return describeAPIError(err)
			}
			return a.printProposals(proposals)
		}),
	}
}

// proposalDecisionCommand builds accept, reject and withdraw. Clients decide
// on proposals from the tasks dashboard; professionals withdraw from theirs.
func proposalDecisionCommand(name, usage string, status domain.ProposalStatus) *cli.Command {
	page, action := domain.PathDashboardTasks, domain.ActionManageTaskProposals
	if status == domain.ProposalWithdrawn {
		page, action = domain.PathDashboardProposals, domain.ActionMyProposals
	}

	return &cli.Command{
		Name:      name,
		Usage:     usage,
		ArgsUsage: "<proposal-id>",
		Action: withApp(func(ctx context.Context, cmd *cli.Command, a *app) error {
			id, err := idArg(cmd, 0, "proposal id")
			if err != nil {
				return err
			}
			if err := a.enter(ctx, page, action); err != nil {
				return err
			}
			p, err := a.market.UpdateProposalStatus(ctx, id, status)
			if err != nil {
				return describeAPIError(err)
			}
			a.printf("Proposal #%d is now %s\n", p.ID, p.Status)
			return nil
		}),
	}
}

func feedbackCommand() *cli.Command {
	return &cli.Command{
		Name:  "feedback",
		Usage: "Rate the other participant of a task",
		Flags: []cli.Flag{
			&cli.Int64Flag{Name: "task", Required: true},
			&cli.Int64Flag{Name: "reviewee", Required: true, Usage: "User id of the person you are reviewing"},
			&cli.IntFlag{Name: "rating", Required: true, Usage: "1 to 5"},
			&cli.StringFlag{Name: "comment"},
		},
		Action: withApp(func(ctx context.Context, cmd *cli.Command, a *app) error {
			if err := a.enter(ctx, domain.PathGiveFeedback, domain.ActionLeaveFeedback); err != nil {
				return err
			}
			err := a.market.LeaveReview(ctx, domain.Review{
				TaskID:     cmd.Int64("task"),
				RevieweeID: cmd.Int64("reviewee"),
				Rating:     int(cmd.Int("rating")),
				Comment:    cmd.String("comment"),
			})
			if err != nil {
				return describeAPIError(err)
			}
			a.printf("Thanks for your feedback.\n")
			return nil
		}),
	}
}

// profileCommand opens the professional profile page. Editing happens on the
// web; here the page shows what the backend holds for the current session.
func profileCommand() *cli.Command {
	return &cli.Command{
		Name:  "create-profile",
		Usage: "Show your professional profile",
		Action: withApp(func(ctx context.Context, cmd *cli.Command, a *app) error {
			if err := a.enter(ctx, domain.PathCreateProfile, domain.ActionUpdateProfile); err != nil {
				return err
			}
			u := a.session.User()
			if a.asJSON {
				return a.printJSON(u)
			}
			w := newTable(a.out)
			fmt.Fprintf(w, "name\t%s\n", u.FullName)
			fmt.Fprintf(w, "category\t%s\n", dash(u.PrimaryCategory))
			fmt.Fprintf(w, "skills\t%s\n", dash(strings.Join(u.Skills, ", ")))
			fmt.Fprintf(w, "hourly rate\t%s\n", money(u.HourlyRate))
			fmt.Fprintf(w, "location\t%s\n", dash(u.Location))
			fmt.Fprintf(w, "bio\t%s\n", dash(u.Bio))
			return w.Flush()
		}),
	}
}

func professionalsCommand() *cli.Command {
	return &cli.Command{
		Name:  "professionals",
		Usage: "List professionals available for hire",
		Action: withApp(func(ctx context.Context, cmd *cli.Command, a *app) error {
			if err := a.enter(ctx, domain.PathProfessionals, ""); err != nil {
				return err
			}
			users, err := a.market.ListProfessionals(ctx)
			if err != nil {
				return err
			}
			if a.asJSON {
				return a.printJSON(users)
			}
			w := newTable(a.out)
			fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tRATE\tLOCATION")
			for _, u := range users {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", u.ID, u.FullName, dash(u.PrimaryCategory), money(u.HourlyRate), dash(u.Location))
			}
			return w.Flush()
		}),
	}
}

func categoriesCommand() *cli.Command {
	return &cli.Command{
		Name:  "categories",
		Usage: "List task categories",
		Action: withApp(func(ctx context.Context, cmd *cli.Command, a *app) error {
			categories, err := a.market.ListCategories(ctx)
			if err != nil {
				return err
			}
			if a.asJSON {
				return a.printJSON(categories)
			}
			w := newTable(a.out)
			fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION")
			for _, c := range categories {
				fmt.Fprintf(w, "%d\t%s\t%s\n", c.ID, c.Name, dash(c.Description))
			}
			return w.Flush()
		}),
	}
}

func contactCommand() *cli.Command {
	return &cli.Command{
		Name:  "contact",
		Usage: "Send a message to the Gigsly team",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Required: true},
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "subject"},
			&cli.StringFlag{Name: "message", Required: true},
		},
		Action: withApp(func(ctx context.Context, cmd *cli.Command, a *app) error {
			err := a.market.SendContactQuery(ctx, domain.ContactQuery{
				Name:    cmd.String("name"),
				Email:   cmd.String("email"),
				Subject: cmd.String("subject"),
				Message: cmd.String("message"),
			})
			if err != nil {
				return describeAPIError(err)
			}
			a.printf("Message sent. We will get back to you by email.\n")
			return nil
		}),
	}
}

func idArg(cmd *cli.Command, i int, what string) (int64, error) {
	raw := cmd.Args().Get(i)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("a positive %s is required, got %q", what, raw)
	}
	return id, nil
}

func optionalFloat(cmd *cli.Command, name string) *float64 {
	if !cmd.IsSet(name) {
		return nil
	}
	v := cmd.Float(name)
	return &v
}

func parseDeadline(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, raw, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("deadline %q: use RFC 3339 or YYYY-MM-DD", raw)
	}
	// A date-only deadline means the end of that day.
	return t.Add(24*time.Hour - time.Second), nil
}
