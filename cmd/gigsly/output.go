package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/gigsly/gigsly-client/internal/core/domain"
	"github.com/gigsly/gigsly-client/internal/infrastructure/gateway"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func (a *app) printTasks(tasks []domain.Task) error {
	if a.asJSON {
		return a.printJSON(tasks)
	}
	if len(tasks) == 0 {
		a.printf("No tasks.\n")
		return nil
	}
	w := newTable(a.out)
	fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tPRIORITY\tBUDGET\tCLIENT\tASSIGNED")
	for _, t := range tasks {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID, t.Title, t.Status, t.Priority, budget(t.BudgetMin, t.BudgetMax),
			dash(t.ClientName), dash(t.AssignedProfessionalName))
	}
	return w.Flush()
}

func (a *app) printProposals(proposals []domain.Proposal) error {
	if a.asJSON {
		return a.printJSON(proposals)
	}
	if len(proposals) == 0 {
		a.printf("No proposals.\n")
		return nil
	}
	w := newTable(a.out)
	fmt.Fprintln(w, "ID\tTASK\tPROFESSIONAL\tAMOUNT\tSTATUS")
	for _, p := range proposals {
		task := dash(p.TaskTitle)
		if task == "-" {
			task = "#" + strconv.FormatInt(p.TaskID, 10)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", p.ID, task, dash(p.ProfessionalName), money(p.ProposedAmount), p.Status)
	}
	return w.Flush()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func money(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

func budget(lo, hi *float64) string {
	switch {
	case lo == nil && hi == nil:
		return "-"
	case lo == nil:
		return "up to " + money(hi)
	case hi == nil:
		return "from " + money(lo)
	}
	return money(lo) + "-" + money(hi)
}

// describeAPIError turns backend rejections of marketplace calls into
// user-facing text.
func describeAPIError(err error) error {
	var apiErr *gateway.APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	switch apiErr.Status {
	case http.StatusBadRequest:
		if lines := apiErr.FieldMessages(); len(lines) > 0 {
			return fmt.Errorf("please fix the following:\n  %s", strings.Join(lines, "\n  "))
		}
	case http.StatusUnauthorized:
		return errors.New("your session has expired, run `gigsly login` to continue")
	case http.StatusForbidden, http.StatusNotFound, http.StatusConflict, http.StatusUnprocessableEntity:
		if apiErr.Message != "" {
			return errors.New(apiErr.Message)
		}
	}
	return err
}
