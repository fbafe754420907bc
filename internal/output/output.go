// internal/output/output.go
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github-issue-tracker/internal/model"
)

// UI writes human-oriented command output.
type UI struct {
	Out    io.Writer
	ErrOut io.Writer
}

// New creates a UI with default stdout/stderr writers.
func New() *UI {
	return &UI{
		Out:    os.Stdout,
		ErrOut: os.Stderr,
	}
}

var (
	infoPrefix    = color.New(color.FgHiBlue).Sprint("i")
	successPrefix = color.New(color.FgHiGreen).Sprint("✓")
	warningPrefix = color.New(color.FgHiYellow).Sprint("⚠")
	errorPrefix   = color.New(color.FgHiRed).Sprint("✗")
	cyan          = color.New(color.FgHiCyan).SprintFunc()
	green         = color.New(color.FgHiGreen).SprintFunc()
	yellow        = color.New(color.FgHiYellow).SprintFunc()
	red           = color.New(color.FgHiRed).SprintFunc()
)

// WorkflowColor colors a workflow status for terminal display.
func WorkflowColor(s model.WorkflowStatus) string {
	switch s {
	case model.WorkflowPending:
		return yellow(string(s))
	case model.WorkflowInProcess:
		return cyan(string(s))
	case model.WorkflowEnd:
		return green(string(s))
	default:
		return string(s)
	}
}

// GithubColor colors a GitHub state for terminal display.
func GithubColor(s model.GithubStatus) string {
	switch s {
	case model.GithubStatusOpen:
		return green(string(s))
	case model.GithubStatusClosed:
		return red(string(s))
	default:
		return string(s)
	}
}

func (u *UI) Info(format string, a ...any) {
	fmt.Fprintf(u.Out, "%s %s\n", infoPrefix, fmt.Sprintf(format, a...))
}

func (u *UI) Success(format string, a ...any) {
	fmt.Fprintf(u.Out, "%s %s\n", successPrefix, fmt.Sprintf(format, a...))
}

func (u *UI) Warning(format string, a ...any) {
	fmt.Fprintf(u.ErrOut, "%s %s\n", warningPrefix, fmt.Sprintf(format, a...))
}

func (u *UI) Error(format string, a ...any) {
	fmt.Fprintf(u.ErrOut, "%s %s\n", errorPrefix, fmt.Sprintf(format, a...))
}

// Table creates a borderless, left-aligned table.
func (u *UI) Table(headers []string) *tablewriter.Table {
	table := tablewriter.NewTable(u.Out,
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithRowAlignment(tw.AlignLeft),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Lines:      tw.LinesNone,
				Separators: tw.SeparatorsNone,
			},
		}),
		tablewriter.WithPadding(tw.Padding{Left: "", Right: "  "}),
	)
	table.Header(headers)
	return table
}

// Issues renders issues as a table, one row per issue.
func (u *UI) Issues(issues []model.Issue) error {
	table := u.Table([]string{"ID", "Repository", "#", "Title", "GitHub", "Workflow", "Context", "Updated"})
	for _, is := range issues {
		ctx := ""
		if is.SelectedContext != nil {
			ctx = *is.SelectedContext
		}
		if err := table.Append([]string{
			is.ID.String(),
			is.Repository,
			fmt.Sprintf("%d", is.GithubNumber),
			truncate(is.Title, 60),
			GithubColor(is.StatusGithub),
			WorkflowColor(is.WorkflowStatus),
			ctx,
			is.UpdatedAtGithub.Format("2006-01-02 15:04"),
		}); err != nil {
			return err
		}
	}
	return table.Render()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
