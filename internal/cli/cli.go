// Package cli implements the non-interactive command surface: listing
// jobs and applications, practice sessions, and shortcut management for
// scripting and piping.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"gopkg.in/yaml.v3"

	"github.com/hireflux/cli/internal/api"
	"github.com/hireflux/cli/internal/filter"
	"github.com/hireflux/cli/internal/history"
	"github.com/hireflux/cli/internal/interview"
	"github.com/hireflux/cli/internal/shortcuts"
	"github.com/hireflux/cli/internal/types"
)

// ANSI color codes
const (
	colorReset  = "\x1b[0m"
	colorRed    = "\x1b[31m"
	colorGreen  = "\x1b[32m"
	colorYellow = "\x1b[33m"
	colorCyan   = "\x1b[36m"
)

// JobsOptions controls the jobs listing.
type JobsOptions struct {
	Search       string
	Location     string
	Remote       bool
	Limit        int
	OutputFormat string // json, yaml, text
	Filter       string // JMESPath filter expression
	Query        string // JMESPath query expression
}

// Jobs lists open positions to stdout.
func Jobs(ctx context.Context, client *api.Client, opts JobsOptions) error {
	jobs, err := client.ListJobs(ctx, api.JobQuery{
		Search:     opts.Search,
		Location:   opts.Location,
		RemoteOnly: opts.Remote,
		Limit:      opts.Limit,
	})
	if err != nil {
		return fmt.Errorf("failed to fetch jobs: %w", err)
	}

	if opts.Filter != "" || opts.Query != "" {
		return printFiltered(os.Stdout, jobs, opts.Filter, opts.Query)
	}

	switch opts.OutputFormat {
	case "json":
		return printJSON(os.Stdout, jobs)
	case "yaml":
		return printYAML(os.Stdout, jobs)
	default:
		for _, job := range jobs {
			remote := ""
			if job.Remote {
				remote = " (remote)"
			}
			fmt.Printf("%s%s%s  %s @ %s%s\n", colorCyan, job.ID, colorReset, job.Title, job.Company, remote)
			detail := job.Location
			if job.SalaryMin > 0 {
				detail = strings.TrimSpace(fmt.Sprintf("%s  $%d-$%d", detail, job.SalaryMin, job.SalaryMax))
			}
			if detail != "" {
				fmt.Printf("      %s\n", detail)
			}
		}
		if len(jobs) == 0 {
			fmt.Println("No matching jobs.")
		}
		return nil
	}
}

// ApplicationsOptions controls the applications listing.
type ApplicationsOptions struct {
	Status       string
	OutputFormat string
	Filter       string
	Query        string
}

// Applications lists the user's applications to stdout.
func Applications(ctx context.Context, client *api.Client, opts ApplicationsOptions) error {
	apps, err := client.ListApplications(ctx, opts.Status)
	if err != nil {
		return fmt.Errorf("failed to fetch applications: %w", err)
	}

	if opts.Filter != "" || opts.Query != "" {
		return printFiltered(os.Stdout, apps, opts.Filter, opts.Query)
	}

	switch opts.OutputFormat {
	case "json":
		return printJSON(os.Stdout, apps)
	case "yaml":
		return printYAML(os.Stdout, apps)
	default:
		for _, app := range apps {
			fmt.Printf("%s%s%s  %s @ %s  [%s%s%s]\n",
				colorCyan, app.ID, colorReset,
				app.JobTitle, app.Company,
				statusColor(app.Status), app.Status, colorReset)
		}
		if len(apps) == 0 {
			fmt.Println("No applications yet.")
		}
		return nil
	}
}

// PracticeOptions controls a one-shot practice round.
type PracticeOptions struct {
	Role     string
	Category string
	Answer   string // read from stdin when empty
	Seed     int64
}

// Practice runs a single question/answer/feedback round and records it.
func Practice(opts PracticeOptions, hist *history.Manager) error {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	gen := interview.NewGenerator(seed)

	question := gen.Question(opts.Role, opts.Category)
	fmt.Printf("%s[%s]%s %s\n\n", colorYellow, question.Category, colorReset, question.Prompt)

	answer := opts.Answer
	if answer == "" {
		fmt.Fprintln(os.Stderr, "Enter your answer (end with Ctrl+D):")
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read answer: %w", err)
		}
		answer = strings.TrimSpace(string(data))
	}
	if answer == "" {
		return fmt.Errorf("no answer provided")
	}

	feedback := gen.Feedback(question, answer)
	printFeedback(os.Stdout, feedback)

	if hist != nil {
		if err := hist.SavePracticeRun(question, feedback); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to save practice run: %v\n", err)
		}
	}
	return nil
}

func printFeedback(w io.Writer, feedback types.PracticeFeedback) {
	fmt.Fprintf(w, "Score: %s%d/100%s\n", scoreColor(feedback.Score), feedback.Score, colorReset)
	fmt.Fprintf(w, "%s\n\n", feedback.Summary)
	fmt.Fprintln(w, "Strengths:")
	for _, s := range feedback.Strengths {
		fmt.Fprintf(w, "  + %s\n", s)
	}
	fmt.Fprintln(w, "Improve:")
	for _, s := range feedback.Improve {
		fmt.Fprintf(w, "  - %s\n", s)
	}
}

// ShortcutsList prints the registry in registration order.
func ShortcutsList(reg *shortcuts.Registry, w io.Writer) error {
	for _, def := range reg.All() {
		keys, _ := reg.EffectiveKeys(def.ID)
		state := ""
		if !reg.Enabled(def.ID) {
			state = "  (disabled)"
		}
		fmt.Fprintf(w, "%-24s %-20s %s%s\n", def.ID, strings.Join(keys, ", "), def.Description, state)
	}
	return nil
}

// ShortcutsExport writes the customization JSON to a file, the clipboard,
// or stdout when path is "-".
func ShortcutsExport(reg *shortcuts.Registry, path string, toClipboard bool) error {
	data, err := reg.Export()
	if err != nil {
		return err
	}

	if toClipboard {
		if err := clipboard.WriteAll(data); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		fmt.Fprintln(os.Stderr, "Shortcuts copied to clipboard")
		return nil
	}
	if path == "" || path == "-" {
		fmt.Println(data)
		return nil
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Shortcuts exported to %s\n", path)
	return nil
}

// ShortcutsImport loads a customization JSON from a file or stdin ("-").
func ShortcutsImport(reg *shortcuts.Registry, path string) error {
	var data []byte
	var err error
	if path == "" || path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("failed to read import: %w", err)
	}
	return reg.Import(string(data))
}

// ShortcutsReset restores one shortcut, or every shortcut when id is empty.
func ShortcutsReset(reg *shortcuts.Registry, id string) error {
	if id == "" {
		return reg.ResetAllToDefaults()
	}
	return reg.ResetToDefault(id)
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(data))
	return nil
}

func printYAML(w io.Writer, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	fmt.Fprint(w, string(data))
	return nil
}

// printFiltered routes the listing through the JMESPath pipeline.
func printFiltered(w io.Writer, v any, filterExpr, queryExpr string) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	out, err := filter.Apply(string(raw), filterExpr, queryExpr)
	if err != nil {
		return fmt.Errorf("filter/query error: %w", err)
	}
	fmt.Fprintln(w, out)
	return nil
}

func statusColor(status string) string {
	switch status {
	case types.StatusOffer:
		return colorGreen
	case types.StatusRejected, types.StatusWithdrawn:
		return colorRed
	default:
		return colorYellow
	}
}

func scoreColor(score int) string {
	switch {
	case score >= 80:
		return colorGreen
	case score >= 50:
		return colorYellow
	default:
		return colorRed
	}
}
