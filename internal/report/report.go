// Package report renders console output and maps outcomes to exit codes.
package report

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/backlogbutler/backlogbutler/internal/ado"
)

// Process exit codes.
const (
	ExitOK              = 0
	ExitMissingSettings = 2
	ExitTransport       = 10
	ExitUnexpected      = 11
)

// ErrMissingSettings is returned when org, project or PAT is blank.
var ErrMissingSettings = errors.New("missing Azure DevOps settings")

const usage = `Usage:
  backlogbutler [--help] [--org <url>] [--project <name>] [--pat <token>] [--apply] [--verbose]

Examples (env vars recommended):
  export ADO_ORG="https://dev.azure.com/yourorg"
  export ADO_PROJECT="YourProject"
  export ADO_PAT="YOUR_PAT"
  backlogbutler

Examples (args):
  backlogbutler --org https://dev.azure.com/yourorg --project YourProject --pat YOUR_PAT

Options:
  --help        Show this help
  --org         Azure DevOps org URL (or env ADO_ORG)
  --project     Azure DevOps project name (or env ADO_PROJECT)
  --pat         Personal Access Token (or env ADO_PAT)
  --apply       Apply changes (future write actions). Default is dry-run.
  --verbose     Log requests and timings to stderr

Env vars:
  ADO_ORG, ADO_PROJECT, ADO_PAT
  Also read from ./.env and ~/.backlogbutler/config.yaml (or BACKLOG_BUTLER_CONFIG)
`

// Reporter writes user-facing output.
type Reporter struct {
	Out io.Writer
}

// New returns a Reporter writing to out.
func New(out io.Writer) *Reporter {
	return &Reporter{Out: out}
}

// Help prints the usage text.
func (r *Reporter) Help() {
	fmt.Fprint(r.Out, usage)
}

// Banner prints the program name and the active mode.
func (r *Reporter) Banner(apply bool) {
	mode := "Dry-run"
	if apply {
		mode = "Apply"
	}
	fmt.Fprintln(r.Out, "Backlog Butler 🧹")
	fmt.Fprintf(r.Out, "Mode: %s\n", mode)
	fmt.Fprintln(r.Out)

	if !apply {
		fmt.Fprintln(r.Out, "No changes will be made.")
		fmt.Fprintln(r.Out, "Use --apply to perform updates (when write actions are added).")
		fmt.Fprintln(r.Out)
	}
}

// MissingSettings explains how to supply org, project and PAT, then
// prints the usage text.
func (r *Reporter) MissingSettings() {
	fmt.Fprintln(r.Out, "Missing Azure DevOps settings.")
	fmt.Fprintln(r.Out, "Provide via args: --org --project --pat")
	fmt.Fprintln(r.Out, "Or via env vars: ADO_ORG, ADO_PROJECT, ADO_PAT")
	fmt.Fprintln(r.Out)
	r.Help()
}

// Tags prints the listing summary followed by one sorted tag per line.
func (r *Reporter) Tags(org, project string, tags []string) {
	fmt.Fprintf(r.Out, "Azure DevOps Org: %s\n", org)
	fmt.Fprintf(r.Out, "Project: %s\n", project)
	fmt.Fprintf(r.Out, "Tags found: %d\n", len(tags))
	fmt.Fprintln(r.Out)

	for _, t := range SortTags(tags) {
		fmt.Fprintf(r.Out, "- %s\n", t)
	}
}

// Failure prints a short description of err followed by its detail.
func (r *Reporter) Failure(err error) {
	var terr *ado.TransportError
	if errors.As(err, &terr) {
		fmt.Fprintln(r.Out, "HTTP error while calling Azure DevOps:")
		fmt.Fprintln(r.Out, terr.Err)
		return
	}
	fmt.Fprintln(r.Out, "Unexpected error:")
	fmt.Fprintln(r.Out, err)
}

// SortTags returns a copy of tags in case-insensitive ordinal order.
// Case-insensitive duplicates keep their input order.
func SortTags(tags []string) []string {
	sorted := slices.Clone(tags)
	slices.SortStableFunc(sorted, func(a, b string) int {
		return strings.Compare(strings.ToUpper(a), strings.ToUpper(b))
	})
	return sorted
}

// ExitCode maps the outcome of a run to a process exit code.
func ExitCode(err error) int {
	var terr *ado.TransportError
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrMissingSettings):
		return ExitMissingSettings
	case errors.As(err, &terr):
		return ExitTransport
	default:
		return ExitUnexpected
	}
}
