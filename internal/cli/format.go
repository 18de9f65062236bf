package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/danieljhkim/diredit/internal/engine"
	"github.com/danieljhkim/diredit/internal/planner"
)

var (
	// Output writers, pointed at the running command's streams
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr

	successColor = color.New(color.FgGreen, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
	headerColor  = color.New(color.FgBlue, color.Bold)
	labelColor   = color.New(color.FgWhite, color.Bold)
	valueColor   = color.New(color.FgHiBlack)
	dimColor     = color.New(color.FgHiBlack)
	dirColor     = color.New(color.FgBlue, color.Bold)
	idColor      = color.New(color.FgHiBlack)

	// Operation colors
	opColors = map[string]*color.Color{
		planner.OpCreate: color.New(color.FgGreen),
		planner.OpCopy:   color.New(color.FgCyan),
		planner.OpMove:   color.New(color.FgYellow),
		planner.OpDelete: color.New(color.FgRed),
	}
)

// PrintSection prints a section header
func PrintSection(title string) {
	_, _ = fmt.Fprintln(stdout)
	_, _ = headerColor.Fprintf(stdout, "▸ %s\n", title)
	_, _ = fmt.Fprintln(stdout)
}

// PrintSubsection prints a subsection header
func PrintSubsection(title string) {
	_, _ = infoColor.Fprintf(stdout, "  %s\n", title)
}

// PrintSuccess prints a success message with a checkmark
func PrintSuccess(msg string) {
	_, _ = successColor.Fprintf(stdout, "✓ %s\n", msg)
}

// PrintWarning prints a warning message with a warning symbol
func PrintWarning(msg string) {
	_, _ = warningColor.Fprintf(stdout, "⚠ %s\n", msg)
}

// PrintError prints an error message to stderr
func PrintError(msg string) {
	_, _ = errorColor.Fprintf(stderr, "✗ %s\n", msg)
}

// PrintInfo prints an informational message
func PrintInfo(msg string) {
	_, _ = fmt.Fprintln(stdout, msg)
}

// PrintLabelValue prints a label-value pair with proper formatting
func PrintLabelValue(label, value string) {
	_, _ = labelColor.Fprintf(stdout, "  %s: ", label)
	_, _ = valueColor.Fprintln(stdout, value)
}

// PrintList prints a list of items with bullet points
func PrintList(items []string, indent int) {
	indentStr := strings.Repeat("  ", indent)
	for _, item := range items {
		_, _ = infoColor.Fprintf(stdout, "%s• %s\n", indentStr, item)
	}
}

// PrintEmptyState prints a message when there's no data to show
func PrintEmptyState(msg string) {
	_, _ = dimColor.Fprintf(stdout, "  %s\n", msg)
}

// PrintCount prints a count with proper formatting
func PrintCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// PrintOperations prints each operation with its type colored.
func PrintOperations(ops []planner.Operation, indent int) {
	indentStr := strings.Repeat("  ", indent)
	for _, op := range ops {
		clr, ok := opColors[op.Type]
		if !ok {
			clr = infoColor
		}
		_, _ = clr.Fprintf(stdout, "%s%-6s ", indentStr, op.Type)
		_, _ = fmt.Fprintln(stdout, strings.TrimPrefix(op.String(), op.Type+" "))
	}
}

// PrintConflicts prints the conflicts that blocked a plan.
func PrintConflicts(plan *planner.Plan) {
	PrintSection("Conflicts Detected")
	for _, conflict := range plan.Conflicts {
		PrintError(fmt.Sprintf("%s: %s", conflict.Path, conflict.Reason))
	}
	_, _ = fmt.Fprintln(stdout)
	PrintWarning("Nothing was changed. Edit the listing and save again.")
}

// PrintReport prints the outcome of an applied plan.
func PrintReport(report *engine.ApplyReport) {
	if report == nil {
		PrintInfo("No changes to apply.")
		return
	}
	if len(report.Applied) > 0 {
		PrintSuccess(fmt.Sprintf("Applied %s", PrintCount(len(report.Applied), "operation", "operations")))
	}
	if len(report.Failed) > 0 {
		PrintWarning(fmt.Sprintf("%s failed", PrintCount(len(report.Failed), "operation", "operations")))
		for _, failure := range report.Failed {
			PrintError(failure.Error())
		}
	}
}
