// Package display renders run reports for humans and machines.
package display

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/homeset/pkg/errors"
	"github.com/arthur-debert/homeset/pkg/report"
	"github.com/arthur-debert/homeset/pkg/style"
)

// RenderReport renders a run report in the requested format
func RenderReport(rep *report.Report, format Format) (string, error) {
	switch format.Resolve() {
	case FormatJSON:
		out, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return "", errors.Wrap(err, errors.ErrInternal, "failed to marshal report")
		}
		return string(out) + "\n", nil
	case FormatYAML:
		out, err := yaml.Marshal(rep)
		if err != nil {
			return "", errors.Wrap(err, errors.ErrInternal, "failed to marshal report")
		}
		return string(out), nil
	case FormatText:
		return renderText(rep), nil
	default:
		return renderTerm(rep), nil
	}
}

func renderText(rep *report.Report) string {
	var out strings.Builder
	out.WriteString(rep.Title + "\n")
	for _, step := range rep.Steps {
		line := fmt.Sprintf("  %-8s %s", step.Status, step.Name)
		if step.Reason != "" {
			line += " (" + step.Reason + ")"
		}
		out.WriteString(line + "\n")
	}
	out.WriteString(summaryLine(rep) + "\n")
	return out.String()
}

func renderTerm(rep *report.Report) string {
	var out strings.Builder
	out.WriteString(style.TitleStyle.Render(rep.Title) + "\n\n")

	rows := pterm.TableData{{"", "step", "detail"}}
	for _, step := range rep.Steps {
		rows = append(rows, []string{statusIndicator(step.Status), step.Name, style.MutedStyle.Render(step.Reason)})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(rows).Srender()
	if err != nil {
		// pterm rendering is cosmetic; fall back to the plain layout
		return renderText(rep)
	}
	out.WriteString(table + "\n\n")
	out.WriteString(summaryLine(rep) + "\n")
	return out.String()
}

func statusIndicator(status report.Status) string {
	switch status {
	case report.StatusSuccess:
		return style.SuccessStyle.Render("✓")
	case report.StatusSkipped:
		return style.WarningStyle.Render("-")
	case report.StatusFailed:
		return style.ErrorStyle.Render("✗")
	default:
		return "?"
	}
}

func summaryLine(rep *report.Report) string {
	succeeded, skipped, failed := rep.Counts()
	return fmt.Sprintf("%d applied, %d skipped, %d failed", succeeded, skipped, failed)
}
