// Package render turns saved reports and comparisons into human-readable
// output for the CLI and for file export.
package render

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/toraif/torwar/pkg/diff"
	"github.com/toraif/torwar/pkg/review"
	"github.com/toraif/torwar/pkg/store"
)

// Format represents the output format of a rendered report.
type Format string

const (
	TextFormat     Format = "text"
	MarkdownFormat Format = "markdown"
	HTMLFormat     Format = "html"
	JSONFormat     Format = "json"
)

// ParseFormat maps a user-supplied format name to a Format, defaulting to
// text.
func ParseFormat(name string) Format {
	switch strings.ToLower(name) {
	case "markdown", "md":
		return MarkdownFormat
	case "html":
		return HTMLFormat
	case "json":
		return JSONFormat
	default:
		return TextFormat
	}
}

// FileExtension returns the filename extension for a format.
func FileExtension(format Format) string {
	switch format {
	case MarkdownFormat:
		return "md"
	case HTMLFormat:
		return "html"
	case JSONFormat:
		return "json"
	default:
		return "txt"
	}
}

// Options defines options for exporting rendered output to a file.
type Options struct {
	Format    Format
	OutputDir string
	Filename  string
}

// RenderRecord renders a saved report in the requested format.
func RenderRecord(record *store.Record, format Format) (string, error) {
	switch format {
	case MarkdownFormat:
		return renderRecordMarkdown(record), nil
	case HTMLFormat:
		return renderRecordHTML(record)
	case JSONFormat:
		return renderJSON(record)
	default:
		return renderRecordText(record), nil
	}
}

// RenderComparison renders a comparison result in the requested format.
func RenderComparison(cmp *diff.Comparison, format Format) (string, error) {
	switch format {
	case MarkdownFormat:
		return renderComparisonMarkdown(cmp), nil
	case HTMLFormat:
		return renderComparisonHTML(cmp)
	case JSONFormat:
		return renderJSON(cmp)
	default:
		return renderComparisonText(cmp), nil
	}
}

// Export writes rendered content to a file under the output directory and
// returns the path. A missing filename gets a timestamped default.
func Export(content string, options *Options) (string, error) {
	if err := os.MkdirAll(options.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := options.Filename
	if filename == "" {
		filename = fmt.Sprintf("torwar_report_%s", time.Now().Format("20060102_150405"))
	}

	path := filepath.Join(options.OutputDir, fmt.Sprintf("%s.%s", filename, FileExtension(options.Format)))
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write report to file: %w", err)
	}
	return path, nil
}

func renderJSON(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// sortedPillarIDs returns the tree's pillar ids in review order, with any
// unexpected extras appended alphabetically.
func sortedPillarIDs(pillars map[string]review.PillarSection) []string {
	var ids []string
	seen := make(map[string]bool)
	for _, id := range review.PillarOrder {
		if _, ok := pillars[id]; ok {
			ids = append(ids, id)
			seen[id] = true
		}
	}
	var extras []string
	for id := range pillars {
		if !seen[id] {
			extras = append(extras, id)
		}
	}
	sort.Strings(extras)
	return append(ids, extras...)
}

func renderRecordText(record *store.Record) string {
	meta := record.Metadata
	var content strings.Builder

	content.WriteString("Well-Architected Review Report\n")
	content.WriteString("==============================\n\n")
	content.WriteString(fmt.Sprintf("Report: %s (version %d)\n", meta.CustomName, meta.Version))
	content.WriteString(fmt.Sprintf("Workload: %s (%s)\n", meta.WorkloadName, meta.WorkloadID))
	content.WriteString(fmt.Sprintf("Created At: %s\n", meta.CreatedAt.Format(time.RFC3339)))
	content.WriteString(fmt.Sprintf("Data Hash: %s\n\n", meta.DataHash))

	if meta.UserNotes != "" {
		content.WriteString(fmt.Sprintf("Notes: %s\n\n", meta.UserNotes))
	}

	content.WriteString("Summary:\n")
	content.WriteString(fmt.Sprintf("  Total Questions: %d\n", meta.Summary.TotalQuestions))
	content.WriteString(fmt.Sprintf("  Answered: %d (%.1f%%)\n", meta.Summary.AnsweredQuestions, meta.Summary.CompletionPercent))
	content.WriteString(fmt.Sprintf("  High Risks: %d\n", meta.Summary.HighRisks))
	content.WriteString(fmt.Sprintf("  Medium Risks: %d\n", meta.Summary.MediumRisks))
	content.WriteString(fmt.Sprintf("  Low Risks: %d\n", meta.Summary.LowRisks))
	content.WriteString(fmt.Sprintf("  No Risk: %d\n\n", meta.Summary.NoRisks))

	for _, pillarID := range sortedPillarIDs(record.ReportData.Pillars) {
		section := record.ReportData.Pillars[pillarID]
		content.WriteString(fmt.Sprintf("Pillar: %s\n", section.Name))
		for _, q := range section.Questions {
			risk := string(q.Risk)
			if risk == "" {
				risk = string(review.RiskUnanswered)
			}
			content.WriteString(fmt.Sprintf("  [%s] %s (%d choice(s) selected)\n",
				risk, q.QuestionTitle, len(review.NormalizeChoices(q.SelectedChoices))))
		}
		content.WriteString("\n")
	}

	return content.String()
}

func renderRecordMarkdown(record *store.Record) string {
	meta := record.Metadata
	var content strings.Builder

	content.WriteString("# Well-Architected Review Report\n\n")
	content.WriteString(fmt.Sprintf("**Report:** %s (version %d)  \n", meta.CustomName, meta.Version))
	content.WriteString(fmt.Sprintf("**Workload:** %s (`%s`)  \n", meta.WorkloadName, meta.WorkloadID))
	content.WriteString(fmt.Sprintf("**Created At:** %s\n\n", meta.CreatedAt.Format(time.RFC3339)))

	if meta.UserNotes != "" {
		content.WriteString(fmt.Sprintf("> %s\n\n", meta.UserNotes))
	}

	content.WriteString("## Summary\n\n")
	content.WriteString("| Category | Count |\n")
	content.WriteString("|----------|-------|\n")
	content.WriteString(fmt.Sprintf("| Total Questions | %d |\n", meta.Summary.TotalQuestions))
	content.WriteString(fmt.Sprintf("| Answered | %d (%.1f%%) |\n", meta.Summary.AnsweredQuestions, meta.Summary.CompletionPercent))
	content.WriteString(fmt.Sprintf("| High Risks | %d |\n", meta.Summary.HighRisks))
	content.WriteString(fmt.Sprintf("| Medium Risks | %d |\n", meta.Summary.MediumRisks))
	content.WriteString(fmt.Sprintf("| Low Risks | %d |\n", meta.Summary.LowRisks))
	content.WriteString(fmt.Sprintf("| No Risk | %d |\n\n", meta.Summary.NoRisks))

	for _, pillarID := range sortedPillarIDs(record.ReportData.Pillars) {
		section := record.ReportData.Pillars[pillarID]
		content.WriteString(fmt.Sprintf("## %s\n\n", section.Name))
		if len(section.Questions) == 0 {
			content.WriteString("_No questions recorded._\n\n")
			continue
		}
		content.WriteString("| Risk | Question | Answered |\n")
		content.WriteString("|------|----------|----------|\n")
		for _, q := range section.Questions {
			risk := string(q.Risk)
			if risk == "" {
				risk = string(review.RiskUnanswered)
			}
			answered := "no"
			if q.IsAnswered() {
				answered = "yes"
			}
			content.WriteString(fmt.Sprintf("| %s | %s | %s |\n", risk, q.QuestionTitle, answered))
		}
		content.WriteString("\n")
	}

	return content.String()
}

func renderComparisonText(cmp *diff.Comparison) string {
	var content strings.Builder

	content.WriteString("Report Comparison\n")
	content.WriteString("=================\n\n")
	content.WriteString(fmt.Sprintf("Report A: %s (version %d, %s)\n",
		cmp.Report1.Name, cmp.Report1.Version, cmp.Report1.CreatedAt.Format(time.RFC3339)))
	content.WriteString(fmt.Sprintf("Report B: %s (version %d, %s)\n\n",
		cmp.Report2.Name, cmp.Report2.Version, cmp.Report2.CreatedAt.Format(time.RFC3339)))

	content.WriteString("Delta Summary:\n")
	content.WriteString(fmt.Sprintf("  Answered Questions: %+d\n", cmp.Summary.QuestionsChange))
	content.WriteString(fmt.Sprintf("  High Risks: %+d\n", cmp.Summary.HighRiskChange))
	content.WriteString(fmt.Sprintf("  Medium Risks: %+d\n", cmp.Summary.MediumRiskChange))
	content.WriteString(fmt.Sprintf("  Low Risks: %+d\n", cmp.Summary.LowRiskChange))
	content.WriteString(fmt.Sprintf("  Overall Improvement: %+d\n\n", cmp.Summary.OverallImprovement))

	if !cmp.Differences.HasChanges() {
		content.WriteString("No differences between the two reports.\n")
		return content.String()
	}

	var pillarIDs []string
	for id := range cmp.Differences.PillarChanges {
		pillarIDs = append(pillarIDs, id)
	}
	sort.Strings(pillarIDs)

	for _, pillarID := range pillarIDs {
		changes := cmp.Differences.PillarChanges[pillarID]
		name := review.Pillars[pillarID]
		if name == "" {
			name = pillarID
		}
		content.WriteString(fmt.Sprintf("Pillar: %s\n", name))
		for _, c := range changes.RiskChanges {
			content.WriteString(fmt.Sprintf("  risk changed  %s: %s -> %s\n", c.Title, c.OldRisk, c.NewRisk))
		}
		for _, c := range changes.ChangedAnswers {
			content.WriteString(fmt.Sprintf("  answer changed  %s: {%s} -> {%s}\n",
				c.Title, strings.Join(c.OldChoices, ", "), strings.Join(c.NewChoices, ", ")))
		}
		for _, q := range changes.NewQuestions {
			content.WriteString(fmt.Sprintf("  added  %s\n", q.Title))
		}
		for _, q := range changes.RemovedQuestions {
			content.WriteString(fmt.Sprintf("  removed  %s\n", q.Title))
		}
		content.WriteString("\n")
	}

	return content.String()
}

func renderComparisonMarkdown(cmp *diff.Comparison) string {
	var content strings.Builder

	content.WriteString("# Report Comparison\n\n")
	content.WriteString(fmt.Sprintf("**Report A:** %s (version %d)  \n", cmp.Report1.Name, cmp.Report1.Version))
	content.WriteString(fmt.Sprintf("**Report B:** %s (version %d)\n\n", cmp.Report2.Name, cmp.Report2.Version))

	content.WriteString("## Delta Summary\n\n")
	content.WriteString("| Metric | Change |\n")
	content.WriteString("|--------|--------|\n")
	content.WriteString(fmt.Sprintf("| Answered Questions | %+d |\n", cmp.Summary.QuestionsChange))
	content.WriteString(fmt.Sprintf("| High Risks | %+d |\n", cmp.Summary.HighRiskChange))
	content.WriteString(fmt.Sprintf("| Medium Risks | %+d |\n", cmp.Summary.MediumRiskChange))
	content.WriteString(fmt.Sprintf("| Low Risks | %+d |\n", cmp.Summary.LowRiskChange))
	content.WriteString(fmt.Sprintf("| Overall Improvement | %+d |\n\n", cmp.Summary.OverallImprovement))

	if !cmp.Differences.HasChanges() {
		content.WriteString("No differences between the two reports.\n")
		return content.String()
	}

	var pillarIDs []string
	for id := range cmp.Differences.PillarChanges {
		pillarIDs = append(pillarIDs, id)
	}
	sort.Strings(pillarIDs)

	for _, pillarID := range pillarIDs {
		changes := cmp.Differences.PillarChanges[pillarID]
		name := review.Pillars[pillarID]
		if name == "" {
			name = pillarID
		}
		content.WriteString(fmt.Sprintf("## %s\n\n", name))
		content.WriteString("| Change | Question | Detail |\n")
		content.WriteString("|--------|----------|--------|\n")
		for _, c := range changes.RiskChanges {
			content.WriteString(fmt.Sprintf("| risk | %s | %s -> %s |\n", c.Title, c.OldRisk, c.NewRisk))
		}
		for _, c := range changes.ChangedAnswers {
			content.WriteString(fmt.Sprintf("| answer | %s | {%s} -> {%s} |\n",
				c.Title, strings.Join(c.OldChoices, ", "), strings.Join(c.NewChoices, ", ")))
		}
		for _, q := range changes.NewQuestions {
			content.WriteString(fmt.Sprintf("| added | %s | |\n", q.Title))
		}
		for _, q := range changes.RemovedQuestions {
			content.WriteString(fmt.Sprintf("| removed | %s | |\n", q.Title))
		}
		content.WriteString("\n")
	}

	return content.String()
}
