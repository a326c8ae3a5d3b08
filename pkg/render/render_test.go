package render

import (
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toraif/torwar/pkg/diff"
	"github.com/toraif/torwar/pkg/review"
	"github.com/toraif/torwar/pkg/store"
)

func sampleRecord() *store.Record {
	tree := review.ReportTree{
		Workload: review.Workload{WorkloadID: "w1", WorkloadName: "Demo Workload"},
		Pillars: map[string]review.PillarSection{
			"security": {
				Name: "Security",
				Questions: []review.QuestionAnswer{
					{
						QuestionID:      "sec_q1",
						QuestionTitle:   "How do you protect your root user?",
						SelectedChoices: []string{"c1"},
						Risk:            review.RiskHigh,
						IsApplicable:    true,
					},
				},
			},
		},
		GeneratedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	return &store.Record{
		Metadata: store.Metadata{
			ReportID:     "r1",
			WorkloadID:   "w1",
			WorkloadName: "Demo Workload",
			CustomName:   "Baseline",
			CreatedAt:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
			Version:      1,
			DataHash:     "abcdef0123456789",
			Summary:      review.Summarize(&tree),
		},
		ReportData: tree,
	}
}

func sampleComparison(t *testing.T) *diff.Comparison {
	t.Helper()
	a := sampleRecord()
	b := sampleRecord()
	b.Metadata.ReportID = "r2"
	b.Metadata.Version = 2
	sec := b.ReportData.Pillars["security"]
	sec.Questions[0].Risk = review.RiskLow
	sec.Questions[0].SelectedChoices = []string{"c1", "c2"}
	b.ReportData.Pillars["security"] = sec
	b.Metadata.Summary = review.Summarize(&b.ReportData)

	cmp, err := diff.CompareRecords(a, b)
	require.NoError(t, err)
	return cmp
}

func TestRenderRecordText(t *testing.T) {
	out, err := RenderRecord(sampleRecord(), TextFormat)
	require.NoError(t, err)

	assert.Contains(t, out, "Baseline")
	assert.Contains(t, out, "Demo Workload")
	assert.Contains(t, out, "Total Questions: 1")
	assert.Contains(t, out, "[HIGH] How do you protect your root user?")
}

func TestRenderRecordMarkdown(t *testing.T) {
	out, err := RenderRecord(sampleRecord(), MarkdownFormat)
	require.NoError(t, err)

	assert.Contains(t, out, "# Well-Architected Review Report")
	assert.Contains(t, out, "## Security")
	assert.Contains(t, out, "| HIGH | How do you protect your root user? | yes |")
}

func TestRenderRecordHTML(t *testing.T) {
	out, err := RenderRecord(sampleRecord(), HTMLFormat)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "Demo Workload")
	assert.Contains(t, out, "risk-HIGH")
}

func TestRenderRecordJSON(t *testing.T) {
	out, err := RenderRecord(sampleRecord(), JSONFormat)
	require.NoError(t, err)

	var decoded store.Record
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "r1", decoded.Metadata.ReportID)
}

func TestRenderComparisonText(t *testing.T) {
	out, err := RenderComparison(sampleComparison(t), TextFormat)
	require.NoError(t, err)

	assert.Contains(t, out, "Report Comparison")
	assert.Contains(t, out, "Overall Improvement: +1")
	assert.Contains(t, out, "risk changed")
	assert.Contains(t, out, "HIGH -> LOW")
}

func TestRenderComparisonMarkdown(t *testing.T) {
	out, err := RenderComparison(sampleComparison(t), MarkdownFormat)
	require.NoError(t, err)

	assert.Contains(t, out, "# Report Comparison")
	assert.Contains(t, out, "## Security")
}

func TestRenderComparisonHTML(t *testing.T) {
	out, err := RenderComparison(sampleComparison(t), HTMLFormat)
	require.NoError(t, err)

	assert.Contains(t, out, "Report Comparison")
	assert.Contains(t, out, "Security")
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, MarkdownFormat, ParseFormat("md"))
	assert.Equal(t, MarkdownFormat, ParseFormat("Markdown"))
	assert.Equal(t, HTMLFormat, ParseFormat("html"))
	assert.Equal(t, JSONFormat, ParseFormat("json"))
	assert.Equal(t, TextFormat, ParseFormat("anything"))
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	path, err := Export("hello", &Options{Format: MarkdownFormat, OutputDir: dir, Filename: "out"})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "out.md"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestExportDefaultFilename(t *testing.T) {
	dir := t.TempDir()
	path, err := Export("x", &Options{Format: TextFormat, OutputDir: dir})
	require.NoError(t, err)
	assert.Contains(t, path, "torwar_report_")
	assert.True(t, strings.HasSuffix(path, ".txt"))
}
