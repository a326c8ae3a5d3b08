package render

import (
	"bytes"
	"html/template"
	"sort"
	"strings"

	"github.com/toraif/torwar/pkg/diff"
	"github.com/toraif/torwar/pkg/review"
	"github.com/toraif/torwar/pkg/store"
)

const recordHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Well-Architected Review Report</title>
<style>
body { font-family: Arial, sans-serif; margin: 2em; }
h1, h2 { color: #222; }
table { border-collapse: collapse; width: 100%; margin-bottom: 2em; }
th, td { border: 1px solid #ccc; padding: 8px; text-align: left; }
th { background-color: #f2f2f2; }
.risk-HIGH { background: #d32f2f; color: #fff; padding: 2px 6px; border-radius: 4px; }
.risk-MEDIUM { background: #fbc02d; color: #222; padding: 2px 6px; border-radius: 4px; }
.risk-LOW { background: #1976d2; color: #fff; padding: 2px 6px; border-radius: 4px; }
.risk-NONE { background: #388e3c; color: #fff; padding: 2px 6px; border-radius: 4px; }
</style>
</head>
<body>
<h1>Well-Architected Review Report</h1>
<p><b>Report:</b> {{.Meta.CustomName}} (version {{.Meta.Version}})<br>
<b>Workload:</b> {{.Meta.WorkloadName}} ({{.Meta.WorkloadID}})<br>
<b>Created At:</b> {{.Meta.CreatedAt}}</p>
{{if .Meta.UserNotes}}<p><b>Notes:</b> {{.Meta.UserNotes}}</p>{{end}}

<h2>Summary</h2>
<table>
<tr><th>Category</th><th>Count</th></tr>
<tr><td>Total Questions</td><td>{{.Meta.Summary.TotalQuestions}}</td></tr>
<tr><td>Answered</td><td>{{.Meta.Summary.AnsweredQuestions}} ({{printf "%.1f" .Meta.Summary.CompletionPercent}}%)</td></tr>
<tr><td>High Risks</td><td>{{.Meta.Summary.HighRisks}}</td></tr>
<tr><td>Medium Risks</td><td>{{.Meta.Summary.MediumRisks}}</td></tr>
<tr><td>Low Risks</td><td>{{.Meta.Summary.LowRisks}}</td></tr>
<tr><td>No Risk</td><td>{{.Meta.Summary.NoRisks}}</td></tr>
</table>

{{range .Pillars}}
<h2>{{.Name}}</h2>
<table>
<tr><th>Risk</th><th>Question</th><th>Selected Choices</th></tr>
{{range .Questions}}
<tr>
<td><span class="risk-{{.Risk}}">{{.Risk}}</span></td>
<td>{{.QuestionTitle}}</td>
<td>{{.SelectedList}}</td>
</tr>
{{end}}
</table>
{{end}}
</body>
</html>
`

const comparisonHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Report Comparison</title>
<style>
body { font-family: Arial, sans-serif; margin: 2em; }
h1, h2 { color: #222; }
table { border-collapse: collapse; width: 100%; margin-bottom: 2em; }
th, td { border: 1px solid #ccc; padding: 8px; text-align: left; }
th { background-color: #f2f2f2; }
</style>
</head>
<body>
<h1>Report Comparison</h1>
<p><b>Report A:</b> {{.Cmp.Report1.Name}} (version {{.Cmp.Report1.Version}})<br>
<b>Report B:</b> {{.Cmp.Report2.Name}} (version {{.Cmp.Report2.Version}})</p>

<h2>Delta Summary</h2>
<table>
<tr><th>Metric</th><th>Change</th></tr>
<tr><td>Answered Questions</td><td>{{printf "%+d" .Cmp.Summary.QuestionsChange}}</td></tr>
<tr><td>High Risks</td><td>{{printf "%+d" .Cmp.Summary.HighRiskChange}}</td></tr>
<tr><td>Medium Risks</td><td>{{printf "%+d" .Cmp.Summary.MediumRiskChange}}</td></tr>
<tr><td>Low Risks</td><td>{{printf "%+d" .Cmp.Summary.LowRiskChange}}</td></tr>
<tr><td>Overall Improvement</td><td>{{printf "%+d" .Cmp.Summary.OverallImprovement}}</td></tr>
</table>

{{if not .HasChanges}}<p>No differences between the two reports.</p>{{end}}
{{range .Pillars}}
<h2>{{.Name}}</h2>
<table>
<tr><th>Change</th><th>Question</th><th>Detail</th></tr>
{{range .Changes.RiskChanges}}<tr><td>risk</td><td>{{.Title}}</td><td>{{.OldRisk}} -> {{.NewRisk}}</td></tr>
{{end}}{{range .Changes.ChangedAnswers}}<tr><td>answer</td><td>{{.Title}}</td><td>{{.OldChoices}} -> {{.NewChoices}}</td></tr>
{{end}}{{range .Changes.NewQuestions}}<tr><td>added</td><td>{{.Title}}</td><td></td></tr>
{{end}}{{range .Changes.RemovedQuestions}}<tr><td>removed</td><td>{{.Title}}</td><td></td></tr>
{{end}}
</table>
{{end}}
</body>
</html>
`

type htmlQuestion struct {
	Risk          review.RiskLevel
	QuestionTitle string
	SelectedList  string
}

type htmlPillar struct {
	Name      string
	Questions []htmlQuestion
}

type recordHTMLData struct {
	Meta    store.Metadata
	Pillars []htmlPillar
}

func renderRecordHTML(record *store.Record) (string, error) {
	data := recordHTMLData{Meta: record.Metadata}
	for _, pillarID := range sortedPillarIDs(record.ReportData.Pillars) {
		section := record.ReportData.Pillars[pillarID]
		pillar := htmlPillar{Name: section.Name}
		for _, q := range section.Questions {
			risk := q.Risk
			if risk == "" {
				risk = review.RiskUnanswered
			}
			pillar.Questions = append(pillar.Questions, htmlQuestion{
				Risk:          risk,
				QuestionTitle: q.QuestionTitle,
				SelectedList:  strings.Join(review.NormalizeChoices(q.SelectedChoices), ", "),
			})
		}
		data.Pillars = append(data.Pillars, pillar)
	}

	tmpl, err := template.New("record").Parse(recordHTMLTemplate)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

type comparisonPillar struct {
	Name    string
	Changes diff.PillarChanges
}

type comparisonHTMLData struct {
	Cmp        *diff.Comparison
	HasChanges bool
	Pillars    []comparisonPillar
}

func renderComparisonHTML(cmp *diff.Comparison) (string, error) {
	data := comparisonHTMLData{Cmp: cmp, HasChanges: cmp.Differences.HasChanges()}

	var pillarIDs []string
	for id := range cmp.Differences.PillarChanges {
		pillarIDs = append(pillarIDs, id)
	}
	sort.Strings(pillarIDs)
	for _, pillarID := range pillarIDs {
		name := review.Pillars[pillarID]
		if name == "" {
			name = pillarID
		}
		data.Pillars = append(data.Pillars, comparisonPillar{
			Name:    name,
			Changes: cmp.Differences.PillarChanges[pillarID],
		})
	}

	tmpl, err := template.New("comparison").Parse(comparisonHTMLTemplate)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
