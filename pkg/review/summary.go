package review

import (
	"math"
	"strings"
)

// PillarSummary aggregates counts for a single pillar.
type PillarSummary struct {
	Questions   int `json:"questions"`
	Answered    int `json:"answered"`
	HighRisks   int `json:"high_risks"`
	MediumRisks int `json:"medium_risks"`
	LowRisks    int `json:"low_risks"`
	NoRisks     int `json:"no_risks"`
}

// Summary aggregates counts across a whole report tree. It is frozen into
// report metadata at save time and never recomputed for a stored record.
type Summary struct {
	TotalQuestions    int                      `json:"total_questions"`
	AnsweredQuestions int                      `json:"answered_questions"`
	HighRisks         int                      `json:"high_risks"`
	MediumRisks       int                      `json:"medium_risks"`
	LowRisks          int                      `json:"low_risks"`
	NoRisks           int                      `json:"no_risks"`
	CompletionPercent float64                  `json:"completion_percentage"`
	Pillars           map[string]PillarSummary `json:"pillars"`
}

// NormalizeChoices returns selected with empty and whitespace-only entries
// removed. A nil input yields nil.
func NormalizeChoices(selected []string) []string {
	if len(selected) == 0 {
		return nil
	}
	out := make([]string, 0, len(selected))
	for _, c := range selected {
		if strings.TrimSpace(c) != "" {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// IsAnswered reports whether the question carries at least one real choice
// selection. This is the single answered predicate for the whole system;
// every count that mentions "answered" must go through it.
func (q *QuestionAnswer) IsAnswered() bool {
	return len(NormalizeChoices(q.SelectedChoices)) > 0
}

// Summarize reduces a report tree to its aggregate summary. Pure function:
// the tree is never mutated and repeated calls return equal results.
func Summarize(tree *ReportTree) Summary {
	summary := Summary{Pillars: make(map[string]PillarSummary)}
	if tree == nil {
		return summary
	}

	for pillarID, section := range tree.Pillars {
		ps := PillarSummary{}
		for i := range section.Questions {
			q := &section.Questions[i]
			ps.Questions++
			summary.TotalQuestions++

			if q.IsAnswered() {
				ps.Answered++
				summary.AnsweredQuestions++
			}

			switch q.Risk {
			case RiskHigh:
				ps.HighRisks++
				summary.HighRisks++
			case RiskMedium:
				ps.MediumRisks++
				summary.MediumRisks++
			case RiskLow:
				ps.LowRisks++
				summary.LowRisks++
			case RiskNone:
				ps.NoRisks++
				summary.NoRisks++
			}
		}
		summary.Pillars[pillarID] = ps
	}

	summary.CompletionPercent = completionPercent(summary.AnsweredQuestions, summary.TotalQuestions)
	return summary
}

// completionPercent is answered/total*100 rounded to one decimal, 0 when
// total is 0.
func completionPercent(answered, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(answered)/float64(total)*1000) / 10
}
