// Package diff compares two report trees structurally, keyed by pillar
// identifier and then by question identifier.
package diff

import (
	"sort"

	"github.com/toraif/torwar/pkg/review"
)

// QuestionRef identifies a question that was added or removed between two
// trees.
type QuestionRef struct {
	QuestionID string `json:"question_id"`
	Title      string `json:"title"`
}

// AnswerChange records a question whose selected-choice set differs.
type AnswerChange struct {
	QuestionID string   `json:"question_id"`
	Title      string   `json:"title"`
	OldChoices []string `json:"old_choices"`
	NewChoices []string `json:"new_choices"`
}

// RiskChange records a question whose risk level differs, including
// absent-versus-present transitions.
type RiskChange struct {
	QuestionID string           `json:"question_id"`
	Title      string           `json:"title"`
	OldRisk    review.RiskLevel `json:"old_risk"`
	NewRisk    review.RiskLevel `json:"new_risk"`
}

// PillarChanges is the change set for one pillar.
type PillarChanges struct {
	ChangedAnswers   []AnswerChange `json:"changed_answers"`
	RiskChanges      []RiskChange   `json:"risk_changes"`
	NewQuestions     []QuestionRef  `json:"new_questions"`
	RemovedQuestions []QuestionRef  `json:"removed_questions"`
}

func (p *PillarChanges) empty() bool {
	return len(p.ChangedAnswers) == 0 &&
		len(p.RiskChanges) == 0 &&
		len(p.NewQuestions) == 0 &&
		len(p.RemovedQuestions) == 0
}

// Differences is the full change set between two trees: flattened top-level
// lists plus the per-pillar breakdown. Pillars with no changes are omitted.
type Differences struct {
	ChangedAnswers   []AnswerChange           `json:"changed_answers"`
	RiskChanges      []RiskChange             `json:"risk_changes"`
	NewQuestions     []QuestionRef            `json:"new_questions"`
	RemovedQuestions []QuestionRef            `json:"removed_questions"`
	PillarChanges    map[string]PillarChanges `json:"pillar_changes"`
}

// HasChanges reports whether any change of any kind was found.
func (d *Differences) HasChanges() bool {
	return len(d.PillarChanges) > 0
}

// Compare walks the union of pillars in both trees and records questions
// that were added, removed, answered differently, or re-assessed. Two trees
// with identical question data produce an empty result regardless of
// generation timestamps; comparison is by value.
func Compare(treeA, treeB *review.ReportTree) *Differences {
	diffs := &Differences{PillarChanges: make(map[string]PillarChanges)}

	var pillarsA, pillarsB map[string]review.PillarSection
	if treeA != nil {
		pillarsA = treeA.Pillars
	}
	if treeB != nil {
		pillarsB = treeB.Pillars
	}

	for _, pillarID := range unionKeys(pillarsA, pillarsB) {
		questionsA := questionMap(pillarsA[pillarID])
		questionsB := questionMap(pillarsB[pillarID])

		changes := PillarChanges{}
		for _, questionID := range unionQuestionIDs(questionsA, questionsB) {
			qa, inA := questionsA[questionID]
			qb, inB := questionsB[questionID]

			switch {
			case inA && !inB:
				changes.RemovedQuestions = append(changes.RemovedQuestions, QuestionRef{
					QuestionID: questionID,
					Title:      qa.QuestionTitle,
				})
			case inB && !inA:
				changes.NewQuestions = append(changes.NewQuestions, QuestionRef{
					QuestionID: questionID,
					Title:      qb.QuestionTitle,
				})
			default:
				oldChoices := choiceSet(qa.SelectedChoices)
				newChoices := choiceSet(qb.SelectedChoices)
				if !equalSets(oldChoices, newChoices) {
					changes.ChangedAnswers = append(changes.ChangedAnswers, AnswerChange{
						QuestionID: questionID,
						Title:      qa.QuestionTitle,
						OldChoices: oldChoices,
						NewChoices: newChoices,
					})
				}
				if qa.Risk != qb.Risk {
					changes.RiskChanges = append(changes.RiskChanges, RiskChange{
						QuestionID: questionID,
						Title:      qa.QuestionTitle,
						OldRisk:    qa.Risk,
						NewRisk:    qb.Risk,
					})
				}
			}
		}

		if changes.empty() {
			continue
		}
		diffs.PillarChanges[pillarID] = changes
		diffs.ChangedAnswers = append(diffs.ChangedAnswers, changes.ChangedAnswers...)
		diffs.RiskChanges = append(diffs.RiskChanges, changes.RiskChanges...)
		diffs.NewQuestions = append(diffs.NewQuestions, changes.NewQuestions...)
		diffs.RemovedQuestions = append(diffs.RemovedQuestions, changes.RemovedQuestions...)
	}

	return diffs
}

func questionMap(section review.PillarSection) map[string]review.QuestionAnswer {
	m := make(map[string]review.QuestionAnswer, len(section.Questions))
	for _, q := range section.Questions {
		m[q.QuestionID] = q
	}
	return m
}

// choiceSet normalizes selected choices into a sorted, deduplicated slice.
func choiceSet(choices []string) []string {
	normalized := review.NormalizeChoices(choices)
	if len(normalized) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(normalized))
	out := make([]string, 0, len(normalized))
	for _, c := range normalized {
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

func equalSets(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// unionKeys returns the sorted union of pillar identifiers, so output
// ordering is deterministic across runs.
func unionKeys(a, b map[string]review.PillarSection) []string {
	seen := make(map[string]bool, len(a)+len(b))
	for k := range a {
		seen[k] = true
	}
	for k := range b {
		seen[k] = true
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func unionQuestionIDs(a, b map[string]review.QuestionAnswer) []string {
	seen := make(map[string]bool, len(a)+len(b))
	for k := range a {
		seen[k] = true
	}
	for k := range b {
		seen[k] = true
	}
	ids := make([]string, 0, len(seen))
	for k := range seen {
		ids = append(ids, k)
	}
	sort.Strings(ids)
	return ids
}
