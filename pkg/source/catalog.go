package source

import (
	"context"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/toraif/torwar/pkg/review"
)

// catalogFile is the on-disk TOML shape of a local review catalog: one
// workload plus its question/answer state. Used for offline review capture
// and as a test fixture format.
type catalogFile struct {
	Workload  catalogWorkload   `toml:"workload"`
	Questions []catalogQuestion `toml:"questions"`
}

type catalogWorkload struct {
	ID          string `toml:"id"`
	Name        string `toml:"name"`
	Environment string `toml:"environment"`
	Description string `toml:"description"`
	Owner       string `toml:"owner"`
}

type catalogQuestion struct {
	Pillar        string          `toml:"pillar"`
	ID            string          `toml:"id"`
	Title         string          `toml:"title"`
	Selected      []string        `toml:"selected"`
	Risk          string          `toml:"risk"`
	NotApplicable bool            `toml:"not_applicable"`
	Notes         string          `toml:"notes"`
	Choices       []catalogChoice `toml:"choices"`
}

type catalogChoice struct {
	ID          string `toml:"id"`
	Title       string `toml:"title"`
	Description string `toml:"description"`
}

// CatalogSource is an AnswerSource backed by a local TOML catalog file. It
// serves exactly one workload.
type CatalogSource struct {
	workload review.Workload
	answers  map[string][]review.QuestionAnswer
}

// LoadCatalog parses a catalog file into a ready-to-use answer source.
func LoadCatalog(path string) (*CatalogSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}

	var file catalogFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	if file.Workload.ID == "" || file.Workload.Name == "" {
		return nil, fmt.Errorf("catalog %s: workload id and name are required", path)
	}

	src := &CatalogSource{
		workload: review.Workload{
			WorkloadID:   file.Workload.ID,
			WorkloadName: file.Workload.Name,
			Environment:  file.Workload.Environment,
			Description:  file.Workload.Description,
			Owner:        file.Workload.Owner,
		},
		answers: make(map[string][]review.QuestionAnswer),
	}

	for _, q := range file.Questions {
		if !review.IsPillar(q.Pillar) {
			return nil, fmt.Errorf("catalog %s: question %s references unknown pillar %q", path, q.ID, q.Pillar)
		}
		answer := review.QuestionAnswer{
			QuestionID:      q.ID,
			QuestionTitle:   q.Title,
			SelectedChoices: q.Selected,
			Risk:            catalogRisk(q),
			IsApplicable:    !q.NotApplicable,
			Notes:           q.Notes,
		}
		for _, c := range q.Choices {
			answer.Choices = append(answer.Choices, review.Choice{
				ChoiceID:    c.ID,
				Title:       c.Title,
				Description: c.Description,
			})
		}
		src.answers[q.Pillar] = append(src.answers[q.Pillar], answer)
	}

	return src, nil
}

// catalogRisk fills in UNANSWERED for questions the catalog leaves unrated.
func catalogRisk(q catalogQuestion) review.RiskLevel {
	if q.Risk == "" {
		return review.RiskUnanswered
	}
	return review.RiskLevel(q.Risk)
}

// WorkloadID returns the id of the single workload this catalog serves.
func (c *CatalogSource) WorkloadID() string {
	return c.workload.WorkloadID
}

func (c *CatalogSource) GetWorkload(ctx context.Context, workloadID string) (*review.Workload, error) {
	if workloadID != c.workload.WorkloadID {
		return nil, fmt.Errorf("workload %s not in catalog", workloadID)
	}
	w := c.workload
	return &w, nil
}

func (c *CatalogSource) ListAnswers(ctx context.Context, workloadID, pillarID, nextToken string) (*AnswerPage, error) {
	if workloadID != c.workload.WorkloadID {
		return nil, fmt.Errorf("workload %s not in catalog", workloadID)
	}
	return &AnswerPage{Answers: c.answers[pillarID]}, nil
}
