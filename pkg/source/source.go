// Package source builds report trees from an answer source. The source is
// an explicit dependency handed to the builder, standing in for the remote
// Well-Architected API; nothing in this package holds global client state.
package source

import (
	"context"
	"fmt"
	"time"

	"github.com/toraif/torwar/pkg/logger"
	"github.com/toraif/torwar/pkg/review"
)

// AnswerPage is one page of answers for a pillar. An empty NextToken marks
// the last page.
type AnswerPage struct {
	Answers   []review.QuestionAnswer
	NextToken string
}

// AnswerSource provides workload and answer data for review. Implementations
// wrap the remote Well-Architected API or a local catalog.
type AnswerSource interface {
	GetWorkload(ctx context.Context, workloadID string) (*review.Workload, error)
	ListAnswers(ctx context.Context, workloadID, pillarID, nextToken string) (*AnswerPage, error)
}

// Builder assembles report trees from an answer source.
type Builder struct {
	src AnswerSource
	log *logger.Logger
	now func() time.Time
}

func NewBuilder(src AnswerSource, log *logger.Logger) *Builder {
	if log == nil {
		log = logger.Nop()
	}
	return &Builder{src: src, log: log, now: time.Now}
}

// Build captures the current review state of a workload into a report tree.
// pillarIDs selects which pillars to include; nil or empty means all six.
// Unknown pillar ids are skipped with a warning. A pillar whose answers
// cannot be listed is logged and omitted rather than failing the whole
// build; a workload lookup failure is fatal.
func (b *Builder) Build(ctx context.Context, workloadID string, pillarIDs []string) (*review.ReportTree, error) {
	workload, err := b.src.GetWorkload(ctx, workloadID)
	if err != nil {
		return nil, fmt.Errorf("failed to load workload %s: %w", workloadID, err)
	}

	if len(pillarIDs) == 0 {
		pillarIDs = review.PillarOrder
	}

	tree := &review.ReportTree{
		Workload:    *workload,
		Pillars:     make(map[string]review.PillarSection),
		GeneratedAt: b.now().UTC(),
	}

	for _, pillarID := range pillarIDs {
		if !review.IsPillar(pillarID) {
			b.log.Warn("skipping unknown pillar", "pillar_id", pillarID)
			continue
		}

		questions, err := b.collectPillar(ctx, workloadID, pillarID)
		if err != nil {
			b.log.Error("failed to collect pillar answers",
				"workload_id", workloadID,
				"pillar_id", pillarID,
				"error", err)
			continue
		}

		tree.Pillars[pillarID] = review.PillarSection{
			Name:      review.Pillars[pillarID],
			Questions: questions,
		}
	}

	return tree, nil
}

// collectPillar pages through all answers of one pillar.
func (b *Builder) collectPillar(ctx context.Context, workloadID, pillarID string) ([]review.QuestionAnswer, error) {
	var questions []review.QuestionAnswer
	token := ""
	for {
		page, err := b.src.ListAnswers(ctx, workloadID, pillarID, token)
		if err != nil {
			return nil, err
		}
		questions = append(questions, page.Answers...)
		if page.NextToken == "" {
			return questions, nil
		}
		token = page.NextToken
	}
}
