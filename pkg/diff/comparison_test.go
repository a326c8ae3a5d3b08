package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toraif/torwar/pkg/review"
	"github.com/toraif/torwar/pkg/store"
)

// Walks the full save-then-compare flow: two versions of the same workload
// where one question gains a choice and drops from HIGH to LOW risk.
func TestCompareSavedVersions(t *testing.T) {
	s := store.New(t.TempDir(), nil)

	v1Tree := treeWith("security",
		review.QuestionAnswer{
			QuestionID:      "Q1",
			QuestionTitle:   "How do you protect your root user?",
			SelectedChoices: []string{"c1"},
			Risk:            review.RiskHigh,
			IsApplicable:    true,
		},
	)
	v2Tree := treeWith("security",
		review.QuestionAnswer{
			QuestionID:      "Q1",
			QuestionTitle:   "How do you protect your root user?",
			SelectedChoices: []string{"c1", "c2"},
			Risk:            review.RiskLow,
			IsApplicable:    true,
		},
	)

	id1, err := s.Save("W1", "Demo", v1Tree, "", "")
	require.NoError(t, err)
	id2, err := s.Save("W1", "Demo", v2Tree, "", "")
	require.NoError(t, err)

	rec1, err := s.Get(id1)
	require.NoError(t, err)
	rec2, err := s.Get(id2)
	require.NoError(t, err)

	assert.Equal(t, 1, rec1.Metadata.Version)
	assert.Equal(t, 2, rec2.Metadata.Version)
	assert.Equal(t, 1, rec1.Metadata.Summary.TotalQuestions)
	assert.Equal(t, 1, rec1.Metadata.Summary.AnsweredQuestions)
	assert.Equal(t, 1, rec1.Metadata.Summary.HighRisks)
	assert.NotEqual(t, rec1.Metadata.DataHash, rec2.Metadata.DataHash)

	cmp, err := CompareRecords(rec1, rec2)
	require.NoError(t, err)

	assert.Equal(t, id1, cmp.Report1.ID)
	assert.Equal(t, id2, cmp.Report2.ID)

	security := cmp.Differences.PillarChanges["security"]
	require.Len(t, security.RiskChanges, 1)
	assert.Equal(t, review.RiskHigh, security.RiskChanges[0].OldRisk)
	assert.Equal(t, review.RiskLow, security.RiskChanges[0].NewRisk)
	require.Len(t, security.ChangedAnswers, 1)
	assert.Equal(t, []string{"c1"}, security.ChangedAnswers[0].OldChoices)
	assert.Equal(t, []string{"c1", "c2"}, security.ChangedAnswers[0].NewChoices)

	assert.Equal(t, -1, cmp.Summary.HighRiskChange)
	assert.Equal(t, 1, cmp.Summary.LowRiskChange)
	assert.Equal(t, 1, cmp.Summary.OverallImprovement)
}

func TestCompareRecordsRejectsSameReport(t *testing.T) {
	s := store.New(t.TempDir(), nil)

	tree := treeWith("security",
		review.QuestionAnswer{QuestionID: "Q1", SelectedChoices: []string{"c1"}, Risk: review.RiskHigh},
	)
	id, err := s.Save("W1", "Demo", tree, "", "")
	require.NoError(t, err)

	rec, err := s.Get(id)
	require.NoError(t, err)

	_, err = CompareRecords(rec, rec)
	assert.Error(t, err)

	_, err = CompareRecords(rec, nil)
	assert.Error(t, err)
}
