package diff

import (
	"fmt"
	"time"

	"github.com/toraif/torwar/pkg/review"
	"github.com/toraif/torwar/pkg/store"
)

// ReportHeader is the identifying metadata of one side of a comparison.
type ReportHeader struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	Version   int       `json:"version"`
}

// DeltaSummary is the high-level change between two reports, computed from
// their frozen summaries as B minus A. OverallImprovement is
// (highA+mediumA)-(highB+mediumB): positive means the second report carries
// fewer high and medium risks.
type DeltaSummary struct {
	QuestionsChange    int `json:"questions_change"`
	HighRiskChange     int `json:"high_risk_change"`
	MediumRiskChange   int `json:"medium_risk_change"`
	LowRiskChange      int `json:"low_risk_change"`
	OverallImprovement int `json:"overall_improvement"`
}

// Comparison is the full result of comparing two saved reports.
type Comparison struct {
	Report1     ReportHeader `json:"report1"`
	Report2     ReportHeader `json:"report2"`
	Differences *Differences `json:"differences"`
	Summary     DeltaSummary `json:"summary"`
}

// ValidateComparePair rejects caller input before any store access: both
// ids must be present and distinct.
func ValidateComparePair(reportID1, reportID2 string) error {
	if reportID1 == "" || reportID2 == "" {
		return fmt.Errorf("two report ids are required for comparison")
	}
	if reportID1 == reportID2 {
		return fmt.Errorf("cannot compare a report with itself")
	}
	return nil
}

// CompareRecords compares two saved records and derives the delta summary
// from their frozen metadata summaries.
func CompareRecords(a, b *store.Record) (*Comparison, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("two reports are required for comparison")
	}
	if err := ValidateComparePair(a.Metadata.ReportID, b.Metadata.ReportID); err != nil {
		return nil, err
	}

	return &Comparison{
		Report1:     header(&a.Metadata),
		Report2:     header(&b.Metadata),
		Differences: Compare(&a.ReportData, &b.ReportData),
		Summary:     Delta(a.Metadata.Summary, b.Metadata.Summary),
	}, nil
}

// Delta computes the B-minus-A summary change.
func Delta(a, b review.Summary) DeltaSummary {
	return DeltaSummary{
		QuestionsChange:    b.AnsweredQuestions - a.AnsweredQuestions,
		HighRiskChange:     b.HighRisks - a.HighRisks,
		MediumRiskChange:   b.MediumRisks - a.MediumRisks,
		LowRiskChange:      b.LowRisks - a.LowRisks,
		OverallImprovement: (a.HighRisks + a.MediumRisks) - (b.HighRisks + b.MediumRisks),
	}
}

func header(meta *store.Metadata) ReportHeader {
	return ReportHeader{
		ID:        meta.ReportID,
		Name:      meta.CustomName,
		CreatedAt: meta.CreatedAt,
		Version:   meta.Version,
	}
}
