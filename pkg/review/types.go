package review

import "time"

// RiskLevel is the severity assigned to a question based on its selected choices.
type RiskLevel string

const (
	RiskHigh       RiskLevel = "HIGH"
	RiskMedium     RiskLevel = "MEDIUM"
	RiskLow        RiskLevel = "LOW"
	RiskNone       RiskLevel = "NONE"
	RiskUnanswered RiskLevel = "UNANSWERED"
)

// Pillars maps the six Well-Architected pillar identifiers to display names.
var Pillars = map[string]string{
	"operationalExcellence": "Operational Excellence",
	"security":              "Security",
	"reliability":           "Reliability",
	"performance":           "Performance Efficiency",
	"costOptimization":      "Cost Optimization",
	"sustainability":        "Sustainability",
}

// PillarOrder lists pillar identifiers in the order reviews walk through them.
var PillarOrder = []string{
	"operationalExcellence",
	"security",
	"reliability",
	"performance",
	"costOptimization",
	"sustainability",
}

// IsPillar reports whether id is one of the six known pillar identifiers.
func IsPillar(id string) bool {
	_, ok := Pillars[id]
	return ok
}

// Workload describes the system under review. Fields beyond the identifier
// and name are passed through from the answer source untouched.
type Workload struct {
	WorkloadID   string `json:"workload_id"`
	WorkloadName string `json:"workload_name"`
	Environment  string `json:"environment,omitempty"`
	Description  string `json:"description,omitempty"`
	Owner        string `json:"owner,omitempty"`
}

// Choice is one selectable option of a question.
type Choice struct {
	ChoiceID    string `json:"ChoiceId"`
	Title       string `json:"Title"`
	Description string `json:"Description,omitempty"`
}

// QuestionAnswer is a single assessable item within a pillar. Field names on
// the wire follow the Well-Architected API casing so trees captured from the
// remote source hash and compare the same way as locally built ones.
type QuestionAnswer struct {
	QuestionID      string    `json:"QuestionId"`
	QuestionTitle   string    `json:"QuestionTitle"`
	SelectedChoices []string  `json:"SelectedChoices"`
	Choices         []Choice  `json:"Choices,omitempty"`
	Risk            RiskLevel `json:"Risk,omitempty"`
	IsApplicable    bool      `json:"IsApplicable"`
	Notes           string    `json:"Notes,omitempty"`
}

// PillarSection holds the questions of one pillar in source order. Order is
// not significant for comparison, which keys on question identifiers.
type PillarSection struct {
	Name      string           `json:"name"`
	Questions []QuestionAnswer `json:"questions"`
}

// ReportTree is a full capture of a review at a point in time.
type ReportTree struct {
	Workload    Workload                 `json:"workload"`
	Pillars     map[string]PillarSection `json:"pillars"`
	GeneratedAt time.Time                `json:"generated_at"`
}
