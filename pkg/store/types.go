package store

import (
	"time"

	"github.com/toraif/torwar/pkg/review"
)

// Metadata is the lightweight, listable part of a saved report. It is
// written twice: embedded in the record file and standalone for fast
// listing without loading full trees.
type Metadata struct {
	ReportID     string         `json:"report_id"`
	WorkloadID   string         `json:"workload_id"`
	WorkloadName string         `json:"workload_name"`
	CustomName   string         `json:"custom_name"`
	CreatedAt    time.Time      `json:"created_at"`
	UserNotes    string         `json:"user_notes"`
	Version      int            `json:"version"`
	DataHash     string         `json:"data_hash"`
	Summary      review.Summary `json:"summary"`
}

// Record is the full persisted unit: metadata plus the verbatim report tree.
// Records are immutable once saved.
type Record struct {
	Metadata   Metadata          `json:"metadata"`
	ReportData review.ReportTree `json:"report_data"`
}

// IndexEntry is one row of the per-workload version index.
type IndexEntry struct {
	ReportID   string    `json:"report_id"`
	Version    int       `json:"version"`
	CreatedAt  time.Time `json:"created_at"`
	CustomName string    `json:"custom_name"`
}
