// Package store owns durable persistence of report snapshots: a file per
// record under the data directory, a metadata copy per record for fast
// listing, and a per-workload version index.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/toraif/torwar/pkg/logger"
	"github.com/toraif/torwar/pkg/review"
)

const (
	workloadsDir = "workloads"
	metadataDir  = "metadata"
	metaSuffix   = "_meta.json"
)

// Store persists report records on the local filesystem. Operations are
// safe for concurrent use; version assignment is serialized per workload.
type Store struct {
	dataDir string
	log     *logger.Logger

	mu          sync.Mutex
	workloadMus map[string]*sync.Mutex

	// indexMu serializes every read-modify-write of the shared workload
	// index file. The per-workload locks only order saves within one
	// workload; saves for different workloads and deletes still mutate the
	// same index file.
	indexMu sync.Mutex
}

// New creates a store rooted at dataDir. Directory creation is best-effort:
// failures are logged and the store still constructs, so a read-only data
// dir degrades instead of crashing the caller at startup.
func New(dataDir string, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	s := &Store{
		dataDir:     dataDir,
		log:         log,
		workloadMus: make(map[string]*sync.Mutex),
	}
	for _, dir := range []string{dataDir, filepath.Join(dataDir, workloadsDir), filepath.Join(dataDir, metadataDir)} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			s.log.Warn("could not create reports directory", "dir", dir, "error", err)
		}
	}
	return s
}

// DataDir returns the root of the store's on-disk layout.
func (s *Store) DataDir() string {
	return s.dataDir
}

func (s *Store) recordPath(reportID string) string {
	return filepath.Join(s.dataDir, workloadsDir, reportID+".json")
}

func (s *Store) metadataPath(reportID string) string {
	return filepath.Join(s.dataDir, metadataDir, reportID+metaSuffix)
}

// workloadLock returns the mutex guarding version assignment for a workload.
func (s *Store) workloadLock(workloadID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	mu, ok := s.workloadMus[workloadID]
	if !ok {
		mu = &sync.Mutex{}
		s.workloadMus[workloadID] = mu
	}
	return mu
}

// Save persists a report tree as a new immutable record and returns its
// generated report id. The record file is written first, then the metadata
// copy, then the index entry; failure of any step fails the save and
// best-effort cleanup removes what was already written.
func (s *Store) Save(workloadID, workloadName string, tree *review.ReportTree, userNotes, customName string) (string, error) {
	if strings.TrimSpace(workloadID) == "" {
		return "", fmt.Errorf("workload id is required")
	}
	if strings.TrimSpace(workloadName) == "" {
		return "", fmt.Errorf("workload name is required")
	}
	if tree == nil {
		return "", fmt.Errorf("report tree is required")
	}

	mu := s.workloadLock(workloadID)
	mu.Lock()
	defer mu.Unlock()

	reportID := uuid.NewString()
	createdAt := time.Now().UTC()

	hash, err := dataHash(tree)
	if err != nil {
		return "", fmt.Errorf("failed to hash report data: %w", err)
	}

	version, err := s.nextVersion(workloadID)
	if err != nil {
		return "", err
	}

	if customName == "" {
		customName = fmt.Sprintf("%s - %s", workloadName, createdAt.Format("2006-01-02 15:04"))
	}

	meta := Metadata{
		ReportID:     reportID,
		WorkloadID:   workloadID,
		WorkloadName: workloadName,
		CustomName:   customName,
		CreatedAt:    createdAt,
		UserNotes:    userNotes,
		Version:      version,
		DataHash:     hash,
		Summary:      review.Summarize(tree),
	}

	record := Record{Metadata: meta, ReportData: *tree}

	if err := writeJSON(s.recordPath(reportID), &record); err != nil {
		return "", fmt.Errorf("failed to save report: %w", err)
	}
	if err := writeJSON(s.metadataPath(reportID), &meta); err != nil {
		s.cleanupPartialSave(reportID)
		return "", fmt.Errorf("failed to save report metadata: %w", err)
	}
	entry := IndexEntry{
		ReportID:   reportID,
		Version:    version,
		CreatedAt:  createdAt,
		CustomName: customName,
	}
	if err := s.appendIndexEntry(workloadID, entry); err != nil {
		s.cleanupPartialSave(reportID)
		return "", fmt.Errorf("failed to update workload index: %w", err)
	}

	s.log.Info("report saved",
		"report_id", reportID,
		"workload_id", workloadID,
		"version", version,
		"data_hash", hash)
	return reportID, nil
}

// cleanupPartialSave removes whatever a failed save already wrote so list
// and get cannot disagree about the record's existence.
func (s *Store) cleanupPartialSave(reportID string) {
	for _, path := range []string{s.recordPath(reportID), s.metadataPath(reportID)} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			s.log.Warn("could not clean up partially saved report", "path", path, "error", err)
		}
	}
}

// List returns metadata for all live records, newest first. When workloadID
// is non-empty only that workload's records are returned. Corrupt or
// unreadable metadata files are skipped and logged, never fatal.
func (s *Store) List(workloadID string) ([]Metadata, error) {
	dir := filepath.Join(s.dataDir, metadataDir)
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata directory: %w", err)
	}

	var reports []Metadata
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), metaSuffix) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			s.log.Warn("skipping unreadable report metadata", "path", path, "error", err)
			continue
		}
		var meta Metadata
		if err := json.Unmarshal(data, &meta); err != nil {
			s.log.Warn("skipping corrupt report metadata", "path", path, "error", err)
			continue
		}
		if workloadID != "" && meta.WorkloadID != workloadID {
			continue
		}
		reports = append(reports, meta)
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].CreatedAt.After(reports[j].CreatedAt)
	})
	return reports, nil
}

// Get loads a full record by id. Returns ErrNotFound when no record exists
// and ErrCorrupt when the record file cannot be parsed.
func (s *Store) Get(reportID string) (*Record, error) {
	data, err := os.ReadFile(s.recordPath(reportID))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("report %s: %w", reportID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read report %s: %w", reportID, err)
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("report %s: %w: %v", reportID, ErrCorrupt, err)
	}
	return &record, nil
}

// Delete removes a record, its metadata copy, and its workload index entry.
// Returns false with a nil error when the record did not exist; deleting is
// idempotent.
func (s *Store) Delete(reportID string) (bool, error) {
	recordPath := s.recordPath(reportID)
	metaPath := s.metadataPath(reportID)

	_, recordErr := os.Stat(recordPath)
	_, metaErr := os.Stat(metaPath)
	if os.IsNotExist(recordErr) && os.IsNotExist(metaErr) {
		return false, nil
	}

	if err := os.Remove(recordPath); err != nil && !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to delete report %s: %w", reportID, err)
	}
	if err := os.Remove(metaPath); err != nil && !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to delete report metadata %s: %w", reportID, err)
	}
	if err := s.removeIndexEntry(reportID); err != nil {
		return false, fmt.Errorf("failed to update workload index: %w", err)
	}

	s.log.Info("report deleted", "report_id", reportID)
	return true, nil
}

// WorkloadVersions returns all live records for a workload, ascending by
// version.
func (s *Store) WorkloadVersions(workloadID string) ([]Metadata, error) {
	reports, err := s.List(workloadID)
	if err != nil {
		return nil, err
	}
	sort.Slice(reports, func(i, j int) bool {
		return reports[i].Version < reports[j].Version
	})
	return reports, nil
}

// nextVersion is max(live versions for the workload)+1, starting at 1.
// Callers must hold the workload lock.
func (s *Store) nextVersion(workloadID string) (int, error) {
	reports, err := s.List(workloadID)
	if err != nil {
		return 0, err
	}
	maxVersion := 0
	for _, r := range reports {
		if r.Version > maxVersion {
			maxVersion = r.Version
		}
	}
	return maxVersion + 1, nil
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
