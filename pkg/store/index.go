package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

const indexFileName = "workload_index.json"

func (s *Store) indexPath() string {
	return filepath.Join(s.dataDir, indexFileName)
}

// loadIndex reads the workload version index. A missing file is an empty
// index, not an error.
func (s *Store) loadIndex() (map[string][]IndexEntry, error) {
	data, err := os.ReadFile(s.indexPath())
	if os.IsNotExist(err) {
		return make(map[string][]IndexEntry), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read workload index: %w", err)
	}

	index := make(map[string][]IndexEntry)
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("failed to parse workload index: %w", err)
	}
	return index, nil
}

func (s *Store) saveIndex(index map[string][]IndexEntry) error {
	data, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal workload index: %w", err)
	}
	if err := os.WriteFile(s.indexPath(), data, 0644); err != nil {
		return fmt.Errorf("failed to write workload index: %w", err)
	}
	return nil
}

// appendIndexEntry records a newly saved report in the version index,
// keeping each workload's entries sorted by version.
func (s *Store) appendIndexEntry(workloadID string, entry IndexEntry) error {
	s.indexMu.Lock()
	defer s.indexMu.Unlock()

	index, err := s.loadIndex()
	if err != nil {
		return err
	}

	entries := append(index[workloadID], entry)
	sort.Slice(entries, func(i, j int) bool { return entries[i].Version < entries[j].Version })
	index[workloadID] = entries

	return s.saveIndex(index)
}

// removeIndexEntry purges the index row for reportID. Every delete must go
// through here so the index never references a dead record.
func (s *Store) removeIndexEntry(reportID string) error {
	s.indexMu.Lock()
	defer s.indexMu.Unlock()

	index, err := s.loadIndex()
	if err != nil {
		return err
	}

	changed := false
	for workloadID, entries := range index {
		kept := entries[:0]
		for _, e := range entries {
			if e.ReportID == reportID {
				changed = true
				continue
			}
			kept = append(kept, e)
		}
		if len(kept) == 0 {
			delete(index, workloadID)
		} else {
			index[workloadID] = kept
		}
	}

	if !changed {
		return nil
	}
	return s.saveIndex(index)
}
