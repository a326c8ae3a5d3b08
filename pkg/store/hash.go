package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/toraif/torwar/pkg/review"
)

// dataHash computes the content fingerprint of a report tree: sha256 over a
// canonical serialization, truncated to 16 hex characters. The tree is
// round-tripped through a generic value first so that every object is
// marshalled as a map with sorted keys, making the hash independent of the
// key order of the input representation.
func dataHash(tree *review.ReportTree) (string, error) {
	raw, err := json.Marshal(tree)
	if err != nil {
		return "", fmt.Errorf("failed to serialize report data: %w", err)
	}

	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return "", fmt.Errorf("failed to canonicalize report data: %w", err)
	}

	canonical, err := json.Marshal(generic)
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize report data: %w", err)
	}

	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:])[:16], nil
}
