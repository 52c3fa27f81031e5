package domain

import "fmt"

// Bundle is an externally supplied set of categories and words submitted for import.
// Both lists must be present; an empty list is still present.
type Bundle struct {
	Categories []Category      `json:"categories" validate:"required"`
	Words      []Word          `json:"words" validate:"required"`
	Metadata   *BundleMetadata `json:"metadata,omitempty"`
}

// BundleMetadata describes where a bundle came from
type BundleMetadata struct {
	Version    string `json:"version"`
	ImportedAt int64  `json:"importedAt"`
	Source     string `json:"source"`
}

// ImportResult reports the outcome of a merge
type ImportResult struct {
	Source string `json:"source"`
	Added  int    `json:"added"`
	Total  int    `json:"total"`
}

// Message returns the user-facing summary of the import
func (r ImportResult) Message() string {
	return fmt.Sprintf("%d new words added. %d words in total.", r.Added, r.Total)
}
