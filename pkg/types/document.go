package types

import "time"

// DocumentVersion is the current playbook document format version.
const DocumentVersion = 1

// Document is the full per-project collection of patterns plus metadata.
// Pattern order is insertion order and is preserved across save/load.
type Document struct {
	Version       int        `json:"version"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	TaskSuccesses int        `json:"task_successes"`
	TaskFailures  int        `json:"task_failures"`
	LastSuccess   *time.Time `json:"last_success,omitempty"`
	LastFailure   *time.Time `json:"last_failure,omitempty"`
	Patterns      []Pattern  `json:"patterns"`
}

// NewDocument returns an empty document with the default version and
// creation timestamp set to now.
func NewDocument() *Document {
	now := time.Now().UTC()
	return &Document{
		Version:   DocumentVersion,
		CreatedAt: now,
		UpdatedAt: now,
		Patterns:  []Pattern{},
	}
}

// AddPattern constructs a new pattern and appends it to the document.
// The returned pointer aliases the appended element.
func (d *Document) AddPattern(category, content, endpoint string) (*Pattern, error) {
	p, err := NewPattern(category, content, endpoint)
	if err != nil {
		return nil, err
	}
	d.Patterns = append(d.Patterns, *p)
	return &d.Patterns[len(d.Patterns)-1], nil
}

// FindPattern returns the pattern with the given ID, or nil if absent.
func (d *Document) FindPattern(id string) *Pattern {
	for i := range d.Patterns {
		if d.Patterns[i].ID == id {
			return &d.Patterns[i]
		}
	}
	return nil
}

// CountByCategory returns the number of patterns per category.
func (d *Document) CountByCategory() map[string]int {
	counts := make(map[string]int, len(Categories))
	for i := range d.Patterns {
		counts[d.Patterns[i].Category]++
	}
	return counts
}

// Validate checks document-level invariants: known version, valid
// categories, non-empty content, unique IDs, non-negative counters.
func (d *Document) Validate() error {
	seen := make(map[string]bool, len(d.Patterns))
	for i := range d.Patterns {
		p := &d.Patterns[i]
		if !validCategories[p.Category] {
			return ErrInvalidCategory
		}
		if p.Content == "" {
			return ErrInvalidContent
		}
		if p.ID == "" || seen[p.ID] {
			return ErrCorruptDocument
		}
		seen[p.ID] = true
		if p.Uses < 0 || p.Successes < 0 || p.Failures < 0 {
			return ErrCorruptDocument
		}
	}
	return nil
}
