package types

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Pattern categories. Every pattern belongs to exactly one category.
const (
	CategoryPitfall  = "pitfall"
	CategoryStrategy = "strategy"
	CategoryDomain   = "domain"
	CategoryEndpoint = "endpoint"
	CategoryCode     = "code"
)

// Categories lists all recognized category values in display order.
var Categories = []string{
	CategoryPitfall,
	CategoryStrategy,
	CategoryDomain,
	CategoryEndpoint,
	CategoryCode,
}

// validCategories is the set of recognized category values.
var validCategories = map[string]bool{
	CategoryPitfall:  true,
	CategoryStrategy: true,
	CategoryDomain:   true,
	CategoryEndpoint: true,
	CategoryCode:     true,
}

// ValidCategory reports whether the given value is a recognized category.
func ValidCategory(category string) bool {
	return validCategories[category]
}

// ParseCategory normalizes and validates a category value.
// Returns ErrInvalidCategory for values outside the closed enumeration.
func ParseCategory(s string) (string, error) {
	c := strings.ToLower(strings.TrimSpace(s))
	if !validCategories[c] {
		return "", fmt.Errorf("%w: %q (valid: %s)", ErrInvalidCategory, s, strings.Join(Categories, ", "))
	}
	return c, nil
}

// Pattern is a single learned lesson with usage counters.
type Pattern struct {
	ID        string     `json:"id"`
	Category  string     `json:"category"`
	Content   string     `json:"content"`
	Endpoint  string     `json:"endpoint,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	Uses      int        `json:"uses"`
	Successes int        `json:"successes"`
	Failures  int        `json:"failures"`
	LastUsed  *time.Time `json:"last_used,omitempty"`
}

// NewPattern constructs a Pattern with a fresh unique ID and zero counters.
// Returns ErrInvalidCategory or ErrInvalidContent on bad input.
func NewPattern(category, content, endpoint string) (*Pattern, error) {
	cat, err := ParseCategory(category)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrInvalidContent
	}
	return &Pattern{
		ID:        newPatternID(cat),
		Category:  cat,
		Content:   content,
		Endpoint:  endpoint,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// newPatternID generates a pattern ID of the form "<initial>-<8 hex chars>",
// e.g. "S-3f9a01bc" for a strategy pattern. The suffix comes from a random
// UUID, so IDs are unique without consulting the document.
func newPatternID(category string) string {
	prefix := strings.ToUpper(category[:1])
	id := uuid.New()
	return fmt.Sprintf("%s-%x", prefix, id[:4])
}

// Score returns the pattern's raw usefulness score: successes minus failures.
// Recency and prior adjustments are applied by the ranker.
func (p *Pattern) Score() int {
	return p.Successes - p.Failures
}

// MarkUsed applies an outcome to the pattern: uses always increments, and
// exactly one of successes or failures increments. Counters never decrease.
func (p *Pattern) MarkUsed(helpful bool, now time.Time) {
	p.Uses++
	if helpful {
		p.Successes++
	} else {
		p.Failures++
	}
	t := now.UTC()
	p.LastUsed = &t
}
