// Package rank selects and orders patterns to surface at task start.
// Ranking is a pure function of the document and filter: no side effects,
// deterministic given identical inputs.
package rank

import (
	"math"
	"sort"
	"time"

	"github.com/mesh-intelligence/playbook/pkg/types"
)

// Scoring constants.
//
// The recency bonus halves every 30 days since last use, starting at
// recencyWeight for a pattern used just now, and is zero for patterns never
// used. Patterns with zero uses instead receive newPatternPrior so freshly
// seeded lessons are not permanently buried behind high-use ones.
const (
	recencyWeight   = 2.0
	recencyHalfLife = 30.0 // days
	newPatternPrior = 0.5
	hoursPerDay     = 24.0
)

// Filter narrows and truncates ranking results.
type Filter struct {
	// Endpoint restricts results to patterns relevant to this endpoint.
	// Empty means no restriction.
	Endpoint string

	// Limit caps the number of returned patterns. Zero means all matches.
	Limit int
}

// Rank returns the patterns relevant to the filter, ordered by descending
// score, then descending creation time, then ascending ID.
func Rank(doc *types.Document, filter Filter) []types.Pattern {
	return RankAt(doc, filter, time.Now().UTC())
}

// RankAt is Rank with an explicit evaluation time, for deterministic tests.
func RankAt(doc *types.Document, filter Filter, now time.Time) []types.Pattern {
	var matched []types.Pattern
	for i := range doc.Patterns {
		if Matches(&doc.Patterns[i], filter.Endpoint) {
			matched = append(matched, doc.Patterns[i])
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		si, sj := ScoreAt(&matched[i], now), ScoreAt(&matched[j], now)
		if si != sj {
			return si > sj
		}
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID < matched[j].ID
	})

	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched
}

// Matches reports whether a pattern is relevant under an endpoint filter.
// With no filter every pattern matches. With a filter, a pattern matches if
// its endpoint equals the filter exactly, or it is a domain pattern
// (terminology mappings always apply), or it is a general-purpose pitfall
// or strategy with no endpoint of its own.
func Matches(p *types.Pattern, endpoint string) bool {
	if endpoint == "" {
		return true
	}
	if p.Endpoint == endpoint {
		return true
	}
	if p.Category == types.CategoryDomain {
		return true
	}
	if (p.Category == types.CategoryPitfall || p.Category == types.CategoryStrategy) && p.Endpoint == "" {
		return true
	}
	return false
}

// ScoreAt computes the ranking score for a pattern at the given time:
// successes - failures, plus the recency bonus or new-pattern prior.
func ScoreAt(p *types.Pattern, now time.Time) float64 {
	score := float64(p.Successes - p.Failures)
	if p.Uses == 0 {
		return score + newPatternPrior
	}
	if p.LastUsed == nil {
		return score
	}
	days := now.Sub(*p.LastUsed).Hours() / hoursPerDay
	if days < 0 {
		days = 0
	}
	return score + recencyWeight*math.Pow(0.5, days/recencyHalfLife)
}
