// Package track applies task outcomes to playbook documents: per-pattern
// usage counters and new lessons. All functions mutate the document in
// memory only; persistence stays with the store.
package track

import (
	"strings"
	"time"

	"github.com/mesh-intelligence/playbook/pkg/types"
)

// Outcome is the result of a task with respect to referenced patterns.
type Outcome int

const (
	// OutcomeNone records no counter change.
	OutcomeNone Outcome = iota
	// OutcomeHelpful marks referenced patterns as having contributed to a
	// successful task.
	OutcomeHelpful
	// OutcomeHarmful marks referenced patterns as having contributed to a
	// failed task.
	OutcomeHarmful
)

// RecordOutcome applies an outcome to each referenced pattern: uses and the
// matching success/failure counter increment by one, last_used is set to
// now. IDs not present in the document are skipped and returned so the
// caller can report them; the operation still completes for the valid
// subset. Document-level task counters are bumped once per call.
func RecordOutcome(doc *types.Document, ids []string, outcome Outcome) (missing []string) {
	if outcome == OutcomeNone {
		return nil
	}
	now := time.Now().UTC()
	helpful := outcome == OutcomeHelpful

	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		p := doc.FindPattern(id)
		if p == nil {
			missing = append(missing, id)
			continue
		}
		p.MarkUsed(helpful, now)
	}

	if helpful {
		doc.TaskSuccesses++
		doc.LastSuccess = &now
	} else {
		doc.TaskFailures++
		doc.LastFailure = &now
	}
	return missing
}

// RecordLesson adds a new lesson to the document, optionally applying an
// immediate outcome to it. A lesson whose text already appears
// (case-insensitive) inside an existing pattern's content is not re-added;
// the existing pattern is returned with added=false.
func RecordLesson(doc *types.Document, category, content, endpoint string, outcome Outcome) (p *types.Pattern, added bool, err error) {
	if existing := findDuplicate(doc, content); existing != nil {
		return existing, false, nil
	}

	p, err = doc.AddPattern(category, content, endpoint)
	if err != nil {
		return nil, false, err
	}
	if outcome != OutcomeNone {
		p.MarkUsed(outcome == OutcomeHelpful, time.Now().UTC())
	}
	return p, true, nil
}

// PitfallContent normalizes a failure lesson: prefixed "AVOID: " unless the
// text already starts that way.
func PitfallContent(lesson string) string {
	if strings.HasPrefix(lesson, "AVOID") {
		return lesson
	}
	return "AVOID: " + lesson
}

// findDuplicate returns an existing pattern whose content contains the
// lesson text, ignoring case. Empty lessons never match.
func findDuplicate(doc *types.Document, content string) *types.Pattern {
	needle := strings.ToLower(strings.TrimSpace(content))
	if needle == "" {
		return nil
	}
	for i := range doc.Patterns {
		if strings.Contains(strings.ToLower(doc.Patterns[i].Content), needle) {
			return &doc.Patterns[i]
		}
	}
	return nil
}
