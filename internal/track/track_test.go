package track

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/playbook/pkg/types"
)

func seededDoc(t *testing.T) (*types.Document, *types.Pattern) {
	t.Helper()
	doc := types.NewDocument()
	p, err := doc.AddPattern(types.CategoryStrategy, "test first", "")
	require.NoError(t, err)
	return doc, p
}

func TestRecordOutcomeHelpful(t *testing.T) {
	doc, p := seededDoc(t)

	missing := RecordOutcome(doc, []string{p.ID}, OutcomeHelpful)
	assert.Empty(t, missing)

	got := doc.FindPattern(p.ID)
	assert.Equal(t, 1, got.Uses)
	assert.Equal(t, 1, got.Successes)
	assert.Equal(t, 0, got.Failures, "helpful outcome never touches failures")
	assert.NotNil(t, got.LastUsed)

	assert.Equal(t, 1, doc.TaskSuccesses)
	assert.Equal(t, 0, doc.TaskFailures)
	assert.NotNil(t, doc.LastSuccess)
}

func TestRecordOutcomeHarmful(t *testing.T) {
	doc, p := seededDoc(t)

	RecordOutcome(doc, []string{p.ID}, OutcomeHarmful)

	got := doc.FindPattern(p.ID)
	assert.Equal(t, 1, got.Uses)
	assert.Equal(t, 0, got.Successes)
	assert.Equal(t, 1, got.Failures)

	assert.Equal(t, 1, doc.TaskFailures)
	assert.NotNil(t, doc.LastFailure)
}

func TestRecordOutcomeUnknownIDs(t *testing.T) {
	doc, p := seededDoc(t)

	// Unknown ids are reported but the valid subset is still applied.
	missing := RecordOutcome(doc, []string{"X-deadbeef", p.ID, "Y-deadbeef"}, OutcomeHelpful)
	assert.Equal(t, []string{"X-deadbeef", "Y-deadbeef"}, missing)
	assert.Equal(t, 1, doc.FindPattern(p.ID).Uses)
}

func TestRecordOutcomeSkipsBlankIDs(t *testing.T) {
	doc, _ := seededDoc(t)

	missing := RecordOutcome(doc, []string{"", "  "}, OutcomeHelpful)
	assert.Empty(t, missing)
}

func TestRecordOutcomeNone(t *testing.T) {
	doc, p := seededDoc(t)

	missing := RecordOutcome(doc, []string{p.ID}, OutcomeNone)
	assert.Empty(t, missing)
	assert.Zero(t, doc.FindPattern(p.ID).Uses)
	assert.Zero(t, doc.TaskSuccesses)
}

func TestRecordOutcomeMonotonic(t *testing.T) {
	doc, p := seededDoc(t)

	for i := 0; i < 20; i++ {
		prev := *doc.FindPattern(p.ID)
		RecordOutcome(doc, []string{p.ID}, OutcomeHelpful)
		cur := doc.FindPattern(p.ID)
		assert.Greater(t, cur.Uses, prev.Uses)
		assert.Greater(t, cur.Successes, prev.Successes)
		assert.Equal(t, prev.Failures, cur.Failures)
	}
}

func TestRecordLesson(t *testing.T) {
	t.Run("adds new lesson", func(t *testing.T) {
		doc := types.NewDocument()
		p, added, err := RecordLesson(doc, types.CategoryStrategy, "batch writes", "POST /api/x", OutcomeHelpful)
		require.NoError(t, err)
		assert.True(t, added)
		assert.Equal(t, 1, p.Successes, "immediate helpful outcome applies")
		assert.Equal(t, 1, p.Uses)
		assert.Len(t, doc.Patterns, 1)
	})

	t.Run("no outcome leaves counters zero", func(t *testing.T) {
		doc := types.NewDocument()
		p, added, err := RecordLesson(doc, types.CategoryPitfall, "AVOID: wildcard deletes", "", OutcomeNone)
		require.NoError(t, err)
		assert.True(t, added)
		assert.Zero(t, p.Uses)
		assert.Zero(t, p.Successes)
	})

	t.Run("duplicate content not re-added", func(t *testing.T) {
		doc := types.NewDocument()
		first, added, err := RecordLesson(doc, types.CategoryStrategy, "batch writes in one transaction", "", OutcomeNone)
		require.NoError(t, err)
		require.True(t, added)

		second, added, err := RecordLesson(doc, types.CategoryStrategy, "Batch Writes", "", OutcomeNone)
		require.NoError(t, err)
		assert.False(t, added, "contained lesson text is a duplicate")
		assert.Equal(t, first.ID, second.ID)
		assert.Len(t, doc.Patterns, 1)
	})

	t.Run("invalid category", func(t *testing.T) {
		doc := types.NewDocument()
		_, _, err := RecordLesson(doc, "wisdom", "lesson", "", OutcomeNone)
		assert.ErrorIs(t, err, types.ErrInvalidCategory)
	})
}

func TestPitfallContent(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain lesson gets prefix", input: "retrying non-idempotent calls", want: "AVOID: retrying non-idempotent calls"},
		{name: "already prefixed unchanged", input: "AVOID: double writes", want: "AVOID: double writes"},
		{name: "bare AVOID unchanged", input: "AVOID double writes", want: "AVOID double writes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PitfallContent(tt.input))
		})
	}
}
