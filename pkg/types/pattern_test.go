package types

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "pitfall", input: "pitfall", want: CategoryPitfall},
		{name: "strategy", input: "strategy", want: CategoryStrategy},
		{name: "domain", input: "domain", want: CategoryDomain},
		{name: "endpoint", input: "endpoint", want: CategoryEndpoint},
		{name: "code", input: "code", want: CategoryCode},
		{name: "uppercase normalized", input: "STRATEGY", want: CategoryStrategy},
		{name: "whitespace trimmed", input: "  pitfall ", want: CategoryPitfall},
		{name: "unknown rejected", input: "wisdom", wantErr: ErrInvalidCategory},
		{name: "empty rejected", input: "", wantErr: ErrInvalidCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCategory(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewPattern(t *testing.T) {
	t.Run("valid pattern", func(t *testing.T) {
		p, err := NewPattern(CategoryStrategy, "batch writes", "POST /api/x")
		require.NoError(t, err)
		assert.Equal(t, CategoryStrategy, p.Category)
		assert.Equal(t, "batch writes", p.Content)
		assert.Equal(t, "POST /api/x", p.Endpoint)
		assert.Zero(t, p.Uses)
		assert.Zero(t, p.Successes)
		assert.Zero(t, p.Failures)
		assert.Nil(t, p.LastUsed)
		assert.False(t, p.CreatedAt.IsZero())
	})

	t.Run("id format uses category initial", func(t *testing.T) {
		idPattern := regexp.MustCompile(`^[A-Z]-[0-9a-f]{8}$`)
		for _, cat := range Categories {
			p, err := NewPattern(cat, "content", "")
			require.NoError(t, err)
			assert.Regexp(t, idPattern, p.ID)
			assert.Equal(t, string(cat[0]-'a'+'A'), p.ID[:1])
		}
	})

	t.Run("invalid category", func(t *testing.T) {
		_, err := NewPattern("wisdom", "content", "")
		assert.ErrorIs(t, err, ErrInvalidCategory)
	})

	t.Run("empty content", func(t *testing.T) {
		_, err := NewPattern(CategoryCode, "   ", "")
		assert.ErrorIs(t, err, ErrInvalidContent)
	})
}

func TestMarkUsed(t *testing.T) {
	now := time.Now().UTC()

	t.Run("helpful increments uses and successes only", func(t *testing.T) {
		p := &Pattern{ID: "S-00000001", Category: CategoryStrategy, Content: "x"}
		p.MarkUsed(true, now)
		assert.Equal(t, 1, p.Uses)
		assert.Equal(t, 1, p.Successes)
		assert.Equal(t, 0, p.Failures)
		require.NotNil(t, p.LastUsed)
		assert.Equal(t, now, *p.LastUsed)
	})

	t.Run("harmful increments uses and failures only", func(t *testing.T) {
		p := &Pattern{ID: "P-00000001", Category: CategoryPitfall, Content: "x"}
		p.MarkUsed(false, now)
		assert.Equal(t, 1, p.Uses)
		assert.Equal(t, 0, p.Successes)
		assert.Equal(t, 1, p.Failures)
	})

	t.Run("counters never decrease", func(t *testing.T) {
		p := &Pattern{ID: "S-00000001", Category: CategoryStrategy, Content: "x"}
		for i := 0; i < 10; i++ {
			prevUses, prevSucc := p.Uses, p.Successes
			p.MarkUsed(i%2 == 0, now)
			assert.Greater(t, p.Uses, prevUses)
			assert.GreaterOrEqual(t, p.Successes, prevSucc)
		}
		assert.Equal(t, 10, p.Uses)
	})
}

func TestPatternScore(t *testing.T) {
	p := &Pattern{Successes: 5, Failures: 2}
	assert.Equal(t, 3, p.Score())
}
