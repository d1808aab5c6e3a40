// Built-in seed patterns for new playbooks.
package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mesh-intelligence/playbook/pkg/types"
)

// builtInPattern describes a pattern to seed on playbook initialization.
type builtInPattern struct {
	category string
	content  string
}

// builtInPatterns is the generic starter set. Projects accumulate their own
// lessons on top of these.
var builtInPatterns = []builtInPattern{
	{types.CategoryPitfall, "Don't use mutable default arguments in Python (e.g., def foo(items=[]))"},
	{types.CategoryPitfall, "Always validate input at API boundaries before processing"},
	{types.CategoryPitfall, "Check for null/undefined before accessing nested object properties"},
	{types.CategoryStrategy, "Write tests before fixing bugs to prevent regression"},
	{types.CategoryStrategy, "Use environment variables for configuration, not hardcoded values"},
	{types.CategoryStrategy, "Log errors with context (request ID, user ID, operation) for debugging"},
	{types.CategoryCode, "Use try/finally or context managers to ensure resource cleanup"},
	{types.CategoryCode, "Prefer explicit imports over wildcard imports for clarity"},
}

// BuiltInSeed returns freshly constructed patterns for the built-in seed
// list. Each call generates new IDs.
func BuiltInSeed() ([]types.Pattern, error) {
	patterns := make([]types.Pattern, 0, len(builtInPatterns))
	for _, bp := range builtInPatterns {
		p, err := types.NewPattern(bp.category, bp.content, "")
		if err != nil {
			return nil, fmt.Errorf("building seed pattern: %w", err)
		}
		patterns = append(patterns, *p)
	}
	return patterns, nil
}

// seedEntry is the JSON element format for user-supplied seed files.
type seedEntry struct {
	Category string `json:"category"`
	Content  string `json:"content"`
	Endpoint string `json:"endpoint,omitempty"`
}

// LoadSeedFile reads a JSON array of {category, content, endpoint} entries
// and constructs seed patterns from it. Entries with unknown categories or
// empty content fail the whole load.
func LoadSeedFile(path string) ([]types.Pattern, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}

	var entries []seedEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing seed file %s: %w", path, err)
	}

	patterns := make([]types.Pattern, 0, len(entries))
	for i, e := range entries {
		p, err := types.NewPattern(e.Category, e.Content, e.Endpoint)
		if err != nil {
			return nil, fmt.Errorf("seed entry %d: %w", i, err)
		}
		patterns = append(patterns, *p)
	}
	return patterns, nil
}
