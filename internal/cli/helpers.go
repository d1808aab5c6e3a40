// Shared helpers for playbook CLI commands.
package cli

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/playbook/internal/sqlite"
	"github.com/mesh-intelligence/playbook/internal/store"
	"github.com/mesh-intelligence/playbook/pkg/types"
)

// openStore resolves the data directory and returns the configured store
// backend.
func openStore() (types.Store, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := types.Config{
		Backend: config.backend,
		DataDir: dataDir,
	}
	if cfg.Backend == "" {
		cfg.Backend = types.BackendJSON
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Backend {
	case types.BackendSQLite:
		return sqlite.New(cfg.DataDir), nil
	default:
		return store.New(cfg.DataDir), nil
	}
}

// splitIDs parses a comma-separated ID list, dropping empty elements.
func splitIDs(s string) []string {
	if s == "" {
		return nil
	}
	var ids []string
	for _, id := range strings.Split(s, ",") {
		id = strings.TrimSpace(id)
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// titleCase uppercases the first letter of a category for display.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
