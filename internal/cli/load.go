// Load command: surface ranked patterns at task start.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/playbook/internal/rank"
	"github.com/mesh-intelligence/playbook/pkg/types"
)

func newLoadCmd() *cobra.Command {
	var (
		loadEndpoint string
		loadLimit    int
	)

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load relevant patterns for the current task",
		Long: `Load prints the stored patterns relevant to the current task, ranked by
historical usefulness and recency.

Use --endpoint to narrow results to patterns scoped to a specific endpoint;
domain patterns and general-purpose pitfalls and strategies always apply.

Example:
  playbook load
  playbook load --endpoint "POST /api/users"
  playbook load --limit 10 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}

			doc, err := s.Load()
			if err != nil {
				if errors.Is(err, types.ErrNotFound) {
					// No playbook yet is empty state, not a failure.
					return printPatterns(cmd, nil)
				}
				return err
			}

			limit := loadLimit
			if !cmd.Flags().Changed("limit") {
				limit = config.limit
			}

			ranked := rank.Rank(doc, rank.Filter{
				Endpoint: loadEndpoint,
				Limit:    limit,
			})
			return printPatterns(cmd, ranked)
		},
	}

	cmd.Flags().StringVarP(&loadEndpoint, "endpoint", "e", "", "filter for a specific endpoint")
	cmd.Flags().IntVar(&loadLimit, "limit", 0, "maximum number of results (0 = all)")

	return cmd
}

// printPatterns writes the ranked patterns grouped by category, or a JSON
// array in JSON mode.
func printPatterns(cmd *cobra.Command, patterns []types.Pattern) error {
	out := cmd.OutOrStdout()

	if flags.jsonMode {
		if patterns == nil {
			patterns = []types.Pattern{}
		}
		data, err := json.MarshalIndent(patterns, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal patterns: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	if len(patterns) == 0 {
		fmt.Fprintln(out, "No patterns learned yet.")
		return nil
	}

	byCategory := make(map[string][]types.Pattern)
	for _, p := range patterns {
		byCategory[p.Category] = append(byCategory[p.Category], p)
	}

	fmt.Fprintln(out, "## Learned Patterns")
	for _, cat := range types.Categories {
		group, ok := byCategory[cat]
		if !ok {
			continue
		}
		fmt.Fprintf(out, "\n### %s\n", titleCase(cat))
		for _, p := range group {
			fmt.Fprintf(out, "- **[%s]** (+%d/-%d) %s\n", p.ID, p.Successes, p.Failures, p.Content)
		}
	}
	return nil
}
