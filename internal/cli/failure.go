// Failure command: record a failed task and what went wrong.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/playbook/internal/track"
	"github.com/mesh-intelligence/playbook/pkg/types"
)

func newFailureCmd() *cobra.Command {
	var (
		failureLesson   string
		failureEndpoint string
		failureHarmful  string
	)

	cmd := &cobra.Command{
		Use:   "failure",
		Short: "Record a failed task for learning",
		Long: `Failure records the outcome of a failed task: patterns referenced with
--harmful get their failure counters bumped, and --lesson adds a new
pitfall pattern describing what to avoid.

Example:
  playbook failure --harmful P-xyz789
  playbook failure --lesson "Retrying non-idempotent requests duplicates writes" --endpoint "POST /api/orders"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if failureLesson == "" && failureHarmful == "" {
				return fmt.Errorf("nothing to record: provide --lesson and/or --harmful")
			}

			s, err := openStore()
			if err != nil {
				return err
			}

			doc, err := s.Load()
			if err != nil && !errors.Is(err, types.ErrNotFound) {
				return err
			}

			missing := track.RecordOutcome(doc, splitIDs(failureHarmful), track.OutcomeHarmful)
			for _, id := range missing {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: unknown pattern id %s\n", id)
			}

			if failureLesson != "" {
				content := track.PitfallContent(failureLesson)
				p, added, err := track.RecordLesson(doc, types.CategoryPitfall, content, failureEndpoint, track.OutcomeNone)
				if err != nil {
					return err
				}
				if added {
					fmt.Fprintf(cmd.OutOrStdout(), "Pitfall recorded: [%s] %s\n", p.ID, p.Content)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Already known as [%s]\n", p.ID)
				}
			}

			return s.Save(doc)
		},
	}

	cmd.Flags().StringVar(&failureLesson, "lesson", "", "what went wrong")
	cmd.Flags().StringVarP(&failureEndpoint, "endpoint", "e", "", "endpoint the failure occurred on")
	cmd.Flags().StringVar(&failureHarmful, "harmful", "", "comma-separated pattern IDs that misled")

	return cmd
}
