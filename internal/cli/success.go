// Success command: record a completed task and what helped.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/playbook/internal/track"
	"github.com/mesh-intelligence/playbook/pkg/types"
)

func newSuccessCmd() *cobra.Command {
	var (
		successLesson   string
		successCategory string
		successEndpoint string
		successHelpful  string
	)

	cmd := &cobra.Command{
		Use:   "success",
		Short: "Record a successful task completion",
		Long: `Success records the outcome of a completed task: patterns referenced with
--helpful get their success counters bumped, and --lesson adds a new
pattern that starts with one success since it just worked.

Example:
  playbook success --helpful P-abc123,S-def456
  playbook success --lesson "Batch DB writes in one transaction" --category strategy`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if successLesson == "" && successHelpful == "" {
				return fmt.Errorf("nothing to record: provide --lesson and/or --helpful")
			}

			s, err := openStore()
			if err != nil {
				return err
			}

			doc, err := s.Load()
			if err != nil && !errors.Is(err, types.ErrNotFound) {
				return err
			}

			missing := track.RecordOutcome(doc, splitIDs(successHelpful), track.OutcomeHelpful)
			for _, id := range missing {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: unknown pattern id %s\n", id)
			}

			if successLesson != "" {
				p, added, err := track.RecordLesson(doc, successCategory, successLesson, successEndpoint, track.OutcomeHelpful)
				if err != nil {
					return err
				}
				if added {
					fmt.Fprintf(cmd.OutOrStdout(), "Learned: [%s] %s\n", p.ID, p.Content)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Already known as [%s]\n", p.ID)
				}
			}

			return s.Save(doc)
		},
	}

	cmd.Flags().StringVar(&successLesson, "lesson", "", "new pattern learned")
	cmd.Flags().StringVar(&successCategory, "category", types.CategoryStrategy, "category for the new lesson")
	cmd.Flags().StringVarP(&successEndpoint, "endpoint", "e", "", "endpoint the lesson applies to")
	cmd.Flags().StringVar(&successHelpful, "helpful", "", "comma-separated pattern IDs that helped")

	return cmd
}
