// Seed command: initialize the playbook with starter patterns.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/playbook/internal/store"
	"github.com/mesh-intelligence/playbook/pkg/types"
)

func newSeedCmd() *cobra.Command {
	var (
		seedForce bool
		seedFile  string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Initialize the playbook with starter patterns",
		Long: `Seed creates a new playbook document populated with the built-in starter
patterns, or with the patterns from a JSON seed file. Refuses to overwrite
an existing playbook unless --force is given.

Example:
  playbook seed
  playbook seed --force
  playbook seed --file team-seed.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				patterns []types.Pattern
				err      error
			)
			if seedFile != "" {
				patterns, err = store.LoadSeedFile(seedFile)
			} else {
				patterns, err = store.BuiltInSeed()
			}
			if err != nil {
				return err
			}

			s, err := openStore()
			if err != nil {
				return err
			}

			doc, err := s.Initialize(patterns, seedForce)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d patterns\n", len(doc.Patterns))
			return nil
		},
	}

	cmd.Flags().BoolVar(&seedForce, "force", false, "overwrite an existing playbook")
	cmd.Flags().StringVar(&seedFile, "file", "", "JSON seed file instead of the built-in list")

	return cmd
}
