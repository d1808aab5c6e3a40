package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/playbook/pkg/playbook"
)

const modulePath = "github.com/mesh-intelligence/playbook"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the playbook version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "playbook v%s\nmodule: %s\n", playbook.Version, modulePath)
			return nil
		},
	}
}
