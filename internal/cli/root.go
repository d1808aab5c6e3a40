// Package cli implements the playbook command-line interface: one
// load-mutate-save cycle per invocation over the configured store.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/playbook/pkg/types"
)

// Exit codes.
const (
	exitSuccess  = 0
	exitUserErr  = 1
	exitSysError = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
}

var flags rootFlags

// configValues holds settings loaded from config.yaml by the persistent
// pre-run hook.
type configValues struct {
	backend string
	dataDir string
	limit   int
}

var config configValues

// NewRootCmd creates the top-level "playbook" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	flags = rootFlags{}
	config = configValues{}

	root := &cobra.Command{
		Use:   "playbook",
		Short: "Playbook accumulates lessons learned across coding tasks",
		Long: `Playbook persists short textual lessons learned during coding tasks into
a per-project document and surfaces the most useful ones, ranked by
historical usefulness and recency, at the start of later tasks.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			configDir, err := resolveConfigDir()
			if err != nil {
				return fmt.Errorf("resolve config dir: %w", err)
			}
			v, err := loadConfig(configDir)
			if err != nil {
				return err
			}
			config.backend = v.GetString(cfgKeyBackend)
			config.dataDir = v.GetString(cfgKeyDataDir)
			config.limit = v.GetInt(cfgKeyLimit)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "data directory (default: $(CWD)/.playbook)")
	root.PersistentFlags().BoolVar(&flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newLoadCmd())
	root.AddCommand(newSuccessCmd())
	root.AddCommand(newFailureCmd())
	root.AddCommand(newSeedCmd())
	root.AddCommand(newStatsCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
// Corrupt documents and I/O failures are system errors; everything else is
// a user error.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		if errors.Is(err, types.ErrCorruptDocument) {
			os.Exit(exitSysError)
		}
		os.Exit(exitUserErr)
	}
	os.Exit(exitSuccess)
}
