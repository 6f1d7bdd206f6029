package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	ns "github.com/0xalexb/hjarta-ns"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the nsctl version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "nsctl %s (commit %s, built %s)\n",
				ns.Version, ns.Commit, ns.CompiledAt)

			return err
		},
		DisableAutoGenTag: true,
	}
}
