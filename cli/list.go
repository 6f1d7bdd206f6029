package cli

import (
	"github.com/spf13/cobra"

	"github.com/0xalexb/hjarta-ns/listener"
	"github.com/0xalexb/hjarta-ns/namespace"
)

func newListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [PREFIX]",
		Short: "List the names below a prefix",
		Args:  cobra.MaximumNArgs(1),
		Example: `  # List the top level of the namespace
  nsctl list

  # List the data sources whose name ends in DS
  nsctl list datasources --match '*DS'`,
		RunE:              runList,
		DisableAutoGenTag: true,
	}

	cmd.Flags().StringP(FlagOutput, "o", OutputText, "output format: text or json")
	cmd.Flags().String(FlagMatch, "", "only list names matching this glob")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	output, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	pattern, err := cmd.Flags().GetString(FlagMatch)
	if err != nil {
		return err
	}

	ctx, resolver, _, err := setup(cmd)
	if err != nil {
		return err
	}

	var prefix string
	if len(args) > 0 {
		prefix = args[0]
	}

	var entries []namespace.Entry

	if pattern != "" {
		entries, err = resolver.ListMatching(ctx, prefix, pattern)
	} else {
		entries, err = resolver.List(ctx, prefix)
	}

	if err != nil {
		return err
	}

	if output == OutputJSON {
		if entries == nil {
			entries = []namespace.Entry{}
		}

		return encodeJSON(cmd.OutOrStdout(), listener.ListResponse{Prefix: prefix, Entries: entries})
	}

	return renderEntries(cmd.OutOrStdout(), entries)
}
