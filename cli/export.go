package cli

import (
	"strings"

	"github.com/magiconair/properties"
	"github.com/spf13/cobra"
)

func newExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export KEY",
		Short: "Print the document backing a key as Java properties",
		Long: `Print the keys of the document KEY resolves to, in properties format and
  document order. When KEY points inside a document only the keys below it are
  printed, relative to KEY. Repeated keys are joined with commas.`,
		Args:              cobra.ExactArgs(1),
		RunE:              runExport,
		DisableAutoGenTag: true,
	}
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx, resolver, settings, err := setup(cmd)
	if err != nil {
		return err
	}

	doc, remainder, err := resolver.Document(ctx, args[0])
	if err != nil {
		return err
	}

	doc = doc.Subset(remainder, settings.Delimiter)

	props := properties.NewProperties()
	props.DisableExpansion = true

	for _, key := range doc.Keys() {
		if _, _, err := props.Set(key, strings.Join(doc.Values(key), ",")); err != nil {
			return err
		}
	}

	_, err = props.Write(cmd.OutOrStdout(), properties.UTF8)

	return err
}
