package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/0xalexb/hjarta-ns/listener"
	"github.com/0xalexb/hjarta-ns/namespace"
)

// Command flags.
const (
	FlagOutput = "output"
	FlagMatch  = "match"
)

// Output formats of lookup and list.
const (
	OutputText = "text"
	OutputJSON = "json"
)

func newLookupCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup KEY",
		Short: "Resolve a key and print its value",
		Args:  cobra.ExactArgs(1),
		Example: `  # Print a value from conf/java/default.properties
  nsctl lookup java.magic --root file://conf

  # Print a data source as JSON
  nsctl lookup datasources.MainDS -o json`,
		RunE:              runLookup,
		DisableAutoGenTag: true,
	}

	cmd.Flags().StringP(FlagOutput, "o", OutputText, "output format: text or json")

	return cmd
}

func runLookup(cmd *cobra.Command, args []string) error {
	output, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	ctx, resolver, _, err := setup(cmd)
	if err != nil {
		return err
	}

	key := args[0]

	val, err := resolver.Lookup(ctx, key)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if output == OutputJSON {
		resp, err := listener.Render(ctx, key, val)
		if err != nil {
			return err
		}

		return encodeJSON(out, resp)
	}

	switch v := val.(type) {
	case []string:
		_, err = fmt.Fprintln(out, strings.Join(v, "\n"))
	case *namespace.Composite:
		err = renderComposite(out, v)
	case *namespace.Resolver:
		entries, listErr := v.List(ctx, "")
		if listErr != nil {
			return listErr
		}

		err = renderEntries(out, entries)
	default:
		_, err = fmt.Fprintln(out, v)
	}

	return err
}

func outputFormat(cmd *cobra.Command) (string, error) {
	output, err := cmd.Flags().GetString(FlagOutput)
	if err != nil {
		return "", err
	}

	switch output {
	case OutputText, OutputJSON:
		return output, nil
	default:
		return "", fmt.Errorf("unknown output format %q, expected %s or %s", output, OutputText, OutputJSON)
	}
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)

	style := table.StyleLight
	style.Options.DrawBorder = false
	t.SetStyle(style)

	return t
}

func renderComposite(w io.Writer, comp *namespace.Composite) error {
	if _, err := fmt.Fprintf(w, "%s (%s)\n", comp.Name(), comp.ID()); err != nil {
		return err
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"ATTRIBUTE", "VALUE"})

	for _, attr := range comp.Attributes() {
		t.AppendRow(table.Row{attr, strings.Join(comp.Values(attr), ", ")})
	}

	t.Render()

	return nil
}

func renderEntries(w io.Writer, entries []namespace.Entry) error {
	t := newTable(w)
	t.AppendHeader(table.Row{"NAME", "KIND"})

	for _, entry := range entries {
		t.AppendRow(table.Row{entry.Name, entry.Kind})
	}

	t.Render()

	return nil
}
