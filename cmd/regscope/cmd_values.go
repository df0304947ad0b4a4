package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/regscope/regscope/internal/errx"
	"github.com/regscope/regscope/pkg/keypath"
	"github.com/regscope/regscope/pkg/registry"
)

var valuesCmd = &cobra.Command{
	Use:   "values <key>",
	Short: "List the values of a projected key",
	Args:  cobra.ExactArgs(1),
	RunE:  runValues,
}

var getCmd = &cobra.Command{
	Use:   "get <key> <name>",
	Short: "Print one value of a projected key",
	Args:  cobra.ExactArgs(2),
	RunE:  runGet,
}

func init() {
	rootCmd.AddCommand(valuesCmd)
	rootCmd.AddCommand(getCmd)
}

// resolveEditableKey parses a key argument and checks it is on the
// projection's edit surface.
func resolveEditableKey(a *app, raw string) (keypath.KeyPath, error) {
	path, err := keypath.Parse(raw)
	if err != nil {
		return keypath.KeyPath{}, err
	}
	if !a.editableKey(path) {
		return keypath.KeyPath{}, errx.With(ErrKeyNotProjected, ": %s", path)
	}
	return path, nil
}

func runValues(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	path, err := resolveEditableKey(a, args[0])
	if err != nil {
		return err
	}
	values, err := a.provider.Values(path)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTYPE\tDATA")
	for _, v := range values {
		fmt.Fprintf(w, "%s\t%s\t%s\n", displayName(v.Name), v.Type, registry.FormatData(v))
	}
	return w.Flush()
}

func runGet(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	path, err := resolveEditableKey(a, args[0])
	if err != nil {
		return err
	}
	v, err := a.provider.GetValue(path, args[1])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), registry.FormatData(v))
	return nil
}

// displayName renders the empty value name the way regedit does.
func displayName(name string) string {
	if name == "" {
		return "(Default)"
	}
	return name
}
