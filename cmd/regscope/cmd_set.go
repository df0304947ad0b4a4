package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/regscope/regscope/pkg/history"
	"github.com/regscope/regscope/pkg/registry"
)

var setCmd = &cobra.Command{
	Use:   "set <key> <name> <data>",
	Short: "Create or replace a value of a projected key",
	Long: `Create or replace a value of a projected key. The data argument is
interpreted according to --type: text for the string types, a decimal or
0x-prefixed number for REG_DWORD/REG_QWORD, newline-separated entries for
REG_MULTI_SZ and hex digits for REG_BINARY.`,
	Example: `  regscope set 'HKCU\SOFTWARE\Vendor\App' greeting hello
  regscope set 'HKCU\SOFTWARE\Vendor\App' timeout 30 --type REG_DWORD`,
	Args: cobra.ExactArgs(3),
	RunE: runSet,
}

func init() {
	setCmd.Flags().String("type", "REG_SZ", "Registry value type (REG_SZ, REG_DWORD, ...)")
	rootCmd.AddCommand(setCmd)
}

func runSet(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	path, err := resolveEditableKey(a, args[0])
	if err != nil {
		return err
	}

	typeName, _ := cmd.Flags().GetString("type")
	vt, err := registry.ParseValueType(typeName)
	if err != nil {
		return err
	}
	data, err := registry.ParseData(vt, args[2])
	if err != nil {
		return err
	}

	value := registry.Value{Name: args[1], Type: vt, Data: data}
	if err := a.provider.SetValue(path, value); err != nil {
		return err
	}

	rec := a.openRecorderOrWarn()
	if rec != nil {
		defer rec.Close()
	}
	record(rec, history.Entry{
		Op:        history.OpSetValue,
		KeyPath:   path.String(),
		ValueName: value.Name,
		ValueType: vt.String(),
		Data:      registry.FormatData(value),
	})

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s %s = %s (%s)\n",
		path, displayName(value.Name), registry.FormatData(value), vt)
	return nil
}
