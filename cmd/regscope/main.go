package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/regscope/regscope/internal/errx"
	"github.com/regscope/regscope/pkg/config"
	"github.com/regscope/regscope/pkg/history"
	"github.com/regscope/regscope/pkg/keypath"
	"github.com/regscope/regscope/pkg/projection"
	"github.com/regscope/regscope/pkg/registry"
	"github.com/regscope/regscope/pkg/registry/xmlreg"
)

var rootCmd = &cobra.Command{
	Use:   "regscope",
	Short: "View and edit a configured subset of the Windows registry",
	Long: `regscope presents a filtered view of the registry: only the key paths
named in its configuration, their ancestors, and the immediate children of
each configured key are visible. Everything else is pruned.

The allow-list comes from regscope.yaml ("keys:") or repeated --key flags.
With --mock-registry an XML registry document stands in for the live
registry, on any OS.`,
	Example: `  regscope tree --key 'HKLM\SOFTWARE\Python'
  regscope values 'HKLM\SOFTWARE\Python\PythonCore'
  regscope set 'HKCU\SOFTWARE\Vendor' timeout 30 --type REG_DWORD
  regscope browse --mock-registry fixture.xml --key 'HKLM\SOFTWARE\Vendor'`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Config file (default: ./regscope.yaml, ~/.config/regscope/regscope.yaml)")
	rootCmd.PersistentFlags().StringArray("key", nil, "Key path to project (repeatable, adds to the configured list)")
	rootCmd.PersistentFlags().String("mock-registry", "", "XML registry document to use instead of the live registry")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app bundles the pieces every subcommand needs: the loaded config, the
// allow-list index, the store behind it and the projector over both.
type app struct {
	cfg       *config.Config
	index     *keypath.Index
	provider  registry.Provider
	projector *projection.Projector
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	extraKeys, _ := cmd.Flags().GetStringArray("key")
	keys := append(append([]string{}, cfg.Keys...), extraKeys...)
	if len(keys) == 0 {
		return nil, ErrNoKeysConfigured
	}
	index, err := keypath.ParseIndex(keys)
	if err != nil {
		return nil, errx.Wrap(ErrBadKeyList, err)
	}

	if mock, _ := cmd.Flags().GetString("mock-registry"); mock != "" {
		cfg.MockRegistry = mock
	}
	var provider registry.Provider
	if cfg.MockRegistry != "" {
		provider, err = xmlreg.Load(cfg.MockRegistry)
	} else {
		provider, err = liveProvider()
	}
	if err != nil {
		return nil, errx.Wrap(ErrOpenStore, err)
	}

	return &app{
		cfg:       cfg,
		index:     index,
		provider:  provider,
		projector: projection.New(index, provider),
	}, nil
}

// editableKey reports whether the path is on the projection's edit
// surface: a configured key or an immediate child of one.
func (a *app) editableKey(path keypath.KeyPath) bool {
	return a.index.IsTarget(path) || a.index.IsTarget(path.Parent())
}

// openRecorder opens the edit-history database, or returns nil when
// history is disabled.
func (a *app) openRecorder() (*history.Recorder, error) {
	if !a.cfg.History.Enabled {
		return nil, nil
	}
	rec, err := history.Open(historyDBPath(a.cfg.History.Dir))
	if err != nil {
		return nil, errx.Wrap(ErrOpenHistory, err)
	}
	return rec, nil
}

// openRecorderOrWarn is openRecorder for the edit commands: an unusable
// history store is reported on stderr but never blocks the edit itself.
func (a *app) openRecorderOrWarn() *history.Recorder {
	rec, err := a.openRecorder()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	return rec
}

func historyDBPath(dir string) string {
	return filepath.Join(dir, "history.db")
}

// record logs one edit if history is enabled; failures are reported but
// never block the edit itself.
func record(rec *history.Recorder, e history.Entry) {
	if rec == nil {
		return
	}
	if err := rec.Record(e); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
}
