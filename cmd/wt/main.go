// Command wt shows the main page with its icon column and walks the user
// through the app one icon at a time.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vanderheijden86/walkthrough/pkg/config"
	"github.com/vanderheijden86/walkthrough/pkg/debug"
	"github.com/vanderheijden86/walkthrough/pkg/metrics"
	"github.com/vanderheijden86/walkthrough/pkg/version"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	lang       string
	debug      bool
}

// loadConfig reads the config file named by --config, or the XDG default,
// and applies --lang on top.
func (g *globalFlags) loadConfig() (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if g.configPath != "" {
		cfg, err = config.LoadFrom(g.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return cfg, err
	}
	if g.lang != "" {
		cfg.Language = g.lang
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	debug.Dump("config", cfg)
	return cfg, nil
}

func newRootCmd() *cobra.Command {
	var (
		g         globalFlags
		noHistory bool
	)

	root := &cobra.Command{
		Use:           "wt",
		Short:         "Guided walkthrough of the app's icons",
		Version:       version.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if g.debug {
				debug.SetEnabled(true)
			}
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logTimings()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			return runTUI(cmd.Context(), cfg, !noHistory)
		},
	}
	root.PersistentFlags().StringVar(&g.configPath, "config", "", "Config file (default "+config.ConfigPath()+")")
	root.PersistentFlags().StringVar(&g.lang, "lang", "", "Display language: en, es or fr")
	root.PersistentFlags().BoolVar(&g.debug, "debug", false, "Enable debug logging to stderr")
	root.Flags().BoolVar(&noHistory, "no-history", false, "Do not record tour runs")

	root.AddCommand(exportCmd(&g))
	root.AddCommand(setupCmd(&g))
	root.AddCommand(historyCmd(&g))
	root.AddCommand(versionCmd())

	return root
}

// logTimings writes collected timing metrics to the debug log.
func logTimings() {
	for _, st := range metrics.AllTimingStats() {
		debug.Log("%s: n=%d avg=%.2fms max=%.2fms total=%.2fms", st.Name, st.Count, st.AvgMs, st.MaxMs, st.TotalMs)
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
