package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/castgraph/am"
	"github.com/teranos/castgraph/cmd/castgraph/commands"
	"github.com/teranos/castgraph/errors"
	"github.com/teranos/castgraph/logger"
)

var rootCmd = &cobra.Command{
	Use:   "castgraph",
	Short: "castgraph - co-appearance graph builder for IMDb snapshots",
	Long: `castgraph - co-appearance graph builder for IMDb snapshots.

castgraph reads name.basics.tsv and title.principals.tsv and writes two
artifacts: the qualifying persons (nomi.txt) and, for each of them, the
sorted list of persons they shared at least one title with (grafo.txt).

Available commands:
  build   - Build the entity and graph artifacts
  verify  - Check a pair of artifacts for consistency
  am      - Manage castgraph configuration ("I am")
  version - Show version information

Examples:
  castgraph build name.basics.tsv title.principals.tsv
  castgraph build name.basics.tsv title.principals.tsv --out-dir out --workers 8
  castgraph verify out/nomi.txt out/grafo.txt
  castgraph am show --format yaml`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonFlag, _ := cmd.Flags().GetBool("json")

		opts := logger.Options{JSON: jsonFlag, Verbosity: verbosity}
		// A broken config is reported by the command that loads it;
		// logging falls back to flags only.
		if cfg, err := am.Load(); err == nil {
			opts.JSON = opts.JSON || cfg.Log.JSON
			opts.File = cfg.Log.File
		}

		if err := logger.Initialize(opts); err != nil {
			return errors.WrapStreamIO(err, opts.File)
		}
		if opts.JSON {
			pterm.DisableStyling()
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	// Add global flags
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("json", false, "Output results and logs as JSON")

	// Add commands
	rootCmd.AddCommand(commands.BuildCmd)
	rootCmd.AddCommand(commands.VerifyCmd)
	rootCmd.AddCommand(commands.AmCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		logger.Cleanup()
		fmt.Fprintln(os.Stderr, "Error:", err)
		if hint := errors.FlattenHints(err); hint != "" {
			fmt.Fprintln(os.Stderr, "Hint:", hint)
		}
		os.Exit(errors.ExitCode(err))
	}
}
