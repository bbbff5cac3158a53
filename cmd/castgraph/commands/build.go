package commands

import (
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/castgraph/am"
	"github.com/teranos/castgraph/display"
	"github.com/teranos/castgraph/ixgest/cast"
	"github.com/teranos/castgraph/logger"
)

// BuildCmd represents the build command
var BuildCmd = &cobra.Command{
	Use:   "build <name.basics.tsv> <title.principals.tsv>",
	Short: "Build the entity and graph artifacts",
	Long: `Build the co-appearance graph from two IMDb snapshots.

A person qualifies when the birth year is known and the professions list
contains one of the configured roles (actor, actress by default). Two
qualifying persons are neighbors when they are credited in the same title.

Artifacts (overwritten, byte-identical for identical inputs):
- nomi.txt:  identity <TAB> name <TAB> birthYear
- grafo.txt: identity <TAB> neighborCount <TAB> neighbor ...

Both are written under temporary names and moved into place once complete,
so a failed run never leaves a truncated artifact behind.

Examples:
  castgraph build name.basics.tsv title.principals.tsv
  castgraph build name.basics.tsv title.principals.tsv --out-dir out
  castgraph build name.basics.tsv title.principals.tsv --workers 8
  castgraph build name.basics.tsv title.principals.tsv --dry-run --json
  castgraph build name.basics.tsv title.principals.tsv --strict`,
	Args: cobra.ExactArgs(2),
	RunE: runBuild,
}

func init() {
	BuildCmd.Flags().String("out-dir", "", "Directory for the artifacts (overrides output.dir)")
	BuildCmd.Flags().Int("workers", 0, "Aggregation workers (overrides build.workers)")
	BuildCmd.Flags().Bool("dry-run", false, "Build the graph without writing artifacts")
	BuildCmd.Flags().Bool("strict", false, "Abort on an invalid person code or birth year (overrides ingest.strict_person_identity)")
}

func runBuild(cmd *cobra.Command, args []string) error {
	entitiesPath, relationsPath := args[0], args[1]
	useJSON := display.ShouldOutputJSON(cmd)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyBuildFlags(cmd, cfg); err != nil {
		return err
	}
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	if !useJSON {
		pterm.DefaultHeader.WithFullWidth().Printf("castgraph - Co-appearance Graph Build")
		pterm.Println()
		if dryRun {
			pterm.Warning.Println("DRY RUN MODE: No artifacts will be written")
		}
		pterm.Info.Printf("Entities:  %s\n", entitiesPath)
		pterm.Info.Printf("Relations: %s\n", relationsPath)
		pterm.Info.Printf("Workers:   %d\n", cfg.GetWorkers())
		pterm.Println()
	}

	processor := cast.NewCastIxProcessor(cfg, logger.ComponentLogger("castgraph"), nil)
	processor.SetDryRun(dryRun)
	verbosity, _ := cmd.Flags().GetCount("verbose")
	processor.SetTraceRecords(logger.ShouldLogTrace(verbosity))

	var spinner *pterm.SpinnerPrinter
	if !useJSON {
		spinner, _ = pterm.DefaultSpinner.Start("Building co-appearance graph...")
	}

	result, err := processor.Process(cmd.Context(), entitiesPath, relationsPath)
	if spinner != nil {
		_ = spinner.Stop()
	}

	if useJSON {
		if outErr := display.OutputJSON(result); outErr != nil {
			return outErr
		}
		return err
	}
	if err != nil {
		pterm.Error.Printf("Build failed: %v\n", err)
		return err
	}

	printBuildResult(result)
	return nil
}

// applyBuildFlags overrides configuration values with explicitly set flags
func applyBuildFlags(cmd *cobra.Command, cfg *am.Config) error {
	if cmd.Flags().Changed("out-dir") {
		cfg.Output.Dir, _ = cmd.Flags().GetString("out-dir")
	}
	if cmd.Flags().Changed("workers") {
		cfg.Build.Workers, _ = cmd.Flags().GetInt("workers")
	}
	if cmd.Flags().Changed("strict") {
		cfg.Ingest.StrictPersonIdentity, _ = cmd.Flags().GetBool("strict")
	}
	return cfg.Validate()
}

func printBuildResult(result *cast.CastProcessingResult) {
	pterm.Success.Println(result.Message)
	pterm.Println()

	pterm.Info.Println("Statistics:")
	pterm.Printf("  Persons: %d (%d entity lines, %d skipped)\n",
		result.Persons, result.Registry.Lines, result.Registry.Skipped())
	pterm.Printf("  Titles:  %d (%d credits kept, %d skipped)\n",
		result.Groups, result.GroupIndex.Memberships, result.GroupIndex.Skipped())
	pterm.Printf("  Edges:   %d\n", result.Edges)
	for _, phase := range result.Phases {
		pterm.Printf("  %-9s %s\n", phase.Phase+":", (time.Duration(phase.DurationMS) * time.Millisecond).String())
	}
	pterm.Println()

	if result.DryRun {
		pterm.Info.Println("Run without --dry-run to write the artifacts")
		return
	}
	pterm.Info.Println("Artifacts:")
	pterm.Printf("  %s\n", result.EntitiesArtifact)
	pterm.Printf("  %s\n", result.GraphArtifact)
	pterm.Println()
	pterm.Info.Println(fmt.Sprintf("Check them with: castgraph verify %s %s", result.EntitiesArtifact, result.GraphArtifact))
}
