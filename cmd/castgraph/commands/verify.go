package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/castgraph/display"
	"github.com/teranos/castgraph/ixgest/cast"
	"github.com/teranos/castgraph/logger"
)

// VerifyCmd represents the verify command
var VerifyCmd = &cobra.Command{
	Use:   "verify <nomi.txt> <grafo.txt>",
	Short: "Check a pair of artifacts for consistency",
	Long: `Reload an entity artifact and a graph artifact and check that they agree.

Checks:
- both files list the same identities in the same strictly ascending order
- every neighborCount equals the number of neighbors on its line
- neighbor lists ascend strictly and never contain the person itself
- every neighbor is a known person, and adjacency is symmetric

Exits with status 4 on the first violation, naming file and line.

Examples:
  castgraph verify nomi.txt grafo.txt
  castgraph verify out/nomi.txt out/grafo.txt --json`,
	Args: cobra.ExactArgs(2),
	RunE: runVerify,
}

func runVerify(cmd *cobra.Command, args []string) error {
	useJSON := display.ShouldOutputJSON(cmd)
	log := logger.ComponentLogger("verify")

	report, err := cast.VerifyArtifacts(args[0], args[1])
	if err != nil {
		log.Debugw("Verification failed", logger.FieldError, err.Error())
		if !useJSON {
			pterm.Error.Printf("Verification failed: %v\n", err)
		}
		return err
	}
	log.Infow("Artifacts verified",
		logger.FieldPersons, report.Persons,
		logger.FieldEdges, report.Edges)

	if useJSON {
		return display.OutputJSON(report)
	}

	pterm.Success.Println("Artifacts are consistent")
	pterm.Printf("  Persons:    %d\n", report.Persons)
	pterm.Printf("  Edges:      %d\n", report.Edges)
	pterm.Printf("  Isolated:   %d\n", report.Isolated)
	pterm.Printf("  Max degree: %d\n", report.MaxDegree)
	return nil
}
