package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/haniscreator/mediclue/internal/catalog"
	"github.com/haniscreator/mediclue/internal/engine"
)

var scoreFlags struct {
	exact  bool
	limit  int
	asJSON bool
}

var scoreCmd = &cobra.Command{
	Use:   "score <symptom>...",
	Short: "Rank likely conditions for a set of catalog symptoms",
	Long: `Scores the given symptoms against the condition table and prints the top
predictions. Each argument must be a catalog symptom name; quote names that
contain spaces, e.g. mediclue score fever "muscle pain".`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScore,
}

func init() {
	f := scoreCmd.Flags()
	f.BoolVar(&scoreFlags.exact, "exact", false, "Match trigger symptoms by exact name instead of substring")
	f.IntVar(&scoreFlags.limit, "limit", engine.MaxPredictions, "Maximum predictions to print")
	f.BoolVar(&scoreFlags.asJSON, "json", false, "Print JSON")
}

func runScore(cmd *cobra.Command, args []string) error {
	cat := catalog.Default()
	selected := make([]string, 0, len(args))
	for _, a := range args {
		s, ok := cat.Lookup(a)
		if !ok {
			return fmt.Errorf("unknown symptom %q (see 'mediclue symptoms list')", a)
		}
		selected = append(selected, s.Name)
	}

	scorer := engine.Scorer{Limit: scoreFlags.limit}
	if scoreFlags.exact {
		scorer.Mode = engine.MatchExact
	}
	predictions := scorer.Score(selected, cat.Diseases)

	out := cmd.OutOrStdout()
	if scoreFlags.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(predictions)
	}
	if len(predictions) == 0 {
		fmt.Fprintln(out, "No matching conditions.")
		return nil
	}
	for i, p := range predictions {
		fmt.Fprintf(out, "%d. %s  %.0f%% (%d matching)\n", i+1, p.Disease, p.Confidence, p.MatchCount)
		fmt.Fprintf(out, "   %s\n", p.Data.Description)
		fmt.Fprintf(out, "   severity: %s, urgency: %s, see: %s\n", p.Data.Severity, p.Data.Urgency, p.Data.Specialist)
	}
	return nil
}
