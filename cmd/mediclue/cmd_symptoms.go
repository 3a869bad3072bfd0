package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/haniscreator/mediclue/internal/catalog"
	"github.com/haniscreator/mediclue/internal/engine"
)

var symptomsFlags struct {
	exclude []string
	asJSON  bool
}

var symptomsCmd = &cobra.Command{
	Use:   "symptoms",
	Short: "Browse the symptom catalog",
}

var symptomsSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Free-text search over symptom names, descriptions and synonyms",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSymptomsSearch,
}

var symptomsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every catalog symptom",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return printSymptoms(cmd, catalog.Default().Symptoms)
	},
}

func init() {
	f := symptomsSearchCmd.Flags()
	f.StringSliceVar(&symptomsFlags.exclude, "exclude", nil, "Symptom names to leave out (repeatable)")
	symptomsCmd.PersistentFlags().BoolVar(&symptomsFlags.asJSON, "json", false, "Print JSON")

	symptomsCmd.AddCommand(symptomsSearchCmd)
	symptomsCmd.AddCommand(symptomsListCmd)
}

func runSymptomsSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	results := engine.Search(query, catalog.Default().Symptoms, symptomsFlags.exclude)
	if len(results) == 0 && !symptomsFlags.asJSON {
		fmt.Fprintf(cmd.OutOrStdout(), "No symptoms match %q\n", query)
		return nil
	}
	return printSymptoms(cmd, results)
}

func printSymptoms(cmd *cobra.Command, symptoms []catalog.Symptom) error {
	out := cmd.OutOrStdout()
	if symptomsFlags.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(symptoms)
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tBODY PART\tSEVERITY\tDESCRIPTION")
	for _, s := range symptoms {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.Name, s.BodyPart, s.Severity, s.Description)
	}
	return tw.Flush()
}
