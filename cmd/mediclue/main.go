// mediclue serves the symptom checker API and offers offline access to
// the symptom engine and hospital directory.
//
// Usage:
//
//	mediclue serve [--port=8080] [--migrate]
//	mediclue symptoms search <query> [--exclude=<name>]... [--json]
//	mediclue symptoms list
//	mediclue score <symptom>... [--exact] [--limit=3] [--json]
//	mediclue hospitals [--q=<term>] [--specialty=<name>] [--nearby] [--json]
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "mediclue",
	Short: "Symptom checker API and engine tools",
	Long:  "MediClue matches reported symptoms against a small condition table,\nruns the assessment wizard over HTTP and lists nearby hospitals.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(symptomsCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(hospitalsCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
