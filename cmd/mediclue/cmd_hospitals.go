package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/haniscreator/mediclue/internal/adapter"
	"github.com/haniscreator/mediclue/internal/directory"
	"github.com/haniscreator/mediclue/internal/service"
)

var hospitalsFlags struct {
	term      string
	specialty string
	nearby    bool
	remote    string
	asJSON    bool
}

var hospitalsCmd = &cobra.Command{
	Use:   "hospitals",
	Short: "Search the hospital directory",
	Args:  cobra.NoArgs,
	RunE:  runHospitals,
}

func init() {
	f := hospitalsCmd.Flags()
	f.StringVar(&hospitalsFlags.term, "q", "", "Match name, address or specialty")
	f.StringVar(&hospitalsFlags.specialty, "specialty", "", "Exact specialty filter")
	f.BoolVar(&hospitalsFlags.nearby, "nearby", false, "Order by distance")
	f.StringVar(&hospitalsFlags.remote, "remote", "", "Directory API base URL (defaults to the embedded list)")
	f.BoolVar(&hospitalsFlags.asJSON, "json", false, "Print JSON")
}

func runHospitals(cmd *cobra.Command, _ []string) error {
	var remote adapter.HospitalClient
	if hospitalsFlags.remote != "" {
		a, err := adapter.NewHospitalAdapter(hospitalsFlags.remote, 5*time.Second)
		if err != nil {
			return err
		}
		remote = a
	}
	svc := service.NewHospitalService(remote, directory.Default(), 0)

	results := svc.Find(cmd.Context(), directory.Query{
		Term:      hospitalsFlags.term,
		Specialty: hospitalsFlags.specialty,
		Nearby:    hospitalsFlags.nearby,
	})

	out := cmd.OutOrStdout()
	if hospitalsFlags.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tDISTANCE\tRATING\tPHONE\tSPECIALTIES")
	for _, h := range results {
		fmt.Fprintf(tw, "%s\t%.1f mi\t%.1f\t%s\t%s\n", h.Name, h.Distance, h.Rating, h.Phone, strings.Join(h.Specialties, ", "))
	}
	return tw.Flush()
}
