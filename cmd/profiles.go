// File: cmd/profiles.go
package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/xkilldash9x/relic-cli/internal/rules"
)

// newProfilesCmd creates the `profiles` command listing registered platform
// profiles.
func newProfilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "Lists the available platform profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tVERSION\tRULES")
			for _, p := range rules.Profiles() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", p.ID, p.Name, p.VersionLabel, len(p.Rules))
			}
			return w.Flush()
		},
	}
}
