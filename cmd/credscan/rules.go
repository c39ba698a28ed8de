package credscan

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/redactyl/credscan/internal/detectors"
)

func newRulesCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "rules [path]",
		Short: "List the active rule table with severities",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := resolveRoot(args, ".")
			if err != nil {
				return err
			}
			fc, err := resolveConfig(o, root, persistentLayer(cmd, o))
			if err != nil {
				return err
			}
			rules := fc.Rules
			if rules == nil {
				rules = detectors.DefaultRules()
			}
			var fp *detectors.FalsePositives
			if fc.FalsePositives != nil {
				fp = detectors.NewFalsePositives(fc.FalsePositives)
			}
			rs, err := detectors.Compile(rules, fp)
			if err != nil {
				return fmt.Errorf("compile rules: %w", err)
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("#", "Severity", "Category", "Pattern")
			for i, r := range rs.Describe() {
				if err := table.Append([]string{fmt.Sprint(i + 1), string(r.Severity), r.Category, r.Pattern}); err != nil {
					return err
				}
			}
			if err := table.Render(); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d rules, %d false-positive literals, fingerprint %s\n",
				rs.Len(), len(rs.FalsePositives().Literals()), rs.Fingerprint())
			return nil
		},
	}
}
