package credscan

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/redactyl/credscan/internal/audit"
)

func newHistoryCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history [path]",
		Short: "Show scans recorded with scan --audit",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := resolveRoot(args, ".")
			if err != nil {
				return err
			}
			records, err := audit.New(root).History()
			if err != nil {
				return err
			}
			if limit > 0 && len(records) > limit {
				records = records[:limit]
			}
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("When", "Files", "High", "Medium", "Low", "Baselined", "Duration")
			for _, r := range records {
				row := []string{
					r.Timestamp.Local().Format("2006-01-02 15:04:05"),
					fmt.Sprint(r.FilesScanned),
					fmt.Sprint(r.Summary.High),
					fmt.Sprint(r.Summary.Medium),
					fmt.Sprint(r.Summary.Low),
					fmt.Sprint(r.BaselinedCount),
					r.Duration,
				}
				if err := table.Append(row); err != nil {
					return err
				}
			}
			return table.Render()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "show at most this many scans (0 = all)")
	return cmd
}
