package credscan

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/redactyl/credscan/internal/ignore"
)

func newIgnoreCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "ignore <pattern>...",
		Short: "Add patterns to " + ignore.FileName,
		Long:  "Append glob patterns to the ignore file at the scan root. A trailing '/' ignores a whole directory. Existing patterns are left alone.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := resolveRoot(nil, path)
			if err != nil {
				return err
			}
			added, err := ignore.Append(root, args...)
			if err != nil {
				return err
			}
			for _, p := range added {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "ignored %s\n", p)
			}
			if len(added) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "nothing to add")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "path", "p", ".", "scan root holding the ignore file")
	return cmd
}
