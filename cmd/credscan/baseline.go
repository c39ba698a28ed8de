package credscan

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/redactyl/credscan/internal/engine"
	"github.com/redactyl/credscan/internal/log"
	"github.com/redactyl/credscan/internal/report"
)

func newBaselineCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "baseline",
		Short: "Manage baselines",
	}

	var output string
	update := &cobra.Command{
		Use:   "update [path]",
		Short: "Accept every current finding into the baseline",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := log.Setup(o.verbose); err != nil {
				return err
			}
			root, err := resolveRoot(args, ".")
			if err != nil {
				return err
			}
			fc, err := resolveConfig(o, root, persistentLayer(cmd, o))
			if err != nil {
				return err
			}
			res, err := engine.ScanContext(cmd.Context(), engineConfig(root, fc, o))
			if err != nil {
				return err
			}
			dest := output
			if dest == "" {
				dest = filepath.Join(root, report.DefaultBaselineFile)
			}
			if err := report.SaveBaseline(dest, res.Findings); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Baseline updated: %d findings in %s\n", len(res.Findings), dest)
			return nil
		},
	}
	show := &cobra.Command{
		Use:   "show [path]",
		Short: "Print the baseline location and entry count",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := resolveRoot(args, ".")
			if err != nil {
				return err
			}
			src := output
			if src == "" {
				src = filepath.Join(root, report.DefaultBaselineFile)
			}
			base, err := report.LoadBaseline(src)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d entries\n", src, len(base.Items))
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&output, "output", "o", "", "baseline file (default <path>/"+report.DefaultBaselineFile+")")
	cmd.AddCommand(update, show)
	return cmd
}
