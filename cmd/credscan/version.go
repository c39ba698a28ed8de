package credscan

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the version information for credscan",
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Application: %s\n", "credscan")
			_, _ = fmt.Fprintf(out, "Version:     %s\n", version)
			_, _ = fmt.Fprintf(out, "Platform:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
			_, _ = fmt.Fprintf(out, "GoVersion:   %s\n", runtime.Version())
		},
	}
}
