package credscan

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

// ErrThresholdExceeded is returned by scan when findings meet --fail-on.
var ErrThresholdExceeded = errors.New("findings at or above fail-on severity")

// options holds the persistent flags shared by every subcommand.
type options struct {
	configPath string
	threads    int
	noColor    bool
	noCache    bool
	verbose    bool
}

// newRootCmd builds the command tree. Each call returns an independent tree
// so commands can be executed in-process.
func newRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:           "credscan",
		Short:         "Find hardcoded credentials in a source tree",
		Long:          "credscan walks a directory, applies an ordered table of credential patterns to every line of the selected files, drops placeholders and variable references, and reports what is left by severity.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&o.configPath, "config", "", "explicit config file (overrides flags and discovered configs)")
	root.PersistentFlags().IntVar(&o.threads, "threads", 0, "worker count (0 = GOMAXPROCS)")
	root.PersistentFlags().BoolVar(&o.noColor, "no-color", false, "disable colorized output")
	root.PersistentFlags().BoolVar(&o.noCache, "no-cache", false, "disable incremental scan cache")
	root.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "debug logging on stderr")

	root.AddCommand(
		newScanCmd(o),
		newRulesCmd(o),
		newBaselineCmd(o),
		newHistoryCmd(),
		newIgnoreCmd(),
		newConfigCmd(),
		newCompletionCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the credscan CLI. It should be called by the main package.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		if errors.Is(err, ErrThresholdExceeded) {
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}
