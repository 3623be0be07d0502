package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

// Execute runs the CLI and returns the process exit status. SIGINT,
// SIGTERM, and SIGQUIT cancel the run's context so in-flight child
// processes die and the export directory cleanup still runs; the
// process then exits 1.
func Execute() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, abortSignals...)
	defer signal.Stop(sigCh)

	received := make(chan os.Signal, 1)
	go func() {
		sig := <-sigCh
		received <- sig
		cancel()
	}()

	err := newRootCommand().ExecuteContext(ctx)
	if err == nil {
		return exitSuccess
	}
	select {
	case sig := <-received:
		fmt.Fprintf(os.Stderr, "shipit: aborted by %s\n", signalName(sig))
		return exitFailure
	default:
	}
	fmt.Fprintf(os.Stderr, "shipit: %v\n", err)
	return exitStatus(err)
}

func newRootCommand() *cobra.Command {
	opts := &publishOptions{}
	cmd := &cobra.Command{
		Use:   "shipit [package]",
		Short: "Publish a package from a clean export of HEAD",
		Long: `shipit archives the committed tree at HEAD, extracts it into a private
temporary directory, asserts the testdata directory is empty, and runs
the package manager's publish command inside the requested package
directory. Uncommitted changes are never published, and the temporary
directory is removed on every exit path.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPublish(cmd, opts, args)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verboseLogging, "verbose", "v", false, "log each workflow step to stderr")
	cmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "n", false, "stop before publishing and print the plan")
	cmd.Flags().BoolVar(&opts.keepTemp, "keep-temp", false, "keep the export directory and print its path")
	cmd.Flags().StringVar(&opts.command, "command", "", "publish command (overrides config)")
	cmd.Flags().BoolVar(&opts.allowDirty, "allow-dirty", false, "skip the dirty working copy warning")

	cmd.AddCommand(
		newDoctorCommand(),
		newVersionCommand(),
	)

	return cmd
}
