package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kwalter/shipit/internal/version"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the shipit version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "shipit version %s\n", version.String())
			return err
		},
	}
}
