package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"mortgage-portal/internal/derive"
)

func sortCodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sort-code <input>",
		Short: "Show how a typed sort code is masked",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), derive.SortCode(args[0]))
			return nil
		},
	}
}
