package commands

import (
	"github.com/spf13/cobra"
)

var strict bool

func newRoot() *cobra.Command {
	root := &cobra.Command{
		Use:          "wizardctl",
		Short:        "Inspect and replay mortgage application wizards",
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVar(&strict, "strict", false, "refuse to leave a step with missing required fields")

	root.AddCommand(sectionsCmd(), replayCmd(), sortCodeCmd())
	return root
}

func Execute() error {
	return newRoot().Execute()
}
