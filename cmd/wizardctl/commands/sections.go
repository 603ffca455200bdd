package commands

import (
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"mortgage-portal/internal/model"
)

func sectionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sections",
		Short: "List the wizard steps in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Step", "Key", "Title"})
			for i, s := range model.Sections {
				table.Append([]string{strconv.Itoa(i + 1), s.Key, s.Title})
			}
			table.Render()
			return nil
		},
	}
}
