package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(semestersCmd)
}

var semestersCmd = &cobra.Command{
	Use:   "semesters",
	Short: "Lists the semesters you can request a schedule for.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := openSchedulePage(cmd.Context())
		if err != nil {
			return err
		}
		semesters, err := page.Semesters(cmd.Context())
		if err != nil {
			return err
		}

		t := NewTable()
		t.AppendHeader(table.Row{"Id", "Name", "Current"})
		for _, s := range semesters {
			current := ""
			if s.Current {
				current = "*"
			}
			t.AppendRow(table.Row{s.Id, s.Name, current})
		}
		t.Render()
		return nil
	},
}
