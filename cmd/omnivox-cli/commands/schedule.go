package commands

import (
	"fmt"
	"omnivox-backend/internal/scrapers/omnivox"

	"github.com/spf13/cobra"
)

var (
	scheduleSemester string
	scheduleForce    bool
)

func init() {
	scheduleCmd.Flags().StringVar(&scheduleSemester, "semester", "", "A semester id or name, defaults to the current semester.")
	scheduleCmd.Flags().BoolVar(&scheduleForce, "force", false, "Refetch the schedule even if it was already read.")
	rootCmd.AddCommand(scheduleCmd)
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule [--semester <id|name>] [--force]",
	Short: "Prints the courses of a semester.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		page, err := openSchedulePage(ctx)
		if err != nil {
			return err
		}

		var semester omnivox.Semester
		if scheduleSemester == "" {
			current, ok, err := page.CurrentSemester(ctx)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("the portal has no current semester, pick one with --semester")
			}
			semester = current
		} else {
			semesters, err := page.Semesters(ctx)
			if err != nil {
				return err
			}
			match, ok := omnivox.MatchSemester(semesters, scheduleSemester)
			if !ok {
				return fmt.Errorf("no semester matches %q", scheduleSemester)
			}
			semester = match
		}

		schedule, err := page.Schedule(ctx, semester, scheduleForce)
		if err != nil {
			return err
		}
		printSchedule(schedule)
		return nil
	},
}
