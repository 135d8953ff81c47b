package commands

import (
	"context"
	"log/slog"
	"omnivox-backend/internal/components/chrono"
	"omnivox-backend/internal/store"
	"time"

	"github.com/spf13/cobra"
)

var exportDb string

func init() {
	exportCmd.Flags().StringVar(&exportDb, "db", "schedules.db", "The sqlite database to write schedules to.")
	rootCmd.AddCommand(exportCmd)
}

// exportOnce logs in on every call, portal sessions do not outlive a day.
func exportOnce(ctx context.Context, makeTx store.MakeTx, clock chrono.API) error {
	page, err := openSchedulePage(ctx)
	if err != nil {
		return err
	}
	schedules, err := page.Schedules(ctx, false)
	if err != nil {
		return err
	}
	for _, schedule := range schedules {
		err = store.SaveSchedule(ctx, makeTx, schedule)
		if err != nil {
			return err
		}
		slog.Info(
			"exported semester",
			"id", schedule.Semester.Id,
			"courses", len(schedule.Courses),
		)
	}
	slog.Info("exported schedules", "semesters", len(schedules), "at", clock.Now())
	return nil
}

var exportCmd = &cobra.Command{
	Use:   "export [--db <path/to/output.db>]",
	Short: "Fetches the schedule of every semester and writes it to a database.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		clock, err := chrono.NewStandardImpl("")
		if err != nil {
			return err
		}
		db, err := store.Open(exportDb)
		if err != nil {
			return err
		}
		defer db.Close()

		t1 := time.Now()
		err = exportOnce(cmd.Context(), store.NewMakeTx(db), clock)
		if err != nil {
			return err
		}
		t2 := time.Now()

		slog.Info("export time", "seconds", t2.Sub(t1).Seconds(), "db", exportDb)
		return nil
	},
}
