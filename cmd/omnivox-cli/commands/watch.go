package commands

import (
	"log/slog"
	"omnivox-backend/internal/components/chrono"
	"omnivox-backend/internal/components/telemetry"
	"omnivox-backend/internal/store"
	"time"

	"github.com/spf13/cobra"
)

var (
	watchDb       string
	watchSpec     string
	watchLocation string
)

func init() {
	watchCmd.Flags().StringVar(&watchDb, "db", "schedules.db", "The sqlite database to write schedules to.")
	watchCmd.Flags().StringVar(&watchSpec, "cron", "0 6 * * *", "When to export, in cron syntax.")
	watchCmd.Flags().StringVar(&watchLocation, "tz", chrono.DefaultLocation, "The timezone the cron spec is read in.")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch [--db <path>] [--cron <spec>] [--tz <location>]",
	Short: "Keeps a database of schedules up to date, exporting on a cron schedule until interrupted.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		clock, err := chrono.NewStandardImpl(watchLocation)
		if err != nil {
			return err
		}
		db, err := store.Open(watchDb)
		if err != nil {
			return err
		}
		defer db.Close()
		makeTx := store.NewMakeTx(db)

		tel := telemetry.NewScopedAPI("watch", telemetry.SlogAPI{})
		telemetry.InstrumentPerfStats(ctx, time.Minute, tel)
		cron := chrono.NewStandardCron(clock, tel)
		defer cron.Stop()

		err = cron.Cron(watchSpec, func() {
			err := exportOnce(ctx, makeTx, clock)
			if err != nil {
				tel.ReportBroken("export", err)
			}
		})
		if err != nil {
			return err
		}

		slog.Info("watching", "cron", watchSpec, "tz", clock.Location().String(), "db", watchDb)
		<-ctx.Done()
		return nil
	},
}
