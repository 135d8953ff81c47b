package commands

import (
	"context"
	"omnivox-backend/internal/components/telemetry"

	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
	dumpDir    string
)

var rootCmd = &cobra.Command{
	Use:   "omnivox-cli",
	Short: "omnivox-cli signs into Omnivox and reads your class schedule.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		telemetry.InitSlog(verbose)
		if dumpDir == "" {
			return nil
		}
		out, err := telemetry.NewFilesystemOutput(dumpDir)
		if err != nil {
			return err
		}
		telemetry.SetRestyOutput(out)
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "omnivox.json5", "The portal config file.")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every request made to the portal.")
	rootCmd.PersistentFlags().StringVar(&dumpDir, "dump", "", "Write a dump of every http exchange to this directory.")
}

func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
