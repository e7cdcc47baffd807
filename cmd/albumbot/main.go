package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"syscall"

	"github.com/kursadbilgin/albumbot/internal/config"
	"github.com/kursadbilgin/albumbot/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const longHelp = `Post the 1001 Albums Generator album of the day to a GroupMe group.

Configuration is read from the environment (and an optional .env file):
  BOT_ID   GroupMe bot id (required)
  GROUP    1001albumsgenerator.com group slug (required)

Remote calls are retried RETRY_LIMIT times, RETRY_DELAY_SECONDS apart.`

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "albumbot:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "albumbot",
		Short:         "Announce the album of the day to a group chat",
		Long:          longHelp,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(envFile)
			if err != nil {
				return err
			}
			defer app.logger.Sync() //nolint:errcheck

			if err := app.announcer.Run(cmd.Context()); err != nil {
				app.logger.Error("album announcement failed", zap.Error(err))
				return err
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	root.AddCommand(newScheduleCommand(&envFile))
	return root
}

func newScheduleCommand(envFile *string) *cobra.Command {
	var spec string

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run as a daemon and announce on a cron schedule",
		Example: `  albumbot schedule
  albumbot schedule --cron "30 8 * * 1-5"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(*envFile)
			if err != nil {
				return err
			}
			defer app.logger.Sync() //nolint:errcheck

			if !cmd.Flags().Changed("cron") {
				spec = app.cfg.Schedule
			}

			scheduler, err := service.NewScheduler(app.announcer, spec, app.location, app.logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return scheduler.Start(ctx)
		},
	}
	cmd.Flags().StringVar(&spec, "cron", config.DefaultSchedule, "cron spec (5 fields or @descriptor); overrides SCHEDULE")

	return cmd
}
