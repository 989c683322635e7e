package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"game-scheduler/core/config"
	"game-scheduler/core/logger"
	"game-scheduler/core/server"
	"game-scheduler/modules/scheduling"
	"game-scheduler/modules/scheduling/dto"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// @title Game Scheduler API
// @version 1.0
// @description Recurring game schedules, conflict detection and optimal time slots.

// @host localhost:7070
// @BasePath /api/v1

func main() {
	var configFile string

	rootCmd := &cobra.Command{
		Use:   "scheduler",
		Short: "Recurring game scheduling service",
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to config file (default: config.yaml in current directory, if present)")

	serveCmd := &cobra.Command{
		Use:          "serve",
		Short:        "Run the HTTP API and the embedded export worker",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), configFile, server.Serve)
		},
	}

	workerCmd := &cobra.Command{
		Use:          "worker",
		Short:        "Run only the export worker",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), configFile, server.RunWorker)
		},
	}

	var startDate, endDate string
	expandCmd := &cobra.Command{
		Use:          "expand <pattern-id>",
		Short:        "Generate the games of a recurring pattern",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			patternID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid pattern id %q: %w", args[0], err)
			}
			return withApp(cmd.Context(), configFile, func(ctx context.Context, app *server.App) error {
				return runExpand(ctx, app, patternID, startDate, endDate)
			})
		},
	}
	expandCmd.Flags().StringVar(&startDate, "start", "", "Window start (YYYY-MM-DD, default: pattern start date)")
	expandCmd.Flags().StringVar(&endDate, "end", "", "Window end (YYYY-MM-DD, default: pattern end date)")

	rootCmd.AddCommand(serveCmd, workerCmd, expandCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func withApp(ctx context.Context, configFile string, run func(context.Context, *server.App) error) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	app, err := server.Bootstrap(cfg)
	if err != nil {
		logger.Error("bootstrap error", err)
		return err
	}
	defer app.Close()

	return run(ctx, app)
}

func runExpand(ctx context.Context, app *server.App, patternID uuid.UUID, start, end string) error {
	svc := scheduling.NewService(app.DB, app.Cache, app.Config.Scheduling)

	result, appErr := svc.ExpandPattern(ctx, patternID, &dto.ExpandPatternRequest{StartDate: start, EndDate: end})

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if result != nil {
		if err := enc.Encode(result); err != nil {
			return err
		}
	}
	if appErr != nil {
		return appErr
	}
	return nil
}
