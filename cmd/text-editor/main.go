package main

import (
	"fmt"
	"os"

	"text-editor/internal/app"
	"text-editor/internal/config"
	"text-editor/internal/logger"
	"text-editor/internal/shutdown"

	fyneapp "fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "text-editor",
		Short:         "A minimal desktop text editor with a file tree",
		Version:       app.AppVersion,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}
	config.InitFlags(cmd.Flags())
	return cmd
}

func run(cfg *config.Config) error {
	appLogger, err := logger.New(logger.Options{Level: cfg.LogLevel, JSON: cfg.JSONLogs})
	if err != nil {
		return err
	}

	fyneApp := fyneapp.NewWithID(app.AppID)

	application, err := app.NewApplication(fyneApp, cfg, appLogger)
	if err != nil {
		appLogger.Error("Main", err, nil)
		return fmt.Errorf("application initialization failed: %w", err)
	}

	shutdownManager := shutdown.NewManager(appLogger)
	shutdownManager.Register("application", application)
	shutdownManager.Listen()
	defer shutdownManager.Shutdown()

	if err := application.Run(); err != nil {
		return fmt.Errorf("application execution failed: %w", err)
	}

	appLogger.Info("Main", "application terminated", nil)
	return nil
}
