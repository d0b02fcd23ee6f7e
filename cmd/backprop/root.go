package main

import (
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/born-ml/backprop/internal/telemetry"
)

func newRootCmd(outW, errW io.Writer) *cobra.Command {
	var logLevel, logFormat string

	cmd := &cobra.Command{
		Use:           "backprop",
		Short:         "Reverse-mode automatic differentiation of scalar expressions",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level, err := telemetry.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logger, err := telemetry.NewLogger(level, logFormat, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			logger = telemetry.WithSession(logger, uuid.NewString())
			cmd.SetContext(telemetry.WithLogger(cmd.Context(), logger))
			return nil
		},
	}
	cmd.SetOut(outW)
	cmd.SetErr(errW)

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", envOr(telemetry.EnvLogLevel, "warn"),
		"Log level: debug, info, warn, error (env "+telemetry.EnvLogLevel+")")
	cmd.PersistentFlags().StringVar(&logFormat, "log-format", envOr(telemetry.EnvLogFormat, "text"),
		"Log format: text or json (env "+telemetry.EnvLogFormat+")")

	cmd.AddCommand(
		newGradCmd(),
		newDemoCmd(),
		newMinimizeCmd(),
		newVersionCmd(),
	)

	return cmd
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
