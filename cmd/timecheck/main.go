package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lmittmann/tint"
	"github.com/openmined/timecheck/internal/clock"
	"github.com/openmined/timecheck/internal/config"
	"github.com/openmined/timecheck/internal/healthcheck"
	"github.com/openmined/timecheck/internal/utils"
	"github.com/openmined/timecheck/internal/version"
	"github.com/spf13/cobra"
)

var logLevel = new(slog.LevelVar)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "timecheck",
		Short:   "Check that a time service agrees with the local clock",
		Version: version.Detailed(),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}

			// past this point every outcome is a printed result, not a usage error
			cmd.SilenceUsage = true

			if cfg.Debug {
				logLevel.Set(slog.LevelDebug)
			}
			slog.Debug("config",
				"version", version.Short(),
				"url", cfg.URL,
				"timeout", cfg.Timeout,
				"tolerance", cfg.ToleranceDuration(),
				"ntp_host", cfg.NTPHost,
				"output", cfg.Output,
			)

			return runCheck(cmd.Context(), cmd, cfg)
		},
	}

	cmd.Flags().SortFlags = false
	cmd.Flags().Bool("debug", false, "print additional logging")
	cmd.Flags().StringP("url", "u", config.DefaultURL, "url of the time service")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout, "time service request timeout")
	cmd.Flags().Int("tolerance", config.DefaultTolerance, "accepted drift in whole seconds")
	cmd.Flags().String("ntp-host", "", "correct the local clock with this NTP server before comparing")
	cmd.Flags().StringP("output", "o", config.DefaultOutput, "output format (text|json)")

	cmd.AddCommand(newVersionCmd())

	return cmd
}

func runCheck(ctx context.Context, cmd *cobra.Command, cfg *config.Config) error {
	out := cmd.OutOrStdout()

	if err := utils.ValidateHTTPURL(cfg.URL); err != nil {
		slog.Debug("url validation", "url", cfg.URL, "error", err)
		if cfg.Output == config.OutputJSON {
			slog.Warn("not a valid URL", "url", cfg.URL, "error", err)
		} else if _, err := fmt.Fprintf(out, "%s is not a valid URL\n", cfg.URL); err != nil {
			return err
		}
	}

	var clk clock.Clock = clock.System{}
	if cfg.NTPHost != "" {
		ntpClock, err := clock.NewNTP(cfg.NTPHost, cfg.Timeout)
		if err != nil {
			slog.Warn("ntp unavailable, comparing against the system clock", "error", err)
		} else {
			clk = ntpClock
		}
	}

	checker := healthcheck.New(&healthcheck.Options{
		Timeout:   cfg.Timeout,
		Tolerance: cfg.ToleranceDuration(),
		Clock:     clk,
		Debug:     cfg.Debug,
	})

	res := checker.Check(ctx, cfg.URL)
	if res.Err != nil {
		slog.Debug("check failed", "status", res.Status, "error", res.Err)
	}

	return printResult(out, res, cfg.Output)
}

func newLogHandler(w io.Writer) slog.Handler {
	return tint.NewHandler(w, &tint.Options{
		Level:      logLevel,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
		NoColor:    !colorEnabled(w),
	})
}

func main() {
	slog.SetDefault(slog.New(newLogHandler(os.Stderr)))

	// Setup root context with signal handling
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
