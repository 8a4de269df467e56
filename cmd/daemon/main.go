package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Roma7-7-7/weekly-slack-reminder/internal"
	"github.com/go-co-op/gocron/v2"
)

var (
	Version   = "dev"     //nolint:gochecknoglobals // version is a global variable
	BuildTime = "unknown" //nolint:gochecknoglobals // build time is a global variable
)

var (
	once  = flag.Bool("once", false, "Send the reminder immediately and exit")
	check = flag.Bool("check", false, "Verify Slack credentials and exit")
)

func main() {
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	exitCode := run(ctx)
	cancel()
	os.Exit(exitCode)
}

func run(ctx context.Context) int {
	conf, err := internal.GetConfig(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to get config", "error", err) //nolint:sloglint // logger is not yet initialized
		return 1
	}

	log := internal.NewLogger(os.Stdout, conf.Dev)
	log.InfoContext(ctx, "weekly-slack-reminder daemon starting", "version", Version, "build_time", BuildTime)

	app, err := internal.NewApp(conf, nil, log)
	if err != nil {
		log.ErrorContext(ctx, "failed to create app", "error", err)
		return 1
	}

	switch {
	case *check:
		if err := app.Check(ctx); err != nil {
			log.ErrorContext(ctx, "credentials check failed", "error", err)
			return 1
		}
		return 0
	case *once:
		if _, err := app.Notifier.Notify(ctx); err != nil {
			return 1
		}
		return 0
	}

	scheduler, err := gocron.NewScheduler(gocron.WithLocation(app.Location))
	if err != nil {
		log.ErrorContext(ctx, "failed to create scheduler", "error", err)
		return 1
	}

	reminderJob, err := scheduler.NewJob(
		gocron.CronJob(conf.Schedule, false),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(ctx, time.Minute)
			defer cancel()
			// Notify logs the failure details itself.
			_, _ = app.Notifier.Notify(ctx)
		}),
	)
	if err != nil {
		log.ErrorContext(ctx, "failed to create reminder job", "error", err, "schedule", conf.Schedule)
		return 1
	}

	scheduler.Start()

	nextRun, err := reminderJob.NextRun()
	if err != nil {
		log.WarnContext(ctx, "failed to get reminder next run time", "error", err)
	}

	log.InfoContext(ctx, "starting daemon",
		"schedule", conf.Schedule,
		"next_run", nextRun,
		"timezone", conf.Location,
		"dry_run", conf.DryRun)
	defer func() {
		if err := scheduler.Shutdown(); err != nil {
			log.ErrorContext(ctx, "failed to shutdown scheduler", "error", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.InfoContext(ctx, "received shutdown signal", "signal", sig)
		return 0
	case <-ctx.Done():
		log.InfoContext(ctx, "context cancelled")
		return 0
	}
}
