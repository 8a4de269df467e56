package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/Roma7-7-7/weekly-slack-reminder/internal"
	"github.com/aws/aws-lambda-go/lambda"
)

func main() {
	ctx := context.Background()

	conf, err := internal.GetConfig(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to get config", "error", err) //nolint:sloglint // logger is not yet initialized
		os.Exit(1)
	}

	log := internal.NewLogger(os.Stdout, conf.Dev)

	app, err := internal.NewApp(conf, nil, log)
	if err != nil {
		log.ErrorContext(ctx, "failed to create app", "error", err)
		os.Exit(1)
	}

	handler := internal.NewLambdaHandler(app.Notifier, log)
	lambda.Start(handler.HandleRequest)
}
