// Command outbox-retry drains locally queued enrollment and contact
// submissions back into the persistence gateway. Run it after an outage:
// replays are idempotent on the server side, so repeating it is safe.
package main

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/kalakar-academy/academy-api/internal/client"
	"github.com/kalakar-academy/academy-api/internal/outbox"
	"github.com/kalakar-academy/academy-api/internal/pipeline"
	"github.com/kalakar-academy/academy-api/pkg/config"
	"github.com/kalakar-academy/academy-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	store, err := outbox.NewFileStore(cfg.Outbox.Dir)
	if err != nil {
		logr.Sugar().Fatalw("outbox unavailable", "dir", cfg.Outbox.Dir, "error", err)
	}

	api := client.New(cfg.Client.APIBaseURL, cfg.Client.Timeout, logr)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	available, dbConnected := api.Health(ctx)
	if !available {
		logr.Sugar().Fatalw("gateway unreachable, leaving queue untouched", "url", cfg.Client.APIBaseURL)
	}
	if !dbConnected {
		logr.Warn("gateway is up but reports no database connection, replays may requeue")
	}

	enrollments := pipeline.NewEnrollment(nil, api, store, pipeline.Options{}, logr)
	contacts := pipeline.NewContact(api, store, logr)

	enrollReport, err := enrollments.RetryFailed(ctx)
	if err != nil {
		logr.Error("enrollment replay aborted", zap.Error(err))
	}
	contactReport, err := contacts.RetryFailed(ctx)
	if err != nil {
		logr.Error("contact replay aborted", zap.Error(err))
	}

	logr.Sugar().Infow("outbox replay finished",
		"enrollments_recovered", enrollReport.Success,
		"enrollments_still_queued", enrollReport.Failed,
		"contacts_recovered", contactReport.Success,
		"contacts_still_queued", contactReport.Failed,
	)
}
