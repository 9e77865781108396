// Package jobs wires background processing: an Asynq worker with a cron
// scheduler, a client for enqueueing from the API process, and the task
// handlers themselves.
package jobs

import (
	"context"
	"encoding/json"

	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/shopvima/shopvima/internal/wooimport"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskSessionsCleanup purges expired session rows from Postgres.
	TaskSessionsCleanup = "sessions:cleanup"
	// TaskCatalogImport runs a full WooCommerce product import.
	TaskCatalogImport = "catalog:import"
)

// NewSessionsCleanupTask constructs the cleanup task. It carries no payload.
func NewSessionsCleanupTask() *asynq.Task {
	return asynq.NewTask(TaskSessionsCleanup, nil)
}

// CatalogImportPayload parametrizes an import run.
type CatalogImportPayload struct {
	// RequestedBy records the principal that triggered the import, for logs.
	RequestedBy string `json:"requested_by,omitempty"`
}

// NewCatalogImportTask constructs an import task.
func NewCatalogImportTask(payload CatalogImportPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCatalogImport, data), nil
}

// SessionStore deletes expired session rows.
type SessionStore interface {
	DeleteExpiredSessions(ctx context.Context) (int64, error)
}

// NewSessionsCleanupHandler returns the handler for TaskSessionsCleanup.
func NewSessionsCleanupHandler(logger *slog.Logger, store SessionStore) asynq.HandlerFunc {
	return func(ctx context.Context, _ *asynq.Task) error {
		deleted, err := store.DeleteExpiredSessions(ctx)
		if err != nil {
			return err
		}
		logger.Info("expired sessions purged", slog.Int64("deleted", deleted))
		return nil
	}
}

// ImportRunner runs a catalog import and reports the outcome.
type ImportRunner interface {
	Run(ctx context.Context) (wooimport.ImportReport, error)
}

// NewCatalogImportHandler returns the handler for TaskCatalogImport.
func NewCatalogImportHandler(logger *slog.Logger, runner ImportRunner) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload CatalogImportPayload
		if len(t.Payload()) > 0 {
			if err := json.Unmarshal(t.Payload(), &payload); err != nil {
				return asynq.SkipRetry
			}
		}
		report, err := runner.Run(ctx)
		if err != nil {
			return err
		}
		logger.Info("catalog import finished",
			slog.String("requested_by", payload.RequestedBy),
			slog.Int("fetched", report.Fetched),
			slog.Int("imported", report.Imported),
			slog.Int("skipped", report.Skipped),
			slog.Int("media_saved", report.MediaSaved),
			slog.Int("media_failed", report.MediaFailed))
		return nil
	}
}
