package task

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type fakeExporter struct {
	seriesID uuid.UUID
	err      error
}

func (f *fakeExporter) ExportSeries(ctx context.Context, seriesID uuid.UUID) (string, error) {
	f.seriesID = seriesID
	return "exports/series/x.xlsx", f.err
}

func TestSeriesExportHandler(t *testing.T) {
	seriesID := uuid.New()

	t.Run("exports the series", func(t *testing.T) {
		exp := &fakeExporter{}
		task := asynq.NewTask("export:series", []byte(`{"series_id":"`+seriesID.String()+`"}`))
		if err := NewSeriesExportHandler(exp).ProcessTask(context.Background(), task); err != nil {
			t.Fatalf("ProcessTask() error: %v", err)
		}
		if exp.seriesID != seriesID {
			t.Errorf("exported %s, want %s", exp.seriesID, seriesID)
		}
	})

	t.Run("bad payloads skip retry", func(t *testing.T) {
		for _, payload := range []string{`not json`, `{"series_id":"nope"}`} {
			task := asynq.NewTask("export:series", []byte(payload))
			err := NewSeriesExportHandler(&fakeExporter{}).ProcessTask(context.Background(), task)
			if !errors.Is(err, asynq.SkipRetry) {
				t.Errorf("payload %s: err = %v, want SkipRetry", payload, err)
			}
		}
	})

	t.Run("export failure is retried", func(t *testing.T) {
		exp := &fakeExporter{err: errors.New("s3 down")}
		task := asynq.NewTask("export:series", []byte(`{"series_id":"`+seriesID.String()+`"}`))
		err := NewSeriesExportHandler(exp).ProcessTask(context.Background(), task)
		if err == nil || errors.Is(err, asynq.SkipRetry) {
			t.Errorf("err = %v, want a retryable error", err)
		}
	})
}
