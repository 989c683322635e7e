package task

import (
	"context"
	"encoding/json"
	"fmt"

	"game-scheduler/core/logger"
	"game-scheduler/modules/export/dto"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type SeriesExporter interface {
	ExportSeries(ctx context.Context, seriesID uuid.UUID) (string, error)
}

type SeriesExportHandler struct {
	exporter SeriesExporter
}

func NewSeriesExportHandler(exporter SeriesExporter) *SeriesExportHandler {
	return &SeriesExportHandler{exporter: exporter}
}

// ProcessTask implements asynq.Handler. Malformed payloads are not retried.
func (h *SeriesExportHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload dto.SeriesExportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("decoding payload: %v: %w", err, asynq.SkipRetry)
	}

	seriesID, err := uuid.Parse(payload.SeriesID)
	if err != nil {
		return fmt.Errorf("invalid series id %q: %v: %w", payload.SeriesID, err, asynq.SkipRetry)
	}

	key, err := h.exporter.ExportSeries(ctx, seriesID)
	if err != nil {
		return err
	}

	if w := t.ResultWriter(); w != nil {
		if _, err := w.Write([]byte(key)); err != nil {
			logger.Warn("SeriesExportHandler:ProcessTask", "error", err, "key", key)
		}
	}
	return nil
}
