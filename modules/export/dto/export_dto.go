package dto

// SeriesExportPayload is the asynq payload for a series export.
type SeriesExportPayload struct {
	SeriesID string `json:"series_id"`
}

type ExportQueuedResponse struct {
	SeriesID string `json:"series_id"`
	TaskID   string `json:"task_id"`
}
