package constants

const (
	DateLayout      = "2006-01-02"
	TimeOfDayLayout = "15:04"
)

// Context keys
const (
	ContextRequestID = "request_id"
)

// Cache keys
const (
	ExpandLockKeyPrefix = "scheduling:expand:"
)

// Queue task types
const (
	TaskExportSeries = "export:series"
	QueueDefault     = "default"
)

// Export object layout
const (
	ExportKeyPrefix   = "exports/series/"
	ExportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)
