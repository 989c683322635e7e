package export

import (
	"game-scheduler/core/constants"
	"game-scheduler/core/database"
	"game-scheduler/core/queue"
	"game-scheduler/core/storage"
	"game-scheduler/modules/export/controller"
	"game-scheduler/modules/export/router"
	"game-scheduler/modules/export/service"
	"game-scheduler/modules/export/task"
	"game-scheduler/modules/scheduling/repository"

	"github.com/labstack/echo/v4"
)

func NewService(db database.IDatabase, uploader storage.Uploader, enqueuer queue.Enqueuer) *service.ExportService {
	return service.NewExportService(repository.NewSchedulingRepository(db), uploader, enqueuer)
}

// Init registers the export routes. A nil enqueuer makes the endpoint report
// the queue as unavailable.
func Init(e *echo.Echo, svc *service.ExportService) {
	ctrl := controller.NewExportController(svc)
	router.NewExportRouter(ctrl).Setup(e)
}

// RegisterTasks binds the export handlers on a worker.
func RegisterTasks(w *queue.Worker, svc *service.ExportService) {
	w.Handle(constants.TaskExportSeries, task.NewSeriesExportHandler(svc))
}
