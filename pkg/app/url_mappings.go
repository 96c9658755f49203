package app

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osvaldoandrade/sparkgw/internal/controllers"
)

func SetupMappings(app *Application) {
	app.Engine.POST("/create/job", controllers.NewSubmitJobController(app.Jobs).Handle)
	app.Engine.GET("/spark/job/status", controllers.NewJobStatusController(app.Jobs).Handle)
	app.Engine.GET("/results", controllers.NewGetResultsController(app.Results).Handle)
	app.Engine.GET("/health", controllers.NewHealthController(app.Config).Handle)

	app.Engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
