package routes

import (
	"waste-tracking-backend/middleware"
	users_repositories "waste-tracking-backend/users/repositories"
	"waste-tracking-backend/wastedata/controllers"
	"waste-tracking-backend/wastedata/repositories"
	"waste-tracking-backend/wastedata/services"

	"github.com/gofiber/fiber/v2"
)

func WasteDataRouterInit(
	app *fiber.App,
	wasteDataRepo repositories.WasteDataRepository,
	userRepo users_repositories.UserRepository,
	generator services.ReportGenerator,
	appContext *middleware.AppContext,
) {
	wasteDataService := services.NewWasteDataService(wasteDataRepo, generator)

	wasteDataController := &controllers.WasteDataController{
		WasteDataService: wasteDataService,
		UserRepo:         userRepo,
	}

	wasteDataRoutes := app.Group("/api/v1/waste-data", middleware.ProtectedRoute(appContext))
	wasteDataRoutes.Get("/", wasteDataController.GetWasteSummary)
	wasteDataRoutes.Post("/report", wasteDataController.GenerateAiReport)
}
