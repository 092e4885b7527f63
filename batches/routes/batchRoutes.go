package routes

import (
	"waste-tracking-backend/batches/controllers"
	"waste-tracking-backend/batches/repositories"
	"waste-tracking-backend/batches/services"
	dictionary_repositories "waste-tracking-backend/dictionaries/repositories"
	"waste-tracking-backend/middleware"
	users_repositories "waste-tracking-backend/users/repositories"

	"github.com/gofiber/fiber/v2"
)

func BatchRouterInit(
	app *fiber.App,
	batchRepo repositories.BatchRepository,
	dictionaryRepo dictionary_repositories.DictionaryRepository,
	userRepo users_repositories.UserRepository,
	appContext *middleware.AppContext,
) {
	batchService := services.NewBatchService(dictionaryRepo, batchRepo)

	batchController := &controllers.BatchController{
		BatchService: batchService,
		BatchRepo:    batchRepo,
		UserRepo:     userRepo,
	}

	batchRoutes := app.Group("/api/v1/batches", middleware.ProtectedRoute(appContext))
	batchRoutes.Post("/import", batchController.ImportBatch)
	batchRoutes.Get("/", batchController.GetFilteredBatches)
	batchRoutes.Delete("/:id", batchController.DeleteBatch)
}
