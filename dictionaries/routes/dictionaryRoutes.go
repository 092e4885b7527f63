package routes

import (
	"waste-tracking-backend/dictionaries/controllers"
	"waste-tracking-backend/dictionaries/repositories"
	"waste-tracking-backend/middleware"

	"github.com/gofiber/fiber/v2"
)

func DictionaryRouterInit(
	app *fiber.App,
	dictionaryRepo repositories.DictionaryRepository,
	appContext *middleware.AppContext,
) {
	dictionaryController := &controllers.DictionaryController{
		DictionaryRepo: dictionaryRepo,
	}

	dictionaryRoutes := app.Group("/api/v1", middleware.ProtectedRoute(appContext))
	dictionaryRoutes.Get("/waste-types", dictionaryController.GetWasteTypes)
	dictionaryRoutes.Get("/locations", dictionaryController.GetLocations)
}
