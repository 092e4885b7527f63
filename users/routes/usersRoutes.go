package routes

import (
	"context"

	"waste-tracking-backend/middleware"
	"waste-tracking-backend/token"
	"waste-tracking-backend/users/controllers"
	"waste-tracking-backend/users/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

func InitRoutes(
	app *fiber.App,
	userRepo repositories.UserRepository,
	ctx context.Context,
	redisClient *redis.Client,
	tokenMaker token.Maker,
	asynqClient *asynq.Client,
	baseFrontendURL string,
	appContext *middleware.AppContext,
) {
	authController := &controllers.AuthController{
		UserRepo:        userRepo,
		PasetoMaker:     tokenMaker,
		Ctx:             ctx,
		RedisClient:     redisClient,
		AsynqClient:     asynqClient,
		BaseFrontendURL: baseFrontendURL,
	}

	authRoutes := app.Group("/api/v1/auth")
	authRoutes.Post("/register", authController.RegisterUser)
	authRoutes.Post("/login", authController.LoginUser)
	authRoutes.Post("/logout", authController.LogoutUser)
	authRoutes.Post("/forgot-password", authController.ForgotPasswordRequest)
	authRoutes.Post("/reset-password", authController.ForgotPasswordReset)

	authRoutes.Get("/me", middleware.ProtectedRoute(appContext), authController.CurrentUser)
}
