package main

import (
	"context"

	config "waste-tracking-backend/config"
	"waste-tracking-backend/token"
	"waste-tracking-backend/utils"

	"waste-tracking-backend/middleware"

	// Repositories
	batches_repositories "waste-tracking-backend/batches/repositories"
	dictionary_repositories "waste-tracking-backend/dictionaries/repositories"
	users_repositories "waste-tracking-backend/users/repositories"
	wastedata_repositories "waste-tracking-backend/wastedata/repositories"

	// Routes
	batch_routes "waste-tracking-backend/batches/routes"
	dictionary_routes "waste-tracking-backend/dictionaries/routes"
	user_routes "waste-tracking-backend/users/routes"
	wastedata_routes "waste-tracking-backend/wastedata/routes"

	// Services
	internal_services "waste-tracking-backend/internal/services"
	"waste-tracking-backend/internal/tasks"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Initialize Zap logger
	config.InitLogger()

	// Load environment variables
	err := godotenv.Load(".env")
	if err != nil {
		config.Logger.Warn("No .env file loaded, relying on environment", zap.Error(err))
	}

	app := fiber.New()

	// Apply CORS middleware from middleware package
	middleware.InitCors(app)

	// Initialize database and configs
	db := config.ConfigureDatabase()
	port := config.GetEnvOrDefault("PORT", "8080")
	ctx := context.Background()

	if err := config.SeedWasteTypes(db); err != nil {
		config.Logger.Fatal("Failed to seed waste types", zap.Error(err))
	}

	redisClient := config.InitRedisServer(ctx)

	redisAddr := config.GetEnv("REDIS_ADDRESS")
	if redisAddr == "" {
		redisAddr = "localhost:6379" // Default for development
		config.Logger.Warn("REDIS_ADDRESS not set, using default: localhost:6379")
	}

	// Note: asynq.RedisClientOpt uses its own Redis client internally.
	asynqRedisOpt := asynq.RedisClientOpt{
		Addr:     redisAddr,
		Password: config.GetEnv("REDIS_PASSWORD"),
		DB:       0,
	}

	asynqClient := asynq.NewClient(asynqRedisOpt)
	defer asynqClient.Close()

	taskServer := tasks.StartTaskServer(asynqRedisOpt)
	defer taskServer.Shutdown()

	tokenKey := config.GetEnv("TOKEN_SYMMETRIC_KEY")
	tokenMaker, err := token.NewPasetoMaker(tokenKey)
	if err != nil {
		config.Logger.Fatal("Cannot create token maker", zap.Error(err))
	}

	baseFrontendURL := config.GetEnv("BASE_FRONTEND_URL")
	if baseFrontendURL == "" {
		baseFrontendURL = "http://localhost:5173" // Default frontend URL
		config.Logger.Warn("BASE_FRONTEND_URL not set, using default", zap.String("url", baseFrontendURL))
	}

	// Initialize the mailer
	utils.InitializeMailer()

	// Date location
	if err := utils.InitializeDateLocation(); err != nil {
		config.Logger.Fatal("Failed to initialize date location", zap.Error(err))
	}

	// AI report generator
	geminiService, err := internal_services.NewGeminiService(config.GetGeminiAPIKey())
	if err != nil {
		config.Logger.Fatal("Cannot create Gemini service", zap.Error(err))
	}

	appContext := &middleware.AppContext{
		PasetoMaker: tokenMaker,
		Ctx:         ctx,
		RedisClient: redisClient,
	}

	// Repositories
	userRepo := users_repositories.NewUserRepository(db)
	batchRepo := batches_repositories.NewBatchRepository(db)
	dictionaryRepo := dictionary_repositories.NewDictionaryRepository(db)
	wasteDataRepo := wastedata_repositories.NewWasteDataRepository(db)

	// Routes
	user_routes.InitRoutes(app, userRepo, ctx, redisClient, tokenMaker, asynqClient, baseFrontendURL, appContext)
	batch_routes.BatchRouterInit(app, batchRepo, dictionaryRepo, userRepo, appContext)
	dictionary_routes.DictionaryRouterInit(app, dictionaryRepo, appContext)
	wastedata_routes.WasteDataRouterInit(app, wasteDataRepo, userRepo, geminiService, appContext)

	// Background cleanup of soft-deleted batches
	cleanupCron := utils.StartScheduledCleanup(db)
	defer cleanupCron.Stop()

	// Start the application
	config.Logger.Info("Server starting", zap.String("port", port))
	config.Logger.Fatal("Server failed", zap.String("port", port), zap.Error(app.Listen(":"+port)))
}
