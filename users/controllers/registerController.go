package controllers

import (
	"context"

	"waste-tracking-backend/config"
	"waste-tracking-backend/token"
	"waste-tracking-backend/users/repositories"
	"waste-tracking-backend/users/services"

	"waste-tracking-backend/db/models"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type AuthController struct {
	UserRepo        repositories.UserRepository
	PasetoMaker     token.Maker
	Ctx             context.Context
	RedisClient     *redis.Client
	AsynqClient     *asynq.Client
	BaseFrontendURL string
}

// RegisterUser handles POST /api/v1/auth/register.
func (ac *AuthController) RegisterUser(c *fiber.Ctx) error {
	type RegisterRequest struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
		Password  string `json:"password"`
	}

	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		config.Logger.Error("Error parsing register request body", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request",
			"data":    nil,
			"error":   "Invalid request format.",
		})
	}

	user := &models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		IsActive:  true,
	}

	if validationError := services.ValidateUser(user); validationError != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"data":    nil,
			"error":   validationError,
		})
	}
	if validationError := services.ValidateEmail(user.Email, ac.UserRepo); validationError != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"data":    nil,
			"error":   validationError,
		})
	}
	if validationError := services.ValidatePassword(user.Password); validationError != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"data":    nil,
			"error":   validationError,
		})
	}

	hashedPassword, err := repositories.HashPassword(user.Password)
	if err != nil {
		config.Logger.Error("Error hashing password during registration", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Registration failed",
			"data":    nil,
			"error":   "Error processing password.",
		})
	}
	user.Password = hashedPassword

	created, err := ac.UserRepo.CreateUser(user)
	if err != nil {
		config.Logger.Error("Error creating user",
			zap.String("email", user.Email),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Registration failed",
			"data":    nil,
			"error":   "Could not create user.",
		})
	}

	config.Logger.Info("User registered",
		zap.String("user_id", created.ID.String()),
		zap.String("email", created.Email),
	)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"data": fiber.Map{
			"id":        created.ID.String(),
			"email":     created.Email,
			"firstName": created.FirstName,
			"lastName":  created.LastName,
		},
		"error": nil,
	})
}
