package config

import (
	"os"
	"time"

	"github.com/christinemirimba/VibeCodingHackathon/internal/api/handlers"
	"github.com/christinemirimba/VibeCodingHackathon/internal/api/routes"
	"github.com/christinemirimba/VibeCodingHackathon/internal/middleware"
	"github.com/christinemirimba/VibeCodingHackathon/internal/utils"
	"github.com/christinemirimba/VibeCodingHackathon/internal/utils/mailing"
	"github.com/christinemirimba/VibeCodingHackathon/internal/utils/storage"
	"github.com/christinemirimba/VibeCodingHackathon/pkg/gemini"
	"github.com/christinemirimba/VibeCodingHackathon/pkg/intasend"
	"github.com/christinemirimba/VibeCodingHackathon/pkg/jwt"
	"github.com/christinemirimba/VibeCodingHackathon/pkg/payment"
	"github.com/christinemirimba/VibeCodingHackathon/pkg/recipe"
	"github.com/christinemirimba/VibeCodingHackathon/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB, cfg *utils.Config) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Africa/Nairobi",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// external collaborators, constructed once and passed in
	modelClient := gemini.NewClient(gemini.Config{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		Timeout: cfg.ModelTimeout,
	})
	gateway := intasend.NewClient(intasend.Config{
		SecretKey:      cfg.IntaSendSecretKey,
		PublishableKey: cfg.IntaSendPublishableKey,
		BaseURL:        cfg.IntaSendBaseURL,
		CallbackURL:    cfg.CallbackBaseURL + "/payments/callback",
	})
	mailer := mailing.NewMailer(mailing.MailConfig{
		SMTPHost:     cfg.SMTPHost,
		SMTPPort:     cfg.SMTPPort,
		SMTPSender:   cfg.SMTPSenderName,
		SMTPEmail:    cfg.SMTPAuthEmail,
		SMTPPassword: cfg.SMTPAuthPassword,
	})
	s3, err := storage.NewAwsS3(storage.S3Config{
		Bucket:    cfg.AWSS3Bucket,
		Region:    cfg.AWSS3Region,
		AccessKey: cfg.AWSAccessKey,
		SecretKey: cfg.AWSSecretKey,
	})
	if err != nil {
		return nil, err
	}

	// Repository
	userRepository := user.NewUserRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	paymentRepository := payment.NewPaymentRepository(db)

	// Service
	jwtService := jwt.NewJWTService(cfg.JWTSecret)
	userService := user.NewUserService(userRepository, jwtService, cfg.FreeRecipeQty)
	recipeService := recipe.NewRecipeService(recipeRepository, userRepository, modelClient, s3)
	paymentService := payment.NewPaymentService(
		paymentRepository,
		userRepository,
		gateway,
		mailer,
		cfg.PremiumPrice,
		cfg.Currency,
	)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	paymentHandler := handlers.NewPaymentHandler(paymentService, validator)

	// routes
	routesConfig := routes.Config{
		App:            app,
		UserHandler:    userHandler,
		RecipeHandler:  recipeHandler,
		PaymentHandler: paymentHandler,
		Middleware:     middlewares,
		JWTService:     jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
