package routes

import (
	"github.com/christinemirimba/VibeCodingHackathon/internal/api/handlers"
	"github.com/christinemirimba/VibeCodingHackathon/internal/middleware"
	"github.com/christinemirimba/VibeCodingHackathon/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App            *fiber.App
	UserHandler    handlers.UserHandler
	RecipeHandler  handlers.RecipeHandler
	PaymentHandler handlers.PaymentHandler
	Middleware     middleware.Middleware
	JWTService     jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Recipes()
	c.Payments()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}
}

func (c *Config) Recipes() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)

	recipes := c.App.Group("/api/v1/recipes")
	recipes.Post("/generate", auth, c.RecipeHandler.GenerateRecipes)
	recipes.Get("/favorites", auth, c.RecipeHandler.GetFavoriteRecipes)
	recipes.Get("", c.RecipeHandler.GetRecipes)
	recipes.Get("/:id", c.RecipeHandler.GetRecipeDetail)
	recipes.Post("/:id/ratings", auth, c.RecipeHandler.RateRecipe)
	recipes.Post("/:id/favorite", auth, c.RecipeHandler.FavoriteRecipe)
	recipes.Delete("/:id/favorite", auth, c.RecipeHandler.UnfavoriteRecipe)
	recipes.Post("/:id/image", auth, c.RecipeHandler.UploadRecipeImage)

	// Legacy alias kept for clients of the original frontend.
	c.App.Post("/search_recipes", auth, c.RecipeHandler.GenerateRecipes)
}

func (c *Config) Payments() {
	payments := c.App.Group("/api/v1/payments")
	payments.Post("/initiate", c.Middleware.AuthMiddleware(c.JWTService), c.PaymentHandler.InitiatePayment)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	// Gateway webhook, unauthenticated by nature.
	c.App.Post("/payments/callback", c.PaymentHandler.PaymentCallback)
}
