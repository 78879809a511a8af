package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGenerateRecipes = "recipes generated successfully"
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessRateRecipe      = "recipe rated successfully"
	MessageSuccessFavoriteRecipe  = "recipe added to favorites"
	MessageSuccessUnfavorite      = "recipe removed from favorites"
	MessageSuccessGetFavorites    = "success get favorite recipes"
	MessageSuccessUploadImage     = "recipe image uploaded successfully"

	MessageFailedGenerateRecipes = "failed to generate recipes"
	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedRateRecipe      = "failed to rate recipe"
	MessageFailedFavoriteRecipe  = "failed to add recipe to favorites"
	MessageFailedUnfavorite      = "failed to remove recipe from favorites"
	MessageFailedGetFavorites    = "failed to get favorite recipes"
	MessageFailedUploadImage     = "failed to upload recipe image"

	ErrIngredientsRequired = errors.New("ingredients are required")
	ErrFreeLimitReached    = errors.New("free tier limit reached, upgrade to premium to continue")
	ErrGenerationFailed    = errors.New("recipe generation failed")
	ErrPersistenceFailed   = errors.New("failed to save generated recipes")
	ErrRecipeNotFound      = errors.New("recipe not found")
	ErrAlreadyRated        = errors.New("recipe already rated by this user")
	ErrAlreadyFavorited    = errors.New("recipe already in favorites")
	ErrFavoriteNotFound    = errors.New("recipe is not in favorites")

	ErrModelRateLimited        = errors.New("model API rate limit exceeded")
	ErrModelInvalidCredentials = errors.New("model API credentials rejected")
	ErrModelUnavailable        = errors.New("model API request failed")
)

// PremiumQuotaSentinel is returned as the remaining-quota count for callers
// with unlimited generation.
const PremiumQuotaSentinel = -1

type (
	GenerateRecipesRequest struct {
		Ingredients []string `json:"ingredients" validate:"required,min=1,dive,required"`
		IsPremium   bool     `json:"is_premium"`
	}

	GeneratedRecipe struct {
		ID           string          `json:"id"`
		Title        string          `json:"title"`
		Description  string          `json:"description"`
		Ingredients  []string        `json:"ingredients"`
		Instructions []string        `json:"instructions"`
		Nutrition    *NutritionFacts `json:"nutrition,omitempty"`
		IsPremium    bool            `json:"is_premium"`
	}

	NutritionFacts struct {
		Calories      int `json:"calories"`
		Protein       int `json:"protein"`
		Carbohydrates int `json:"carbohydrates"`
		Fat           int `json:"fat"`
	}

	GenerateRecipesResponse struct {
		Recipes          []GeneratedRecipe `json:"recipes"`
		RecipesRemaining int               `json:"recipes_remaining"`
	}

	RecipeSummary struct {
		ID            string    `json:"id"`
		Title         string    `json:"title"`
		Description   string    `json:"description"`
		Category      string    `json:"category,omitempty"`
		Difficulty    string    `json:"difficulty"`
		CookingTime   int       `json:"cooking_time"`
		ImageURL      string    `json:"image_url,omitempty"`
		IsPremium     bool      `json:"is_premium"`
		ViewCount     int       `json:"view_count"`
		AverageRating float64   `json:"average_rating"`
		CreatedAt     time.Time `json:"created_at"`
	}

	RecipeDetailResponse struct {
		RecipeSummary
		Ingredients  []string        `json:"ingredients"`
		Instructions string          `json:"instructions"`
		Nutrition    *NutritionFacts `json:"nutrition,omitempty"`
	}

	RateRecipeRequest struct {
		Rating  int    `json:"rating" validate:"required,min=1,max=5"`
		Comment string `json:"comment,omitempty"`
	}
)
