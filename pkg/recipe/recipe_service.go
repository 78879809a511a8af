package recipe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/christinemirimba/VibeCodingHackathon/domain"
	"github.com/christinemirimba/VibeCodingHackathon/entities"
	"github.com/christinemirimba/VibeCodingHackathon/internal/utils/storage"
	"github.com/christinemirimba/VibeCodingHackathon/pkg/gemini"
	"github.com/christinemirimba/VibeCodingHackathon/pkg/user"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecipeService interface {
		GenerateRecipes(ctx context.Context, req domain.GenerateRecipesRequest, userID string) (*domain.GenerateRecipesResponse, error)
		GetRecipes(ctx context.Context, page, limit int) ([]domain.RecipeSummary, int64, error)
		GetRecipeDetail(ctx context.Context, recipeID string) (*domain.RecipeDetailResponse, error)
		RateRecipe(ctx context.Context, req domain.RateRecipeRequest, recipeID, userID string) error
		FavoriteRecipe(ctx context.Context, recipeID, userID string) error
		UnfavoriteRecipe(ctx context.Context, recipeID, userID string) error
		GetFavoriteRecipes(ctx context.Context, page, limit int, userID string) ([]domain.RecipeSummary, int64, error)
		UploadRecipeImage(ctx context.Context, recipeID, filename, contentType string, file multipart.File) (string, error)
	}

	recipeService struct {
		recipeRepository RecipeRepository
		userRepository   user.UserRepository
		model            gemini.Client
		s3               storage.AwsS3
	}
)

func NewRecipeService(recipeRepository RecipeRepository, userRepository user.UserRepository, model gemini.Client, s3 storage.AwsS3) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		userRepository:   userRepository,
		model:            model,
		s3:               s3,
	}
}

func (s *recipeService) GenerateRecipes(ctx context.Context, req domain.GenerateRecipesRequest, userID string) (*domain.GenerateRecipesResponse, error) {
	if len(req.Ingredients) == 0 {
		return nil, domain.ErrIngredientsRequired
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	caller, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	premiumUser := caller.HasActivePremium(time.Now())
	if !premiumUser && !req.IsPremium && caller.FreeRecipesRemaining <= 0 {
		return nil, domain.ErrFreeLimitReached
	}

	request := &entities.RecipeRequest{
		ID:          uuid.New(),
		UserID:      userUUID,
		Ingredients: strings.Join(req.Ingredients, ", "),
		Status:      entities.RequestStatusProcessing,
	}
	if err := s.recipeRepository.CreateRecipeRequest(ctx, request); err != nil {
		return nil, domain.ErrPersistenceFailed
	}

	prompt := buildPrompt(req.Ingredients, req.IsPremium || premiumUser)

	raw, err := s.model.GenerateContent(ctx, prompt)
	if err != nil {
		log.Errorf("model call failed for request %s: %v", request.ID, err)
		s.markRequestFailed(ctx, request.ID)
		return nil, domain.ErrGenerationFailed
	}

	payloads, err := parseGeneratedRecipes(raw)
	if err != nil {
		log.Errorf("rejecting model reply for request %s: %v", request.ID, err)
		s.markRequestFailed(ctx, request.ID)
		return nil, domain.ErrGenerationFailed
	}

	recipes := make([]*entities.Recipe, 0, len(payloads))
	for _, payload := range payloads {
		recipe, err := newGeneratedRecipe(payload, userUUID, req.IsPremium)
		if err != nil {
			s.markRequestFailed(ctx, request.ID)
			return nil, domain.ErrGenerationFailed
		}
		recipes = append(recipes, recipe)
	}

	decrementQuota := !premiumUser && !req.IsPremium
	if err := s.recipeRepository.SaveGenerationResult(ctx, request.ID, userUUID, recipes, decrementQuota); err != nil {
		log.Errorf("persisting generation result for request %s: %v", request.ID, err)
		s.markRequestFailed(ctx, request.ID)
		return nil, domain.ErrPersistenceFailed
	}

	remaining := caller.FreeRecipesRemaining
	if premiumUser {
		remaining = domain.PremiumQuotaSentinel
	} else if decrementQuota {
		remaining = caller.FreeRecipesRemaining - 1
	}

	result := make([]domain.GeneratedRecipe, 0, len(payloads))
	for i, payload := range payloads {
		result = append(result, domain.GeneratedRecipe{
			ID:           recipes[i].ID.String(),
			Title:        payload.Title,
			Description:  payload.Description,
			Ingredients:  payload.Ingredients,
			Instructions: payload.Instructions,
			Nutrition:    payload.Nutrition,
			IsPremium:    req.IsPremium,
		})
	}

	return &domain.GenerateRecipesResponse{
		Recipes:          result,
		RecipesRemaining: remaining,
	}, nil
}

func newGeneratedRecipe(payload generatedRecipePayload, userID uuid.UUID, premium bool) (*entities.Recipe, error) {
	ingredientsJSON, err := json.Marshal(payload.Ingredients)
	if err != nil {
		return nil, err
	}

	recipe := &entities.Recipe{
		ID:           uuid.New(),
		UserID:       &userID,
		Title:        payload.Title,
		Description:  payload.Description,
		Ingredients:  string(ingredientsJSON),
		Instructions: strings.Join(payload.Instructions, "\n"),
		IsPremium:    premium,
		IsGenerated:  true,
	}

	if payload.Nutrition != nil {
		nutritionJSON, err := json.Marshal(payload.Nutrition)
		if err != nil {
			return nil, err
		}
		recipe.NutritionalInfo = string(nutritionJSON)
	}

	return recipe, nil
}

func (s *recipeService) markRequestFailed(ctx context.Context, requestID uuid.UUID) {
	if err := s.recipeRepository.UpdateRecipeRequestStatus(ctx, requestID, entities.RequestStatusFailed); err != nil {
		log.Errorf("marking request %s failed: %v", requestID, err)
	}
}

func (s *recipeService) GetRecipes(ctx context.Context, page, limit int) ([]domain.RecipeSummary, int64, error) {
	recipes, count, err := s.recipeRepository.GetRecipes(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.RecipeSummary, 0, len(recipes))
	for _, recipe := range recipes {
		result = append(result, s.toSummary(ctx, recipe))
	}
	return result, count, nil
}

func (s *recipeService) toSummary(ctx context.Context, recipe *entities.Recipe) domain.RecipeSummary {
	// Average rating is derived, not stored. Failure here is not critical
	// to the listing.
	avg, err := s.recipeRepository.GetAverageRating(ctx, recipe.ID.String())
	if err != nil {
		avg = 0
	}

	return domain.RecipeSummary{
		ID:            recipe.ID.String(),
		Title:         recipe.Title,
		Description:   recipe.Description,
		Category:      recipe.Category,
		Difficulty:    recipe.Difficulty,
		CookingTime:   recipe.CookingTime,
		ImageURL:      recipe.ImageURL,
		IsPremium:     recipe.IsPremium,
		ViewCount:     recipe.ViewCount,
		AverageRating: avg,
		CreatedAt:     recipe.CreatedAt,
	}
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID string) (*domain.RecipeDetailResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}

	if err := s.recipeRepository.IncrementViewCount(ctx, recipeID); err != nil {
		log.Errorf("incrementing view count for recipe %s: %v", recipeID, err)
	} else {
		recipe.ViewCount++
	}

	var ingredients []string
	if err := json.Unmarshal([]byte(recipe.Ingredients), &ingredients); err != nil {
		// Manually entered recipes may store a plain ingredient string.
		ingredients = []string{recipe.Ingredients}
	}

	var nutrition *domain.NutritionFacts
	if recipe.NutritionalInfo != "" {
		var facts domain.NutritionFacts
		if err := json.Unmarshal([]byte(recipe.NutritionalInfo), &facts); err == nil {
			nutrition = &facts
		}
	}

	return &domain.RecipeDetailResponse{
		RecipeSummary: s.toSummary(ctx, recipe),
		Ingredients:   ingredients,
		Instructions:  recipe.Instructions,
		Nutrition:     nutrition,
	}, nil
}

func (s *recipeService) RateRecipe(ctx context.Context, req domain.RateRecipeRequest, recipeID, userID string) error {
	recipeUUID, userUUID, err := parsePair(recipeID, userID)
	if err != nil {
		return err
	}

	if _, err := s.recipeRepository.GetRecipeByID(ctx, recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}

	rated, err := s.recipeRepository.HasUserRating(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if rated {
		return domain.ErrAlreadyRated
	}

	rating := &entities.RecipeRating{
		ID:       uuid.New(),
		RecipeID: recipeUUID,
		UserID:   userUUID,
		Rating:   req.Rating,
		Comment:  req.Comment,
	}
	if err := s.recipeRepository.CreateRating(ctx, rating); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrAlreadyRated
		}
		return err
	}
	return nil
}

func (s *recipeService) FavoriteRecipe(ctx context.Context, recipeID, userID string) error {
	recipeUUID, userUUID, err := parsePair(recipeID, userID)
	if err != nil {
		return err
	}

	if _, err := s.recipeRepository.GetRecipeByID(ctx, recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}

	favorited, err := s.recipeRepository.HasFavorite(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if favorited {
		return domain.ErrAlreadyFavorited
	}

	favorite := &entities.UserFavorite{
		ID:       uuid.New(),
		UserID:   userUUID,
		RecipeID: recipeUUID,
	}
	if err := s.recipeRepository.CreateFavorite(ctx, favorite); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrAlreadyFavorited
		}
		return err
	}
	return nil
}

func (s *recipeService) UnfavoriteRecipe(ctx context.Context, recipeID, userID string) error {
	deleted, err := s.recipeRepository.DeleteFavorite(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return domain.ErrFavoriteNotFound
	}
	return nil
}

func (s *recipeService) GetFavoriteRecipes(ctx context.Context, page, limit int, userID string) ([]domain.RecipeSummary, int64, error) {
	recipes, count, err := s.recipeRepository.GetFavoriteRecipes(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.RecipeSummary, 0, len(recipes))
	for _, recipe := range recipes {
		result = append(result, s.toSummary(ctx, recipe))
	}
	return result, count, nil
}

func (s *recipeService) UploadRecipeImage(ctx context.Context, recipeID, filename, contentType string, file multipart.File) (string, error) {
	if _, err := s.recipeRepository.GetRecipeByID(ctx, recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrRecipeNotFound
		}
		return "", err
	}

	key := fmt.Sprintf("recipes/%s/%s", recipeID, filename)
	url, err := s.s3.UploadFile(ctx, key, file, contentType)
	if err != nil {
		return "", err
	}

	if err := s.recipeRepository.UpdateRecipeImageURL(ctx, recipeID, url); err != nil {
		return "", err
	}
	return url, nil
}

func parsePair(recipeID, userID string) (uuid.UUID, uuid.UUID, error) {
	recipeUUID, err := uuid.Parse(recipeID)
	if err != nil {
		return uuid.Nil, uuid.Nil, domain.ErrParseUUID
	}
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, uuid.Nil, domain.ErrParseUUID
	}
	return recipeUUID, userUUID, nil
}
