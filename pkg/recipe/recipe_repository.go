package recipe

import (
	"context"
	"fmt"

	"github.com/christinemirimba/VibeCodingHackathon/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe) error
		GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error)
		GetRecipes(ctx context.Context, page, limit int) ([]*entities.Recipe, int64, error)
		IncrementViewCount(ctx context.Context, id string) error
		UpdateRecipeImageURL(ctx context.Context, id string, imageURL string) error

		GetAverageRating(ctx context.Context, recipeID string) (float64, error)
		HasUserRating(ctx context.Context, userID, recipeID string) (bool, error)
		CreateRating(ctx context.Context, rating *entities.RecipeRating) error

		HasFavorite(ctx context.Context, userID, recipeID string) (bool, error)
		CreateFavorite(ctx context.Context, favorite *entities.UserFavorite) error
		DeleteFavorite(ctx context.Context, userID, recipeID string) (int64, error)
		GetFavoriteRecipes(ctx context.Context, userID string, page, limit int) ([]*entities.Recipe, int64, error)

		CreateRecipeRequest(ctx context.Context, request *entities.RecipeRequest) error
		UpdateRecipeRequestStatus(ctx context.Context, requestID uuid.UUID, status string) error
		SaveGenerationResult(ctx context.Context, requestID uuid.UUID, userID uuid.UUID, recipes []*entities.Recipe, decrementQuota bool) error
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecipes(ctx context.Context, page, limit int) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).Model(&entities.Recipe{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Offset(offset).
		Limit(limit).
		Order("created_at desc").
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func (r *recipeRepository) IncrementViewCount(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

func (r *recipeRepository) UpdateRecipeImageURL(ctx context.Context, id string, imageURL string) error {
	return r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Where("id = ?", id).
		Update("image_url", imageURL).Error
}

func (r *recipeRepository) GetAverageRating(ctx context.Context, recipeID string) (float64, error) {
	var avg float64
	if err := r.db.WithContext(ctx).
		Model(&entities.RecipeRating{}).
		Where("recipe_id = ?", recipeID).
		Select("COALESCE(AVG(rating), 0)").
		Row().Scan(&avg); err != nil {
		return 0, err
	}
	return avg, nil
}

func (r *recipeRepository) HasUserRating(ctx context.Context, userID, recipeID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.RecipeRating{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *recipeRepository) CreateRating(ctx context.Context, rating *entities.RecipeRating) error {
	return r.db.WithContext(ctx).Create(rating).Error
}

func (r *recipeRepository) HasFavorite(ctx context.Context, userID, recipeID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.UserFavorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *recipeRepository) CreateFavorite(ctx context.Context, favorite *entities.UserFavorite) error {
	return r.db.WithContext(ctx).Create(favorite).Error
}

func (r *recipeRepository) DeleteFavorite(ctx context.Context, userID, recipeID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&entities.UserFavorite{})
	return result.RowsAffected, result.Error
}

func (r *recipeRepository) GetFavoriteRecipes(ctx context.Context, userID string, page, limit int) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Joins("JOIN user_favorites ON recipes.id = user_favorites.recipe_id").
		Where("user_favorites.user_id = ?", userID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Joins("JOIN user_favorites ON recipes.id = user_favorites.recipe_id").
		Where("user_favorites.user_id = ?", userID).
		Offset(offset).
		Limit(limit).
		Order("user_favorites.created_at desc").
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func (r *recipeRepository) CreateRecipeRequest(ctx context.Context, request *entities.RecipeRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *recipeRepository) UpdateRecipeRequestStatus(ctx context.Context, requestID uuid.UUID, status string) error {
	return r.db.WithContext(ctx).
		Model(&entities.RecipeRequest{}).
		Where("id = ?", requestID).
		Update("status", status).Error
}

// SaveGenerationResult persists everything a successful generation produced
// in one transaction: the recipe rows, the request's completed status with a
// link to the first recipe, and the caller's quota decrement. Any failure
// rolls back the whole set.
func (r *recipeRepository) SaveGenerationResult(ctx context.Context, requestID uuid.UUID, userID uuid.UUID, recipes []*entities.Recipe, decrementQuota bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, recipe := range recipes {
			if err := tx.Create(recipe).Error; err != nil {
				return err
			}
		}

		updates := map[string]any{
			"status":              entities.RequestStatusCompleted,
			"generated_recipe_id": recipes[0].ID,
		}
		if err := tx.Model(&entities.RecipeRequest{}).
			Where("id = ?", requestID).
			Updates(updates).Error; err != nil {
			return err
		}

		if decrementQuota {
			result := tx.Model(&entities.User{}).
				Where("id = ? AND free_recipes_remaining > 0", userID).
				UpdateColumn("free_recipes_remaining", gorm.Expr("free_recipes_remaining - 1"))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("free quota already exhausted for user %s", userID)
			}
		}

		return nil
	})
}
