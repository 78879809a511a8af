package recipe

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"
	"time"

	"github.com/christinemirimba/VibeCodingHackathon/domain"
	"github.com/christinemirimba/VibeCodingHackathon/entities"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type MockRecipeRepository struct {
	mock.Mock
}

func (m *MockRecipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	args := m.Called(ctx, recipe)
	return args.Error(0)
}

func (m *MockRecipeRepository) GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) GetRecipes(ctx context.Context, page, limit int) ([]*entities.Recipe, int64, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Recipe), args.Get(1).(int64), args.Error(2)
}

func (m *MockRecipeRepository) IncrementViewCount(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRecipeRepository) UpdateRecipeImageURL(ctx context.Context, id string, imageURL string) error {
	args := m.Called(ctx, id, imageURL)
	return args.Error(0)
}

func (m *MockRecipeRepository) GetAverageRating(ctx context.Context, recipeID string) (float64, error) {
	args := m.Called(ctx, recipeID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockRecipeRepository) HasUserRating(ctx context.Context, userID, recipeID string) (bool, error) {
	args := m.Called(ctx, userID, recipeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRecipeRepository) CreateRating(ctx context.Context, rating *entities.RecipeRating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *MockRecipeRepository) HasFavorite(ctx context.Context, userID, recipeID string) (bool, error) {
	args := m.Called(ctx, userID, recipeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRecipeRepository) CreateFavorite(ctx context.Context, favorite *entities.UserFavorite) error {
	args := m.Called(ctx, favorite)
	return args.Error(0)
}

func (m *MockRecipeRepository) DeleteFavorite(ctx context.Context, userID, recipeID string) (int64, error) {
	args := m.Called(ctx, userID, recipeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRecipeRepository) GetFavoriteRecipes(ctx context.Context, userID string, page, limit int) ([]*entities.Recipe, int64, error) {
	args := m.Called(ctx, userID, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Recipe), args.Get(1).(int64), args.Error(2)
}

func (m *MockRecipeRepository) CreateRecipeRequest(ctx context.Context, request *entities.RecipeRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockRecipeRepository) UpdateRecipeRequestStatus(ctx context.Context, requestID uuid.UUID, status string) error {
	args := m.Called(ctx, requestID, status)
	return args.Error(0)
}

func (m *MockRecipeRepository) SaveGenerationResult(ctx context.Context, requestID uuid.UUID, userID uuid.UUID, recipes []*entities.Recipe, decrementQuota bool) error {
	args := m.Called(ctx, requestID, userID, recipes, decrementQuota)
	return args.Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

type MockModelClient struct {
	mock.Mock
}

func (m *MockModelClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) UploadFile(ctx context.Context, key string, file multipart.File, contentType string) (string, error) {
	args := m.Called(ctx, key, file, contentType)
	return args.String(0), args.Error(1)
}

func newTestService() (*MockRecipeRepository, *MockUserRepository, *MockModelClient, RecipeService) {
	recipeRepo := new(MockRecipeRepository)
	userRepo := new(MockUserRepository)
	model := new(MockModelClient)
	service := NewRecipeService(recipeRepo, userRepo, model, new(MockStorage))
	return recipeRepo, userRepo, model, service
}

func timeIn(days int) time.Time {
	return time.Now().AddDate(0, 0, days)
}

func freeUser(remaining int) *entities.User {
	return &entities.User{
		ID:                   uuid.New(),
		Username:             "jane",
		Email:                "jane@example.com",
		FreeRecipesRemaining: remaining,
	}
}

func TestGenerateRecipes_EmptyIngredients(t *testing.T) {
	recipeRepo, _, model, service := newTestService()

	res, err := service.GenerateRecipes(context.Background(), domain.GenerateRecipesRequest{Ingredients: nil}, uuid.NewString())

	assert.ErrorIs(t, err, domain.ErrIngredientsRequired)
	assert.Nil(t, res)
	model.AssertNotCalled(t, "GenerateContent", mock.Anything, mock.Anything)
	recipeRepo.AssertNotCalled(t, "CreateRecipeRequest", mock.Anything, mock.Anything)
}

func TestGenerateRecipes_QuotaExhausted(t *testing.T) {
	recipeRepo, userRepo, model, service := newTestService()

	caller := freeUser(0)
	userRepo.On("GetUserByID", mock.Anything, caller.ID.String()).Return(caller, nil).Once()

	res, err := service.GenerateRecipes(context.Background(), domain.GenerateRecipesRequest{
		Ingredients: []string{"egg", "tomato"},
	}, caller.ID.String())

	assert.ErrorIs(t, err, domain.ErrFreeLimitReached)
	assert.Nil(t, res)
	model.AssertNotCalled(t, "GenerateContent", mock.Anything, mock.Anything)
	recipeRepo.AssertNotCalled(t, "SaveGenerationResult", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerateRecipes_LastFreeGeneration(t *testing.T) {
	recipeRepo, userRepo, model, service := newTestService()

	caller := freeUser(1)
	userRepo.On("GetUserByID", mock.Anything, caller.ID.String()).Return(caller, nil).Once()
	recipeRepo.On("CreateRecipeRequest", mock.Anything, mock.Anything).Return(nil).Once()
	model.On("GenerateContent", mock.Anything, mock.Anything).Return(validReply, nil).Once()
	recipeRepo.On("SaveGenerationResult", mock.Anything, mock.Anything, caller.ID, mock.Anything, true).Return(nil).Once()

	res, err := service.GenerateRecipes(context.Background(), domain.GenerateRecipesRequest{
		Ingredients: []string{"egg", "tomato"},
	}, caller.ID.String())

	require.NoError(t, err)
	assert.Len(t, res.Recipes, 3)
	assert.Equal(t, 0, res.RecipesRemaining)
	recipeRepo.AssertExpectations(t)
}

func TestGenerateRecipes_FreshUserScenario(t *testing.T) {
	recipeRepo, userRepo, model, service := newTestService()

	caller := freeUser(3)
	userRepo.On("GetUserByID", mock.Anything, caller.ID.String()).Return(caller, nil).Once()
	recipeRepo.On("CreateRecipeRequest", mock.Anything, mock.MatchedBy(func(req *entities.RecipeRequest) bool {
		return req.Ingredients == "egg, tomato" && req.Status == entities.RequestStatusProcessing
	})).Return(nil).Once()
	model.On("GenerateContent", mock.Anything, mock.Anything).Return(validReply, nil).Once()

	var persisted []*entities.Recipe
	recipeRepo.On("SaveGenerationResult", mock.Anything, mock.Anything, caller.ID, mock.MatchedBy(func(recipes []*entities.Recipe) bool {
		persisted = recipes
		return len(recipes) == 3
	}), true).Return(nil).Once()

	res, err := service.GenerateRecipes(context.Background(), domain.GenerateRecipesRequest{
		Ingredients: []string{"egg", "tomato"},
	}, caller.ID.String())

	require.NoError(t, err)
	assert.Len(t, res.Recipes, 3)
	assert.Equal(t, 2, res.RecipesRemaining)
	require.Len(t, persisted, 3)
	assert.Equal(t, "Tomato Omelette", persisted[0].Title)
	assert.True(t, persisted[0].IsGenerated)
	recipeRepo.AssertExpectations(t)
	model.AssertExpectations(t)
}

func TestGenerateRecipes_PremiumUserUnlimited(t *testing.T) {
	recipeRepo, userRepo, model, service := newTestService()

	caller := freeUser(0)
	caller.IsPremium = true
	expiry := timeIn(30)
	caller.PremiumExpiry = &expiry

	userRepo.On("GetUserByID", mock.Anything, caller.ID.String()).Return(caller, nil).Once()
	recipeRepo.On("CreateRecipeRequest", mock.Anything, mock.Anything).Return(nil).Once()
	model.On("GenerateContent", mock.Anything, mock.Anything).Return(validReply, nil).Once()
	recipeRepo.On("SaveGenerationResult", mock.Anything, mock.Anything, caller.ID, mock.Anything, false).Return(nil).Once()

	res, err := service.GenerateRecipes(context.Background(), domain.GenerateRecipesRequest{
		Ingredients: []string{"egg"},
	}, caller.ID.String())

	require.NoError(t, err)
	assert.Equal(t, domain.PremiumQuotaSentinel, res.RecipesRemaining)
	recipeRepo.AssertExpectations(t)
}

func TestGenerateRecipes_ExpiredPremiumFallsBackToQuota(t *testing.T) {
	_, userRepo, model, service := newTestService()

	caller := freeUser(0)
	caller.IsPremium = true
	expiry := timeIn(-1)
	caller.PremiumExpiry = &expiry

	userRepo.On("GetUserByID", mock.Anything, caller.ID.String()).Return(caller, nil).Once()

	_, err := service.GenerateRecipes(context.Background(), domain.GenerateRecipesRequest{
		Ingredients: []string{"egg"},
	}, caller.ID.String())

	assert.ErrorIs(t, err, domain.ErrFreeLimitReached)
	model.AssertNotCalled(t, "GenerateContent", mock.Anything, mock.Anything)
}

func TestGenerateRecipes_ModelFailure(t *testing.T) {
	recipeRepo, userRepo, model, service := newTestService()

	caller := freeUser(3)
	userRepo.On("GetUserByID", mock.Anything, caller.ID.String()).Return(caller, nil).Once()
	recipeRepo.On("CreateRecipeRequest", mock.Anything, mock.Anything).Return(nil).Once()
	model.On("GenerateContent", mock.Anything, mock.Anything).Return("", domain.ErrModelUnavailable).Once()
	recipeRepo.On("UpdateRecipeRequestStatus", mock.Anything, mock.Anything, entities.RequestStatusFailed).Return(nil).Once()

	res, err := service.GenerateRecipes(context.Background(), domain.GenerateRecipesRequest{
		Ingredients: []string{"egg"},
	}, caller.ID.String())

	assert.ErrorIs(t, err, domain.ErrGenerationFailed)
	assert.Nil(t, res)
	recipeRepo.AssertNotCalled(t, "SaveGenerationResult", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	recipeRepo.AssertExpectations(t)
}

func TestGenerateRecipes_MalformedReplyPersistsNothing(t *testing.T) {
	recipeRepo, userRepo, model, service := newTestService()

	caller := freeUser(3)
	userRepo.On("GetUserByID", mock.Anything, caller.ID.String()).Return(caller, nil).Once()
	recipeRepo.On("CreateRecipeRequest", mock.Anything, mock.Anything).Return(nil).Once()
	model.On("GenerateContent", mock.Anything, mock.Anything).Return("Here you go: omelette, shakshuka!", nil).Once()
	recipeRepo.On("UpdateRecipeRequestStatus", mock.Anything, mock.Anything, entities.RequestStatusFailed).Return(nil).Once()

	res, err := service.GenerateRecipes(context.Background(), domain.GenerateRecipesRequest{
		Ingredients: []string{"egg"},
	}, caller.ID.String())

	assert.ErrorIs(t, err, domain.ErrGenerationFailed)
	assert.Nil(t, res)
	recipeRepo.AssertNotCalled(t, "SaveGenerationResult", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	recipeRepo.AssertExpectations(t)
}

func TestGenerateRecipes_PersistenceFailureRollsUp(t *testing.T) {
	recipeRepo, userRepo, model, service := newTestService()

	caller := freeUser(3)
	userRepo.On("GetUserByID", mock.Anything, caller.ID.String()).Return(caller, nil).Once()
	recipeRepo.On("CreateRecipeRequest", mock.Anything, mock.Anything).Return(nil).Once()
	model.On("GenerateContent", mock.Anything, mock.Anything).Return(validReply, nil).Once()
	recipeRepo.On("SaveGenerationResult", mock.Anything, mock.Anything, caller.ID, mock.Anything, true).Return(errors.New("db down")).Once()
	recipeRepo.On("UpdateRecipeRequestStatus", mock.Anything, mock.Anything, entities.RequestStatusFailed).Return(nil).Once()

	res, err := service.GenerateRecipes(context.Background(), domain.GenerateRecipesRequest{
		Ingredients: []string{"egg"},
	}, caller.ID.String())

	assert.ErrorIs(t, err, domain.ErrPersistenceFailed)
	assert.Nil(t, res)
	recipeRepo.AssertExpectations(t)
}

func TestRateRecipe_DuplicateRejected(t *testing.T) {
	recipeRepo, _, _, service := newTestService()

	recipeID := uuid.New()
	userID := uuid.New()
	recipeRepo.On("GetRecipeByID", mock.Anything, recipeID.String()).Return(&entities.Recipe{ID: recipeID}, nil).Once()
	recipeRepo.On("HasUserRating", mock.Anything, userID.String(), recipeID.String()).Return(true, nil).Once()

	err := service.RateRecipe(context.Background(), domain.RateRecipeRequest{Rating: 4}, recipeID.String(), userID.String())

	assert.ErrorIs(t, err, domain.ErrAlreadyRated)
	recipeRepo.AssertNotCalled(t, "CreateRating", mock.Anything, mock.Anything)
}

func TestRateRecipe_DuplicateKeyRace(t *testing.T) {
	recipeRepo, _, _, service := newTestService()

	recipeID := uuid.New()
	userID := uuid.New()
	recipeRepo.On("GetRecipeByID", mock.Anything, recipeID.String()).Return(&entities.Recipe{ID: recipeID}, nil).Once()
	recipeRepo.On("HasUserRating", mock.Anything, userID.String(), recipeID.String()).Return(false, nil).Once()
	recipeRepo.On("CreateRating", mock.Anything, mock.Anything).Return(gorm.ErrDuplicatedKey).Once()

	err := service.RateRecipe(context.Background(), domain.RateRecipeRequest{Rating: 4}, recipeID.String(), userID.String())

	assert.ErrorIs(t, err, domain.ErrAlreadyRated)
}

func TestFavoriteRecipe_DuplicateRejected(t *testing.T) {
	recipeRepo, _, _, service := newTestService()

	recipeID := uuid.New()
	userID := uuid.New()
	recipeRepo.On("GetRecipeByID", mock.Anything, recipeID.String()).Return(&entities.Recipe{ID: recipeID}, nil).Once()
	recipeRepo.On("HasFavorite", mock.Anything, userID.String(), recipeID.String()).Return(true, nil).Once()

	err := service.FavoriteRecipe(context.Background(), recipeID.String(), userID.String())

	assert.ErrorIs(t, err, domain.ErrAlreadyFavorited)
	recipeRepo.AssertNotCalled(t, "CreateFavorite", mock.Anything, mock.Anything)
}

func TestUnfavoriteRecipe_NotFavorited(t *testing.T) {
	recipeRepo, _, _, service := newTestService()

	recipeRepo.On("DeleteFavorite", mock.Anything, "u", "r").Return(int64(0), nil).Once()

	err := service.UnfavoriteRecipe(context.Background(), "r", "u")

	assert.ErrorIs(t, err, domain.ErrFavoriteNotFound)
}
