package user

import (
	"context"
	"errors"

	"github.com/christinemirimba/VibeCodingHackathon/domain"
	"github.com/christinemirimba/VibeCodingHackathon/entities"
	"github.com/christinemirimba/VibeCodingHackathon/pkg/jwt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.UserRegisterRequest) (*domain.UserRegisterResponse, error)
		Login(ctx context.Context, req domain.UserLoginRequest) (*domain.UserLoginResponse, error)
		Me(ctx context.Context, userID string) (*domain.UserProfileResponse, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		freeQuota      int
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService, freeQuota int) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		freeQuota:      freeQuota,
	}
}

func (s *userService) Register(ctx context.Context, req domain.UserRegisterRequest) (*domain.UserRegisterResponse, error) {
	emailExists, err := s.userRepository.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if emailExists {
		return nil, domain.ErrEmailAlreadyExists
	}

	usernameExists, err := s.userRepository.UsernameExists(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if usernameExists {
		return nil, domain.ErrUsernameAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Username:             req.Username,
		Email:                req.Email,
		PasswordHash:         string(hash),
		FirstName:            req.FirstName,
		LastName:             req.LastName,
		Phone:                req.Phone,
		Role:                 domain.RoleUser,
		FreeRecipesRemaining: s.freeQuota,
	}

	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return &domain.UserRegisterResponse{
		ID:                   user.ID.String(),
		Username:             user.Username,
		Email:                user.Email,
		FreeRecipesRemaining: user.FreeRecipesRemaining,
	}, nil
}

func (s *userService) Login(ctx context.Context, req domain.UserLoginRequest) (*domain.UserLoginResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCredentialsInvalid
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.ErrCredentialsInvalid
	}

	token := s.jwtService.GenerateTokenUser(user.ID.String(), user.Role)
	return &domain.UserLoginResponse{
		Token: token,
		Role:  user.Role,
	}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (*domain.UserProfileResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	return &domain.UserProfileResponse{
		ID:                   user.ID.String(),
		Username:             user.Username,
		Email:                user.Email,
		FirstName:            user.FirstName,
		LastName:             user.LastName,
		Phone:                user.Phone,
		IsPremium:            user.IsPremium,
		PremiumExpiry:        user.PremiumExpiry,
		FreeRecipesRemaining: user.FreeRecipesRemaining,
	}, nil
}
