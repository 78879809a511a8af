package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessRegister = "user registered successfully"
	MessageSuccessLogin    = "login success"
	MessageSuccessGetMe    = "success get user profile"

	MessageFailedRegister = "failed to register user"
	MessageFailedLogin    = "failed to login"
	MessageFailedGetMe    = "failed to get user profile"

	ErrEmailAlreadyExists    = errors.New("email already registered")
	ErrUsernameAlreadyExists = errors.New("username already taken")
	ErrUserNotFound          = errors.New("user not found")
	ErrCredentialsInvalid    = errors.New("invalid email or password")
)

type (
	UserRegisterRequest struct {
		Username  string `json:"username" validate:"required,min=3,max=50"`
		Email     string `json:"email" validate:"required,email"`
		Password  string `json:"password" validate:"required,min=8"`
		FirstName string `json:"first_name,omitempty" validate:"omitempty,max=50"`
		LastName  string `json:"last_name,omitempty" validate:"omitempty,max=50"`
		Phone     string `json:"phone,omitempty" validate:"omitempty,max=20"`
	}

	UserRegisterResponse struct {
		ID                   string `json:"id"`
		Username             string `json:"username"`
		Email                string `json:"email"`
		FreeRecipesRemaining int    `json:"free_recipes_remaining"`
	}

	UserLoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	UserLoginResponse struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}

	UserProfileResponse struct {
		ID                   string     `json:"id"`
		Username             string     `json:"username"`
		Email                string     `json:"email"`
		FirstName            string     `json:"first_name,omitempty"`
		LastName             string     `json:"last_name,omitempty"`
		Phone                string     `json:"phone,omitempty"`
		IsPremium            bool       `json:"is_premium"`
		PremiumExpiry        *time.Time `json:"premium_expiry,omitempty"`
		FreeRecipesRemaining int        `json:"free_recipes_remaining"`
	}
)
