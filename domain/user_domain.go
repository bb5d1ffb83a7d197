package domain

import (
	"fmt"
)

var (
	MessageSuccessRegister = "user registered successfully"
	MessageSuccessLogin    = "login success"
	MessageSuccessGetUser  = "success get user"
	MessageSuccessGetUsers = "success get users"

	MessageFailedRegister = "failed to register user"
	MessageFailedLogin    = "failed to login"
	MessageFailedGetUser  = "failed to get user"
	MessageFailedGetUsers = "failed to get users"

	ErrUserNotFound         = fmt.Errorf("%w: user not found", ErrNotFound)
	ErrEmailAlreadyExists   = fmt.Errorf("%w: email already registered", ErrValidation)
	ErrUsernameAlreadyTaken = fmt.Errorf("%w: username already taken", ErrValidation)
	ErrInvalidCredentials   = fmt.Errorf("%w: invalid email or password", ErrValidation)
	// ErrUserConflict is returned when a unique index rejects the insert after
	// the email and username pre-checks passed.
	ErrUserConflict = fmt.Errorf("%w: email or username already registered", ErrConflict)
)

type (
	RegisterRequest struct {
		Email     string `json:"email" validate:"required,email,max=254"`
		Username  string `json:"username" validate:"required,max=150,alphanum"`
		FirstName string `json:"first_name" validate:"required,max=150"`
		LastName  string `json:"last_name" validate:"required,max=150"`
		Password  string `json:"password" validate:"required,min=8,max=150"`
	}

	RegisterResponse struct {
		ID        string `json:"id"`
		Email     string `json:"email"`
		Username  string `json:"username"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		AuthToken string `json:"auth_token"`
	}

	// UserResponse is the user view; IsSubscribed is relative to the viewer.
	UserResponse struct {
		ID           string `json:"id"`
		Email        string `json:"email"`
		Username     string `json:"username"`
		FirstName    string `json:"first_name"`
		LastName     string `json:"last_name"`
		IsSubscribed bool   `json:"is_subscribed"`
	}
)
