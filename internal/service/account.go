package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/kaushik360/counsy/internal"
	"github.com/kaushik360/counsy/internal/storage"
)

// Credential-store error taxonomy. Login deliberately exposes a single
// generic error so callers cannot tell which field was wrong.
var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrDuplicateUsername  = errors.New("username is taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

var validate = validator.New()

type RegisterRequest struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Username  string `json:"username" validate:"required,min=3,max=30"`
	Password  string `json:"password" validate:"required,min=4"`
	AvatarURL string `json:"avatarUrl" validate:"omitempty,url"`
}

func ValidateRegisterRequest(req *RegisterRequest) error {
	return validate.Struct(req)
}

type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

func ValidateLoginRequest(req *LoginRequest) error {
	return validate.Struct(req)
}

type ProfileUpdateRequest struct {
	Name      string `json:"name" validate:"required"`
	AvatarURL string `json:"avatarUrl" validate:"omitempty,url"`
}

func ValidateProfileUpdateRequest(req *ProfileUpdateRequest) error {
	return validate.Struct(req)
}

// Register creates the user, rejects duplicate emails and usernames
// (case-insensitively) and sets the new user as the current session.
func Register(ctx context.Context, users storage.UserRepository, req *RegisterRequest) (*internal.User, error) {
	existing, err := users.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	for _, u := range existing {
		if strings.EqualFold(u.Email, req.Email) {
			return nil, ErrDuplicateEmail
		}
	}
	for _, u := range existing {
		if strings.EqualFold(u.Username, req.Username) {
			return nil, ErrDuplicateUsername
		}
	}

	user := &internal.User{
		ID:         uuid.NewString(),
		Name:       req.Name,
		Email:      req.Email,
		Username:   req.Username,
		Password:   req.Password, // plaintext, matching the local-storage auth simulation
		AvatarURL:  req.AvatarURL,
		JoinedDate: time.Now().Format(time.RFC3339),
	}

	if err := users.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	if err := users.SetSession(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login matches identifier against email or username (case-insensitive)
// and the password by exact equality, then sets the session.
func Login(ctx context.Context, users storage.UserRepository, identifier, password string) (*internal.User, error) {
	existing, err := users.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	for i := range existing {
		u := &existing[i]
		if !strings.EqualFold(u.Email, identifier) && !strings.EqualFold(u.Username, identifier) {
			continue
		}
		if u.Password != password {
			continue
		}
		if err := users.SetSession(ctx, u); err != nil {
			return nil, err
		}
		return u, nil
	}
	return nil, ErrInvalidCredentials
}

// CheckUsernameAvailable is a pure query; it never mutates the store.
func CheckUsernameAvailable(ctx context.Context, users storage.UserRepository, username string) (bool, error) {
	existing, err := users.ListUsers(ctx)
	if err != nil {
		return false, err
	}
	for _, u := range existing {
		if strings.EqualFold(u.Username, username) {
			return false, nil
		}
	}
	return true, nil
}

// UpdateProfile applies the mutable fields (name, avatar) to the session
// user and writes the result back to both the session and the user
// directory. Email and username are immutable after registration.
func UpdateProfile(ctx context.Context, users storage.UserRepository, req *ProfileUpdateRequest) (*internal.User, error) {
	user, err := users.GetSession(ctx)
	if err != nil {
		return nil, err
	}

	user.Name = req.Name
	user.AvatarURL = req.AvatarURL

	if err := users.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	if err := users.SetSession(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Logout clears the session only; the user directory is untouched.
func Logout(ctx context.Context, users storage.UserRepository) error {
	return users.ClearSession(ctx)
}
