package api

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/kaushik360/counsy/internal"
	"github.com/kaushik360/counsy/internal/service"
)

// public returns a copy with the password blanked for API responses.
func public(u *internal.User) internal.User {
	out := *u
	out.Password = ""
	return out
}

func Register(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		if err := service.ValidateRegisterRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		user, err := service.Register(c.Request.Context(), app.UserRepo(), &req)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrDuplicateEmail), errors.Is(err, service.ErrDuplicateUsername):
				HandleError(c, app.Logger(), err, 409, "Registration failed")
			default:
				HandleError(c, app.Logger(), err, 500, "Registration failed")
			}
			return
		}

		HandleSuccess(c, app.Logger(), public(user), nil)
	}
}

func Login(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		if err := service.ValidateLoginRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		user, err := service.Login(c.Request.Context(), app.UserRepo(), req.Identifier, req.Password)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				HandleError(c, app.Logger(), err, 401, "Invalid credentials")
			} else {
				HandleError(c, app.Logger(), err, 500, "Login failed")
			}
			return
		}

		HandleSuccess(c, app.Logger(), public(user), nil)
	}
}

// UsernameAvailable is a pure query, safe to call on every keystroke;
// debouncing belongs to the client.
func UsernameAvailable(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.Query("username")
		if username == "" {
			HandleError(c, app.Logger(), errors.New("username query parameter required"), 400, "Invalid request")
			return
		}

		available, err := service.CheckUsernameAvailable(c.Request.Context(), app.UserRepo(), username)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Availability check failed")
			return
		}

		HandleSuccess(c, app.Logger(), nil, map[string]any{"username": username, "available": available})
	}
}

func Logout(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := service.Logout(c.Request.Context(), app.UserRepo()); err != nil {
			HandleError(c, app.Logger(), err, 500, "Logout failed")
			return
		}
		HandleSuccess(c, app.Logger(), nil, nil)
	}
}

func GetProfile(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		HandleSuccess(c, app.Logger(), public(currentUser(c)), nil)
	}
}

func UpdateProfile(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.ProfileUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		if err := service.ValidateProfileUpdateRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		user, err := service.UpdateProfile(c.Request.Context(), app.UserRepo(), &req)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Profile update failed")
			return
		}

		HandleSuccess(c, app.Logger(), public(user), nil)
	}
}
