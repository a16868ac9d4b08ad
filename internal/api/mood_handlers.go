package api

import (
	"github.com/gin-gonic/gin"

	"github.com/kaushik360/counsy/internal/service"
)

func PostMood(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.MoodCheckInRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		if err := service.ValidateMoodCheckInRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		entry, streaks, err := service.CheckInMood(c.Request.Context(), app.MoodRepo(), app.StreakRepo(), app.Advisor(), &req)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to save mood")
			return
		}

		HandleSuccess(c, app.Logger(), entry, map[string]any{"streaks": streaks})
	}
}

func GetMoods(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		moods, err := app.MoodRepo().ListMoods(c.Request.Context())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch moods")
			return
		}
		HandleSuccess(c, app.Logger(), moods, nil)
	}
}
