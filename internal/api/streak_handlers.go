package api

import (
	"github.com/gin-gonic/gin"

	"github.com/kaushik360/counsy/internal/service"
)

func GetStreaks(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := app.StreakRepo().GetStreaks(c.Request.Context())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch streaks")
			return
		}
		HandleSuccess(c, app.Logger(), data, nil)
	}
}

// PostFocusComplete marks one finished focus interval. The timer countdown
// is client state; only completion counts toward the focus streak.
func PostFocusComplete(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := service.CompleteFocusSession(c.Request.Context(), app.StreakRepo())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to record focus session")
			return
		}
		HandleSuccess(c, app.Logger(), data, nil)
	}
}
