package api

import (
	"github.com/gin-gonic/gin"

	"github.com/kaushik360/counsy/internal/service"
)

func PostJournal(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.JournalSaveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		if err := service.ValidateJournalSaveRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		entry, streaks, err := service.SaveJournal(c.Request.Context(), app.JournalRepo(), app.StreakRepo(), app.Advisor(), &req)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to save journal entry")
			return
		}

		HandleSuccess(c, app.Logger(), entry, map[string]any{"streaks": streaks})
	}
}

func GetJournals(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		journals, err := app.JournalRepo().ListJournals(c.Request.Context())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch journal entries")
			return
		}
		HandleSuccess(c, app.Logger(), journals, nil)
	}
}
