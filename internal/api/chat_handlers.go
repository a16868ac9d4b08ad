package api

import (
	"github.com/gin-gonic/gin"

	"github.com/kaushik360/counsy/internal/service"
)

func PostChatMessage(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.ChatSendRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}

		if err := service.ValidateChatSendRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		userMsg, modelMsg, err := service.SendChatMessage(c.Request.Context(), app.ChatRepo(), app.Advisor(), currentUser(c), &req)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to send message")
			return
		}

		HandleSuccess(c, app.Logger(), modelMsg, map[string]any{"userMessage": userMsg})
	}
}

func GetChatHistory(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		msgs, err := app.ChatRepo().ListChatMessages(c.Request.Context())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch chat history")
			return
		}
		HandleSuccess(c, app.Logger(), msgs, nil)
	}
}

func ClearChatHistory(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := app.ChatRepo().ClearChat(c.Request.Context()); err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to clear chat history")
			return
		}
		HandleSuccess(c, app.Logger(), nil, nil)
	}
}
