package api

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the full API surface on r. Auth endpoints are
// open; everything else requires a current session.
func RegisterRoutes(r *gin.Engine, app App) {
	r.Use(RequestIDMiddleware())

	auth := r.Group("/api/auth")
	auth.POST("/register", Register(app))
	auth.POST("/login", Login(app))
	auth.GET("/username-available", UsernameAvailable(app))
	auth.POST("/logout", Logout(app))

	protected := r.Group("/api")
	protected.Use(SessionRequired(app))
	protected.GET("/me", GetProfile(app))
	protected.PUT("/me", UpdateProfile(app))

	protected.POST("/moods", PostMood(app))
	protected.GET("/moods", GetMoods(app))

	protected.POST("/journals", PostJournal(app))
	protected.GET("/journals", GetJournals(app))

	protected.POST("/chat", PostChatMessage(app))
	protected.GET("/chat", GetChatHistory(app))
	protected.DELETE("/chat", ClearChatHistory(app))

	protected.POST("/focus/complete", PostFocusComplete(app))
	protected.GET("/streaks", GetStreaks(app))
}
