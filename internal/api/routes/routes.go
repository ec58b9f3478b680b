package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/hirehub/voice-agents/internal/api/handlers"
)

type Deps struct {
	Session *handlers.SessionHandler
	WS      *handlers.WSHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	r.POST("/sessions", d.Session.Create)
	r.GET("/sessions/:session_id/progress", d.Session.Progress)
	r.GET("/sessions/:session_id/transcript", d.Session.Transcript)
	r.POST("/sessions/:session_id/end", d.Session.End)

	// WebSocket event feed
	r.GET("/ws/sessions/:session_id/events", d.WS.SessionEvents)
}
