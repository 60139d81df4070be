package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ckaracaev/slack-sales-task/internal/handlers"
)

func SetupRoutes(r *gin.Engine, slackHandler *handlers.SlackHandler, slackVerifier gin.HandlerFunc) *gin.Engine {
	// ---- health
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	// ---- slack deliveries (signed)
	sl := r.Group("/slack", slackVerifier)
	{
		sl.POST("/commands", slackHandler.Command)
		sl.POST("/events", slackHandler.Interaction)
	}

	return r
}
