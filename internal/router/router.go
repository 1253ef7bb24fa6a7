package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"warungchat/internal/chat"
	"warungchat/internal/middleware"
	"warungchat/internal/session"
)

// NewRouter wires the relay routes onto a fresh gin engine.
func NewRouter(handler *chat.Handler, service *chat.Service, origins []string) *gin.Engine {
	r := gin.New()

	r.Use(
		middleware.RequestLogger(),
		middleware.Recovery(),
		cors.New(corsConfig(origins)),
	)

	r.GET("/status", handler.Status)
	r.POST("/chat", handler.Chat)
	r.GET("/conversation/:sessionId", handler.GetConversation)
	r.DELETE("/conversation/:sessionId", handler.DeleteConversation)
	r.GET("/conversation/:sessionId/menus", handler.Menus)
	r.GET("/conversation/:sessionId/menus/:index", handler.MenuDetail)

	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": session.Timestamp(time.Now()),
			"uptime":    service.Uptime().Seconds(),
		})
	})

	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", middleware.RequestIDHeader},
		MaxAge:       12 * time.Hour,
	}

	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}
