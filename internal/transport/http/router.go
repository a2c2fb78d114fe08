package http

import (
	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect-four/internal/transport/http/middleware"
)

type RouterDeps struct {
	Sessions       *SessionHandler
	Bot            *BotHandler
	WebSocket      gin.HandlerFunc
	AllowedOrigins []string
	JWTSecret      string
}

func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(deps.AllowedOrigins))

	router.GET("/healthz", Health)

	api := router.Group("/api")
	{
		api.POST("/sessions", deps.Sessions.CreateSession)
		api.POST("/bot/move", deps.Bot.SuggestMove)
	}

	protected := api.Group("/")
	protected.Use(middleware.SessionTokenMiddleware(deps.JWTSecret))
	{
		protected.GET("/sessions/:id", deps.Sessions.GetSession)
	}

	// auth handled inside the WS handler itself
	if deps.WebSocket != nil {
		router.GET("/ws", deps.WebSocket)
	}

	return router
}
