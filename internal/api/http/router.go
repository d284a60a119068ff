package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/dmarkhas/planning-poker/internal/service"
)

type RouterConfig struct {
	AllowedOrigins []string
	SessionSecret  string
	SessionName    string
}

func SetupRouter(cfg RouterConfig, roomController *RoomController, userController *UserController, users service.UserInteractor) *gin.Engine {
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.AllowedOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{
		"Authorization",
		"Content-Type",
		"Origin",
		"Accept",
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	corsConfig.ExposeHeaders = []string{"Set-Cookie"}
	router.Use(cors.New(corsConfig))

	sessionName := cfg.SessionName
	if sessionName == "" {
		sessionName = "poker_session"
	}
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	router.Use(sessions.Sessions(sessionName, store))

	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	api.POST("/auth/guest", userController.CreateGuest)
	api.GET("/users/:userID", userController.GetUser)

	rooms := api.Group("/rooms")
	rooms.Use(RequireUser(users))
	rooms.POST("", roomController.CreateRoom)
	rooms.GET("", roomController.ListRooms)
	rooms.POST("/join", roomController.JoinRoom)
	rooms.GET("/:roomID", roomController.GetRoom)
	rooms.GET("/:roomID/votes", roomController.OwnVote)
	rooms.POST("/:roomID/votes", roomController.CastVote)
	rooms.POST("/:roomID/task", roomController.AssignTask)
	rooms.POST("/:roomID/reveal", roomController.Reveal)
	rooms.POST("/:roomID/reset", roomController.Reset)

	return router
}
