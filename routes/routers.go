package routes

import (
	"aiva/controllers"
	middlewares "aiva/middleware"
	"aiva/response"
	"aiva/services"
	"aiva/services/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// SetupRoutes wires every controller onto the engine
func SetupRoutes(router *gin.Engine, db *gorm.DB, redisCli *redis.Client) {
	log := logger.NewDefaultLogger(logger.InfoLevel)

	sessions := services.NewSessionService(redisCli)
	auth := services.NewAuthService(services.AuthServiceOptions{DB: db, Logger: log})
	chats := services.NewChatService(db)
	prefs := services.NewPreferenceService(db)
	speech := services.NewHTTPSpeechClient()
	assistant := services.NewAssistantService(services.AssistantServiceOptions{
		DB:          db,
		Chats:       chats,
		Prefs:       prefs,
		Completion:  services.NewCompletionClient(),
		Synthesizer: speech,
		Logger:      log,
	})

	authController := controllers.NewAuthController(auth, sessions)
	chatController := controllers.NewChatController(chats, assistant, speech)
	prefController := controllers.NewPreferenceController(prefs)

	requireSession := middlewares.AuthMiddleware(sessions)

	router.POST("/register", authController.Register)
	router.POST("/login", authController.Login)
	router.GET("/logout", requireSession, authController.Logout)
	router.POST("/auth/google", authController.AuthGoogle)

	api := router.Group("/api", requireSession)
	api.GET("/chats", chatController.GetChats)
	api.POST("/chat", chatController.SendMessage)
	api.GET("/chat/:id", chatController.GetChat)
	api.DELETE("/chat/:id", chatController.DeleteChat)
	api.POST("/chat/:id/favorite", chatController.ToggleFavorite)
	api.GET("/preferences", prefController.GetPreferences)
	api.PUT("/preferences", prefController.UpdatePreferences)
	api.POST("/transcribe", chatController.Transcribe)

	router.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
}
