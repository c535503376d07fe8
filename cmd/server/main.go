package main

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"gameshow-backend/internal/config"
	"gameshow-backend/internal/database"
	"gameshow-backend/internal/game"
	"gameshow-backend/internal/handlers"
	"gameshow-backend/internal/middleware"
	"gameshow-backend/internal/services"
	"gameshow-backend/internal/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	db := database.Connect(cfg)
	database.AutoMigrate(db)

	hub := ws.NewHub()

	advanceSec, _ := strconv.Atoi(cfg.AdvanceDelay)
	if advanceSec <= 0 {
		advanceSec = 3
	}
	idleMin, _ := strconv.Atoi(cfg.SessionIdleTTL)
	if idleMin <= 0 {
		idleMin = 10
	}

	registry := game.NewRegistry(time.Duration(idleMin) * time.Minute)
	defer registry.Close()

	gameStore := services.NewGameStore(db)
	coordinator := game.NewCoordinator(registry, gameStore, hub, time.Duration(advanceSec)*time.Second)

	authService := services.NewAuthService(db, cfg.JWTSecret)
	roomService := services.NewRoomService(db)
	questionService := services.NewQuestionService(db)

	authHandler := handlers.NewAuthHandler(authService)
	roomHandler := handlers.NewRoomHandler(roomService, registry)
	questionHandler := handlers.NewQuestionHandler(questionService)
	wsHandler := handlers.NewWSHandler(hub, coordinator, registry, gameStore)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/ws", wsHandler.HandleWebSocket)

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		rooms := api.Group("/game-rooms")
		{
			rooms.POST("/:id/join", roomHandler.Join)
			rooms.GET("/validate/:code", roomHandler.ValidateCode)
		}

		managed := api.Group("/game-rooms")
		managed.Use(middleware.JWTAuth(authService))
		{
			managed.POST("", roomHandler.CreateRoom)
			managed.GET("", roomHandler.ListRooms)
			managed.GET("/:id", roomHandler.GetRoom)
			managed.PUT("/:id", roomHandler.UpdateRoom)
			managed.DELETE("/:id", roomHandler.DeleteRoom)
			managed.POST("/:id/start", roomHandler.StartGame)
			managed.POST("/:id/end", roomHandler.EndGame)
			managed.POST("/:id/questions", questionHandler.CreateQuestion)
			managed.GET("/:id/questions", questionHandler.ListQuestions)
		}

		questions := api.Group("/questions")
		questions.Use(middleware.JWTAuth(authService))
		{
			questions.PUT("/:id", questionHandler.UpdateQuestion)
			questions.DELETE("/:id", questionHandler.DeleteQuestion)
		}
	}

	log.Printf("server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
