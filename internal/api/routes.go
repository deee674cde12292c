package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"trivia_web/internal/api/handlers"
	"trivia_web/internal/middleware"
	"trivia_web/internal/service"
)

func SetupRoutes(r *gin.Engine, services *service.Services) {
	// 初始化 handlers
	authHandler := handlers.NewAuthHandler(services.User)
	arenaHandler := handlers.NewArenaHandler(services.Arena, services.Session, services.WebSocket)
	wsHandler := handlers.NewWebSocketHandler(services.WebSocket)

	// API 路由群組
	api := r.Group("/api")

	// 處理 404 錯誤
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "找不到該路徑",
		})
	})

	// 公開路由
	{
		// 用戶認證相關
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)

		// 基本的健康檢查
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status": "ok",
			})
		})
	}

	// 需要驗證的路由
	authorized := api.Group("/")
	authorized.Use(middleware.AuthMiddleware())
	{
		// 競技場相關
		arenas := authorized.Group("/arenas")
		{
			// 基本操作
			arenas.GET("", arenaHandler.ListArenas)         // 獲取競技場列表
			arenas.POST("", arenaHandler.CreateArena)       // 創建競技場
			arenas.GET("/:id", arenaHandler.GetArena)       // 獲取競技場信息
			arenas.DELETE("/:id", arenaHandler.DeleteArena) // 刪除競技場

			// 題目管理
			arenas.POST("/:id/questions", arenaHandler.AddQuestion)  // 新增題目
			arenas.GET("/:id/questions", arenaHandler.ListQuestions) // 獲取題目列表

			// 參賽結果
			arenas.GET("/:id/results", arenaHandler.GetResults) // 獲取參賽結果
		}

		// WebSocket 連接點，即時會話的入口
		authorized.GET("/ws", wsHandler.HandleWebSocket)
	}
}
