package main

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/tasklists/tasks-api/internal/config"
	"github.com/tasklists/tasks-api/internal/database"
	"github.com/tasklists/tasks-api/internal/handlers"
	"github.com/tasklists/tasks-api/internal/identity"
	"github.com/tasklists/tasks-api/internal/logger"
	"github.com/tasklists/tasks-api/internal/middleware"
	"github.com/tasklists/tasks-api/internal/middleware/ratelimit"
	"github.com/tasklists/tasks-api/internal/repository"
	"github.com/tasklists/tasks-api/internal/services"
	"github.com/tasklists/tasks-api/internal/token"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(cfg.GinMode != "release"); err != nil {
		panic(err)
	}
	defer logger.Sync()

	gin.SetMode(cfg.GinMode)

	if err := database.Connect(cfg); err != nil {
		logger.Fatal("failed to connect to database", err)
	}
	if err := database.Migrate(); err != nil {
		logger.Fatal("failed to run migrations", err)
	}

	db := database.GetDB()

	provider := identity.NewProvider(db)
	if err := database.SeedSuperAdmin(cfg, provider); err != nil {
		logger.Fatal("failed to seed SuperAdmin", err)
	}

	tokens := token.NewManager(cfg.Jwt)

	listRepo := repository.NewTaskListRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	listService := services.NewTaskListService(listRepo)
	taskService := services.NewTaskService(taskRepo, listRepo)
	userService := services.NewUserService(db, provider, tokens, listRepo, taskRepo)

	userHandler := handlers.NewUserHandler(userService)
	listHandler := handlers.NewTaskListHandler(listService)
	taskHandler := handlers.NewTaskHandler(taskService)

	userLimiter := ratelimit.NewStore(ratelimit.Policy(cfg.UserRateLimiter))
	ipLimiter := ratelimit.NewStore(ratelimit.Policy(cfg.IPRateLimiter))
	userLimiter.StartJanitor(context.Background())
	ipLimiter.StartJanitor(context.Background())

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Authenticate(tokens))
	r.Use(ratelimit.Middleware(userLimiter, ipLimiter))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	{
		users := api.Group("/users")
		{
			users.POST("/signup", userHandler.SignUp)
			users.POST("/signin", userHandler.SignIn)
			users.POST("/refresh-token", userHandler.RefreshToken)
			users.PUT("/delete", middleware.RequireAuth(), userHandler.Delete)
		}

		lists := api.Group("/tasklists")
		lists.Use(middleware.RequireAuth())
		{
			lists.GET("", listHandler.List)
			lists.GET("/:id", listHandler.Get)
			lists.POST("", listHandler.Create)
			lists.PUT("/:id", listHandler.Update)
			lists.DELETE("/:id", listHandler.Delete)

			lists.GET("/:id/tasks", taskHandler.ListByTaskList)
			lists.DELETE("/:id/tasks", taskHandler.DeleteAllInList)
		}

		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("/:id", taskHandler.Get)
			tasks.POST("", taskHandler.Create)
			tasks.PUT("/:id", taskHandler.Update)
			tasks.DELETE("/:id", taskHandler.Delete)
		}
	}

	logger.Info("starting server on :8080")
	if err := r.Run(":8080"); err != nil {
		logger.Fatal("server stopped", err)
	}
}
