package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeflow/internal/config"
	"codeflow/internal/db"
	"codeflow/internal/handler"
	"codeflow/internal/middleware"
	"codeflow/internal/repository"
	"codeflow/pkg/logger"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
	Logger *zap.Logger
}

func Init(cfg *config.Config) (*Server, error) {
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}
	log.Info("connected to database", zap.String("host", cfg.DBHost), zap.String("db", cfg.DBName))

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access DB connection: %w", err)
	}
	if err := db.Migrate(sqlDB); err != nil {
		return nil, err
	}
	log.Info("migrations applied")

	r := gin.New()
	r.Use(middleware.RequestLogger(log))
	r.Use(gin.Recovery())
	r.MaxMultipartMemory = handler.MaxUploadBytes

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	projectRepo := repository.NewProjectRepository(gormDB)
	userProjectRepo := repository.NewUserProjectRepository(gormDB)
	repoRepo := repository.NewRepoRepository(gormDB)
	fileRepo := repository.NewFileRepository(gormDB)
	kanbanRepo := repository.NewKanbanRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)
	statsRepo := repository.NewStatsRepository(gormDB)

	// Handlers
	jwtExpiry := time.Duration(cfg.JWTExpiryHours) * time.Hour
	authHandler := handler.NewAuthHandler(userRepo, cfg.JWTSecret, jwtExpiry)
	projectHandler := handler.NewProjectHandler(projectRepo, userRepo, userProjectRepo)
	statsHandler := handler.NewStatsHandler(statsRepo)
	boardHandler := handler.NewBoardHandler(kanbanRepo)
	taskHandler := handler.NewTaskHandler(taskRepo)
	repositoryHandler := handler.NewRepositoryHandler(repoRepo, fileRepo)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public routes
	r.POST("/auth/register", authHandler.Register)
	r.POST("/auth/login", authHandler.Login)
	r.POST("/auth/logout", authHandler.Logout)

	// Protected routes - require authentication
	authorized := r.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	{
		authorized.GET("/auth/me", authHandler.Me)

		// Project routes
		authorized.POST("/projects", projectHandler.Create)
		authorized.GET("/projects", projectHandler.GetAll)
		authorized.GET("/projects/:id", projectHandler.GetByID)
		authorized.PUT("/projects/:id", projectHandler.Update)
		authorized.DELETE("/projects/:id", projectHandler.Delete)

		// Project stats routes
		authorized.GET("/projects/stats/commits/:id", statsHandler.TotalCommits)
		authorized.GET("/projects/stats/files/:id", statsHandler.TotalFiles)
		authorized.GET("/projects/stats/collaborators/:id", statsHandler.TotalCollaborators)
		authorized.GET("/projects/stats/tasks/:id", statsHandler.TotalTasks)
		authorized.GET("/projects/stats/done/:id", statsHandler.DoneTasks)
		authorized.GET("/projects/stats/todo/:id", statsHandler.ToDoTasks)
		authorized.GET("/projects/stats/doing/:id", statsHandler.DoingTasks)

		// Collaborator routes
		authorized.POST("/projects/collaborator/:id", projectHandler.AddCollaborator)
		authorized.GET("/projects/collaborator/:id", projectHandler.ListCollaborators)
		authorized.DELETE("/projects/collaborator/:id/:userId", projectHandler.RemoveCollaborator)

		// Board routes
		authorized.POST("/boards", boardHandler.Create)
		authorized.GET("/boards/:projectId", boardHandler.GetByProjectID)

		// Task routes
		authorized.GET("/task/:kanbanId", taskHandler.GetAll)
		authorized.POST("/task", taskHandler.Create)
		authorized.PUT("/task/:id", taskHandler.Update)
		authorized.PUT("/task/status/:id", taskHandler.UpdateStatus)
		authorized.DELETE("/task/:id", taskHandler.Delete)

		// Repository routes
		authorized.GET("/repositories/:projectId", repositoryHandler.GetByProjectID)
		authorized.GET("/repositories/files/:repositoryId", repositoryHandler.ListFiles)
		authorized.GET("/repositories/file/:fileId", repositoryHandler.GetFile)
		authorized.POST("/repositories/files/:repositoryId", repositoryHandler.UploadFile)
	}

	return &Server{
		Engine: r,
		DB:     gormDB,
		Config: cfg,
		Logger: log,
	}, nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		s.Logger.Info("server running", zap.String("port", s.Config.ServerPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.Logger.Fatal("failed to listen", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	s.Logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		s.Logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	s.Logger.Info("server exited properly")
	_ = s.Logger.Sync()
}
