package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "course-platform/docs"
	"course-platform/internal/config"
	authhandler "course-platform/internal/handler/auth"
	banhandler "course-platform/internal/handler/ban"
	categoryhandler "course-platform/internal/handler/category"
	chapterhandler "course-platform/internal/handler/chapter"
	coursehandler "course-platform/internal/handler/course"
	feedbackhandler "course-platform/internal/handler/feedback"
	"course-platform/internal/handler/health"
	"course-platform/internal/handler/middleware"
	subchapterhandler "course-platform/internal/handler/subchapter"
	userhandler "course-platform/internal/handler/user"
	"course-platform/pkg/logger"
	"course-platform/pkg/validation"
)

// ShutdownTimeout — сколько ждать завершения активных запросов при остановке.
const ShutdownTimeout = 30 * time.Second

// Server представляет HTTP сервер приложения
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	db         health.Pinger
	cfg        *config.Config
	services   *Services
	logger     logger.Logger
}

// NewServer создает новый экземпляр сервера. db может быть nil, тогда /health/db
// сообщает, что база данных не инициализирована.
func NewServer(cfg *config.Config, db health.Pinger, services *Services, log logger.Logger) (*Server, error) {
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.DebugMode)
	}

	if err := validation.Setup(); err != nil {
		return nil, fmt.Errorf("ошибка настройки валидации: %w", err)
	}

	s := &Server{
		router:   gin.New(),
		db:       db,
		cfg:      cfg,
		services: services,
		logger:   log,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s, nil
}

// setupMiddleware настраивает middleware для роутера
func (s *Server) setupMiddleware() {
	// Recovery должен быть первым, чтобы перехватывать паники остальных
	s.router.Use(middleware.Recovery(s.logger))
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(middleware.CORS(&s.cfg.CORS))
}

// setupRoutes настраивает маршруты приложения
func (s *Server) setupRoutes() {
	s.setupHealthRoutes()

	if s.cfg.AppEnv != "production" {
		// GET /swagger/index.html — swagger UI, только вне production
		s.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := s.router.Group("/api/v1")
	v1.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Course Platform API v1",
			"version": "1.0.0",
		})
	})

	auth := middleware.Auth(s.services.JWT)
	admin := middleware.RequireRole(s.cfg.Roles.Admin)

	s.setupUserRoutes(v1, auth, admin)
	s.setupCategoryRoutes(v1, auth, admin)
	s.setupCourseRoutes(v1, auth, admin)
	s.setupChapterRoutes(v1, auth, admin)
	s.setupSubChapterRoutes(v1, auth, admin)
	s.setupBanRoutes(v1, auth, admin)
	s.setupFeedbackRoutes(v1, auth, admin)
}

// setupHealthRoutes настраивает health-check эндпоинты.
func (s *Server) setupHealthRoutes() {
	h := health.NewHandler(s.db, s.cfg.AppEnv)
	s.router.GET("/health", h.Health)
	s.router.GET("/health/db", h.HealthDB)
}

// setupUserRoutes настраивает эндпоинты аутентификации, профиля и записей на курсы.
func (s *Server) setupUserRoutes(v1 *gin.RouterGroup, auth, admin gin.HandlerFunc) {
	authH := authhandler.NewHandler(s.services.Auth, s.cfg.Frontend.EmailVerifiedURL())
	userH := userhandler.NewHandler(s.services.Users, s.cfg.Roles.Admin)

	users := v1.Group("/users")
	{
		users.POST("/register", authH.Register)
		users.POST("/login", authH.Login)
		users.POST("/refresh", authH.Refresh)
		// GET /api/v1/users/verify-email — ссылка из письма, редиректит на фронтенд
		users.GET("/verify-email", authH.VerifyEmail)
		users.POST("/resend-verification", authH.ResendVerification)
	}

	protected := users.Group("", auth)
	{
		protected.GET("/me", userH.GetMe)
		protected.PUT("/me", userH.UpdateMe)
		protected.GET("", admin, userH.List)
		protected.GET("/:userId", userH.GetByID)
		protected.DELETE("/:userId", userH.Delete)
		protected.GET("/:userId/registrations", userH.ListRegistrations)
		protected.POST("/enroll/:courseId", userH.Enroll)
		protected.DELETE("/unregister/:courseId", userH.Unregister)
	}
}

// setupCategoryRoutes: чтение публично, изменение только администратору.
func (s *Server) setupCategoryRoutes(v1 *gin.RouterGroup, auth, admin gin.HandlerFunc) {
	h := categoryhandler.NewHandler(s.services.Categories)

	categories := v1.Group("/categories")
	{
		categories.GET("", h.List)
		categories.GET("/:id", h.GetByID)
		categories.POST("", auth, admin, h.Create)
		categories.PUT("/:id", auth, admin, h.Update)
		categories.DELETE("/:id", auth, admin, h.Delete)
	}
}

// setupCourseRoutes: чтение для аутентифицированных, изменение только администратору.
func (s *Server) setupCourseRoutes(v1 *gin.RouterGroup, auth, admin gin.HandlerFunc) {
	h := coursehandler.NewHandler(s.services.Courses)

	courses := v1.Group("/courses", auth)
	{
		courses.GET("", h.List)
		courses.GET("/:id", h.GetByID)
		courses.GET("/created-by/:userId", h.ListByCreator)
		courses.POST("", admin, h.Create)
		courses.PUT("/:id", admin, h.Update)
		courses.DELETE("/:id", admin, h.Delete)
	}
}

func (s *Server) setupChapterRoutes(v1 *gin.RouterGroup, auth, admin gin.HandlerFunc) {
	h := chapterhandler.NewHandler(s.services.Chapters)

	chapters := v1.Group("/course-chapters", auth, admin)
	{
		chapters.GET("", h.List)
		chapters.GET("/by-course/:courseId", h.ListByCourse)
		chapters.GET("/:id", h.GetByID)
		chapters.POST("", h.Create)
		chapters.PUT("/order", h.UpdateOrder)
		chapters.PUT("/:id", h.Update)
		chapters.DELETE("/:id", h.Delete)
	}
}

func (s *Server) setupSubChapterRoutes(v1 *gin.RouterGroup, auth, admin gin.HandlerFunc) {
	h := subchapterhandler.NewHandler(s.services.SubChapters)

	subchapters := v1.Group("/course-subchapters", auth, admin)
	{
		subchapters.GET("", h.List)
		subchapters.GET("/by-chapter/:chapterId", h.ListByChapter)
		subchapters.GET("/:id", h.GetByID)
		subchapters.POST("", h.Create)
		subchapters.PUT("/order", h.UpdateOrder)
		subchapters.PUT("/:id", h.Update)
		subchapters.DELETE("/:id", h.Delete)
	}
}

func (s *Server) setupBanRoutes(v1 *gin.RouterGroup, auth, admin gin.HandlerFunc) {
	h := banhandler.NewHandler(s.services.Bans)

	bans := v1.Group("/bans", auth, admin)
	{
		bans.GET("", h.List)
		bans.GET("/by-user/:userId", h.ListByUser)
		bans.GET("/by-course/:courseId", h.ListByCourse)
		bans.GET("/:id", h.GetByID)
		bans.POST("", h.Create)
		bans.DELETE("/:id", h.Delete)
	}
}

// setupFeedbackRoutes: оставить отзыв может любой аутентифицированный пользователь,
// удалить — автор или администратор, списки доступны администратору.
func (s *Server) setupFeedbackRoutes(v1 *gin.RouterGroup, auth, admin gin.HandlerFunc) {
	h := feedbackhandler.NewHandler(s.services.Feedbacks, s.cfg.Roles.Admin)

	feedbacks := v1.Group("/feedbacks", auth)
	{
		feedbacks.POST("", h.Create)
		feedbacks.GET("/:id", admin, h.GetByID)
		feedbacks.DELETE("/:id", h.Delete)
		feedbacks.GET("/by-user/:userId", admin, h.ListByUser)
		feedbacks.GET("/by-course/:courseId", admin, h.ListByCourse)
	}
}

// Run запускает HTTP сервер и останавливает его с graceful shutdown после отмены ctx.
func (s *Server) Run(ctx context.Context) error {
	address := s.cfg.Server.Address()

	s.httpServer = &http.Server{
		Addr:           address,
		Handler:        s.router,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	serverErr := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP сервер запущен", map[string]any{"address": address})
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("ошибка запуска HTTP сервера: %w", err)
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("останавливаем HTTP сервер", map[string]any{"timeout": ShutdownTimeout.String()})
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("ошибка при остановке сервера: %w", err)
	}

	s.logger.Info("HTTP сервер успешно остановлен", nil)
	return nil
}

// Router возвращает роутер (для тестирования)
func (s *Server) Router() *gin.Engine {
	return s.router
}
