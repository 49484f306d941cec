// Package web is the HTTP surface of the productivity platform: task CRUD,
// aggregate views, and the AI advisor endpoints.
package web

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/harichandramathi27/AI-Smart-productivity-platform/internal/advisor"
	"github.com/harichandramathi27/AI-Smart-productivity-platform/internal/core"
)

// Version is stamped by the build; surfaced on the root endpoint.
var Version = "1.0.0"

// TaskStore is the store surface the handlers need.
type TaskStore interface {
	List() []core.Task
	Get(id string) (core.Task, error)
	Create(d core.Draft) (core.Task, error)
	Update(id string, p core.Patch) (core.Task, error)
	Delete(id string)
	Stats() core.Stats
	Len() int
}

// Server is the platform's web server.
type Server struct {
	store   TaskStore
	advisor advisor.Advisor
	logger  *slog.Logger
	router  *gin.Engine
	clock   func() time.Time
}

// NewServer creates a web server over the given store and advisor.
func NewServer(store TaskStore, adv advisor.Advisor, logger *slog.Logger) *Server {
	router := gin.New()

	s := &Server{
		store:   store,
		advisor: adv,
		logger:  logger,
		router:  router,
		clock:   time.Now,
	}

	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/", s.handleRoot)
	router.GET("/health", s.handleHealth)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		tasks := api.Group("/tasks")
		{
			tasks.GET("", s.handleListTasks)
			tasks.GET("/stats", s.handleStats)
			tasks.GET("/notifications", s.handleNotifications)
			tasks.GET("/categories", s.handleCategories)
			tasks.POST("", s.handleCreateTask)
			tasks.GET("/:id", s.handleGetTask)
			tasks.PUT("/:id", s.handleUpdateTask)
			tasks.DELETE("/:id", s.handleDeleteTask)
		}

		ai := api.Group("/ai")
		{
			ai.POST("/priorities", s.handleAnalyzePriorities)
			ai.POST("/daily-plan", s.handleDailyPlan)
			ai.POST("/suggest", s.handleSuggest)
		}
	}

	return s
}

// Handler exposes the router, mainly for embedding in an http.Server.
func (s *Server) Handler() *gin.Engine {
	return s.router
}
