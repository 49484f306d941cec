package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/harichandramathi27/AI-Smart-productivity-platform/internal/core"
	"github.com/harichandramathi27/AI-Smart-productivity-platform/internal/telemetry"
)

// Service endpoints

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "AI Smart Productivity Platform",
		"version": Version,
		"endpoints": gin.H{
			"tasks":         "/api/tasks",
			"ai_priorities": "/api/ai/priorities",
			"ai_daily_plan": "/api/ai/daily-plan",
			"ai_suggest":    "/api/ai/suggest",
		},
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":          "healthy",
		"timestamp":       s.clock(),
		"tasks_in_memory": s.store.Len(),
	})
}

// Task endpoints

func (s *Server) handleListTasks(c *gin.Context) {
	filter := core.Filter{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}
	mode := core.SortMode(c.DefaultQuery("sort_by", string(core.SortByCreated)))

	now := s.clock()
	tasks := core.FilterTasks(s.store.List(), filter, now)
	core.SortTasks(tasks, mode, now)

	if tasks == nil {
		tasks = []core.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

func (s *Server) handleStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Stats())
}

func (s *Server) handleNotifications(c *gin.Context) {
	alerts := core.Notifications(s.store.List(), s.clock())
	if alerts == nil {
		alerts = []core.Notification{}
	}
	c.JSON(http.StatusOK, gin.H{
		"notifications": alerts,
		"count":         len(alerts),
	})
}

func (s *Server) handleCategories(c *gin.Context) {
	top := 4
	if v := c.Query("top"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "top must be a positive integer",
			})
			return
		}
		top = n
	}

	breakdown := core.CategoryBreakdown(s.store.List(), top)
	if breakdown == nil {
		breakdown = []core.CategoryCount{}
	}
	c.JSON(http.StatusOK, gin.H{
		"categories": breakdown,
		"count":      len(breakdown),
	})
}

func (s *Server) handleCreateTask(c *gin.Context) {
	var draft core.Draft
	if err := c.BindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	task, err := s.store.Create(draft)
	if err != nil {
		writeStoreError(c, err)
		return
	}

	telemetry.TasksMutated.WithLabelValues("create").Inc()
	c.JSON(http.StatusCreated, task)
}

func (s *Server) handleGetTask(c *gin.Context) {
	task, err := s.store.Get(c.Param("id"))
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (s *Server) handleUpdateTask(c *gin.Context) {
	var patch core.Patch
	if err := c.BindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	task, err := s.store.Update(c.Param("id"), patch)
	if err != nil {
		writeStoreError(c, err)
		return
	}

	telemetry.TasksMutated.WithLabelValues("update").Inc()
	c.JSON(http.StatusOK, task)
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	s.store.Delete(c.Param("id"))
	telemetry.TasksMutated.WithLabelValues("delete").Inc()
	c.Status(http.StatusNoContent)
}

// writeStoreError maps store errors onto HTTP statuses.
func writeStoreError(c *gin.Context, err error) {
	var validationErr *core.ValidationError
	var notFoundErr *core.NotFoundError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   validationErr.Error(),
		})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   notFoundErr.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
	}
}

// AI endpoints

type taskListRequest struct {
	Tasks []core.Task `json:"tasks"`
}

type suggestRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (s *Server) handleAnalyzePriorities(c *gin.Context) {
	var req taskListRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}
	if len(req.Tasks) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "task list cannot be empty",
		})
		return
	}

	analysis, err := s.advisor.AnalyzePriorities(c.Request.Context(), req.Tasks)
	if err != nil {
		telemetry.AdvisorRequests.WithLabelValues("priorities", "error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	telemetry.AdvisorRequests.WithLabelValues("priorities", "ok").Inc()
	c.JSON(http.StatusOK, analysis)
}

func (s *Server) handleDailyPlan(c *gin.Context) {
	var req taskListRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}
	if len(req.Tasks) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "task list cannot be empty",
		})
		return
	}

	plan, err := s.advisor.GenerateDailyPlan(c.Request.Context(), req.Tasks)
	if err != nil {
		telemetry.AdvisorRequests.WithLabelValues("daily-plan", "error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	telemetry.AdvisorRequests.WithLabelValues("daily-plan", "ok").Inc()
	c.JSON(http.StatusOK, plan)
}

func (s *Server) handleSuggest(c *gin.Context) {
	var req suggestRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "task title is required",
		})
		return
	}

	suggestion, err := s.advisor.SuggestTask(c.Request.Context(), req.Title, req.Description)
	if err != nil {
		telemetry.AdvisorRequests.WithLabelValues("suggest", "error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	telemetry.AdvisorRequests.WithLabelValues("suggest", "ok").Inc()
	c.JSON(http.StatusOK, suggestion)
}
