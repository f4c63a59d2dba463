package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/lysyi3m/day-reel/app/browser"
	"github.com/lysyi3m/day-reel/app/content"
	"github.com/lysyi3m/day-reel/app/tasks"
)

type Handler struct {
	state          *browser.State
	scheduler      tasks.TaskSchedulerInterface
	refreshLimiter *rate.Limiter
	version        string
}

// NewHandler allows refreshesPerMinute manual refreshes per minute; zero
// disables manual refresh.
func NewHandler(state *browser.State, scheduler tasks.TaskSchedulerInterface, refreshesPerMinute int, version string) *Handler {
	limiter := rate.NewLimiter(0, 0)
	if refreshesPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(refreshesPerMinute)), refreshesPerMinute)
	}

	return &Handler{
		state:          state,
		scheduler:      scheduler,
		refreshLimiter: limiter,
		version:        version,
	}
}

func (h *Handler) GetPage(c *gin.Context) {
	view := buildPageView(h.state.Snapshot(), h.version)
	c.HTML(http.StatusOK, pageTemplate, view)
}

func (h *Handler) GetDay(c *gin.Context) {
	date := c.Param("date")
	if !h.state.GoToDate(date) {
		slog.Debug("Day not found", "date", date)
		c.Status(http.StatusNotFound)
		return
	}

	h.GetPage(c)
}

func (h *Handler) PostPrevious(c *gin.Context) {
	if !h.state.GoToPrevious() {
		slog.Debug("Already at the oldest day", "index", h.state.CurrentIndex())
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) PostNext(c *gin.Context) {
	if !h.state.GoToNext() {
		slog.Debug("Already at the newest day", "index", h.state.CurrentIndex())
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) APIGetCollections(c *gin.Context) {
	snapshot := h.state.Snapshot()

	collections := snapshot.Collections
	if collections == nil {
		collections = content.Sequence{}
	}

	c.JSON(http.StatusOK, gin.H{
		"collections": collections,
		"total":       len(collections),
		"fallback":    snapshot.UsingFallback,
	})
}

func (h *Handler) APIGetState(c *gin.Context) {
	snapshot := h.state.Snapshot()

	state := gin.H{
		"current_index": snapshot.CurrentIndex,
		"count":         len(snapshot.Collections),
		"has_previous":  snapshot.HasPrevious(),
		"has_next":      snapshot.HasNext(),
		"loading":       snapshot.Loading,
		"fallback":      snapshot.UsingFallback,
		"last_error":    snapshot.LastError,
		"last_sync":     snapshot.LastSyncTime,
	}

	if current, ok := snapshot.Current(); ok {
		state["date"] = current.Date
		state["title"] = content.FormatLongDate(current.Date)
	}

	c.JSON(http.StatusOK, state)
}

func (h *Handler) APIRefresh(c *gin.Context) {
	if !h.refreshLimiter.Allow() {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Refresh rate limit exceeded"})
		return
	}

	task, err := h.scheduler.EnqueueRefresh()
	if err != nil {
		slog.Error("Error enqueueing refresh task", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Failed to enqueue refresh task",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"task": gin.H{
			"id":   task.GetID(),
			"type": task.GetType(),
		},
	})
}

func (h *Handler) GetHealth(c *gin.Context) {
	snapshot := h.state.Snapshot()

	c.JSON(http.StatusOK, gin.H{
		"timestamp":   time.Now().In(time.Local).Format(time.RFC3339),
		"version":     h.version,
		"collections": len(snapshot.Collections),
		"fallback":    snapshot.UsingFallback,
	})
}
