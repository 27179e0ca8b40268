package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/edirooss/urlparts/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type HistoryHandler struct {
	log     *zap.Logger
	svc     *service.URLService
	summary *service.SummaryService
}

func NewHistoryHandler(log *zap.Logger, svc *service.URLService, summary *service.SummaryService) *HistoryHandler {
	return &HistoryHandler{
		log:     log.Named("history"),
		svc:     svc,
		summary: summary,
	}
}

// GET("/api/url/history", List)
func (h *HistoryHandler) List(c *gin.Context) {
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "0"), 10, 64)
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "limit must be a non-negative integer"})
		return
	}

	entries, err := h.svc.History(c.Request.Context(), limit)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Header("X-Total-Count", strconv.Itoa(len(entries)))
	c.JSON(http.StatusOK, entries)
}

// DELETE("/api/url/history", Clear)
func (h *HistoryHandler) Clear(c *gin.Context) {
	if err := h.svc.ClearHistory(c.Request.Context()); err != nil {
		h.fail(c, err)
		return
	}
	h.summary.Invalidate()
	c.Status(http.StatusNoContent)
}

// GET("/api/url/summary", Summary)
func (h *HistoryHandler) Summary(c *gin.Context) {
	// ?force=1 bypasses the snapshot cache
	force := c.Query("force") == "1"

	res, err := h.summary.Get(c.Request.Context(), force)
	if err != nil {
		h.fail(c, err)
		return
	}

	if res.CacheHit {
		c.Header("X-Cache", "HIT")
	} else {
		c.Header("X-Cache", "MISS")
	}
	c.Header("X-Summary-Generated-At", res.GeneratedAt.UTC().Format(time.RFC3339Nano))
	c.JSON(http.StatusOK, res.Data)
}

func (h *HistoryHandler) fail(c *gin.Context, err error) {
	c.Error(err)
	if errors.Is(err, service.ErrHistoryUnavailable) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
}
