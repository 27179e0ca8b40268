package handler

import (
	"net/http"

	mw "github.com/edirooss/urlparts/internal/http/middleware"
	"github.com/edirooss/urlparts/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Register mounts every API route on r. maxConcurrentBatch bounds in-flight
// batch requests.
func Register(r gin.IRouter, log *zap.Logger, urlsvc *service.URLService, summarysvc *service.SummaryService, maxConcurrentBatch int) {
	r.GET("/api/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"message": "pong"}) })

	{
		urlhndlr := NewURLParseHandler(log, urlsvc)
		r.POST("/api/url/parse", urlhndlr.Parse)                                                       // validated
		r.POST("/api/url/parse/raw", urlhndlr.RawParse)                                                // never rejects
		r.POST("/api/url/parse/batch", mw.LimitConcurrentRequests(maxConcurrentBatch), urlhndlr.Batch) // raw, many
		r.GET("/api/url/components/:field", urlhndlr.Component)                                        // single extractor
	}

	{
		histhndlr := NewHistoryHandler(log, urlsvc, summarysvc)
		r.GET("/api/url/history", histhndlr.List)
		r.DELETE("/api/url/history", histhndlr.Clear)
		r.GET("/api/url/summary", histhndlr.Summary)
	}
}
