package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/edirooss/urlparts/internal/service"
	"github.com/edirooss/urlparts/pkg/jsonx"
	"github.com/edirooss/urlparts/pkg/urlparts"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxBatchURLs caps a single batch request.
const maxBatchURLs = 1000

type URLParseHandler struct {
	log *zap.Logger
	svc *service.URLService
}

func NewURLParseHandler(log *zap.Logger, svc *service.URLService) *URLParseHandler {
	return &URLParseHandler{
		log: log.Named("urlparse"),
		svc: svc,
	}
}

// POST("/api/url/parse", Parse)
func (h *URLParseHandler) Parse(c *gin.Context) {
	h.parse(c, true)
}

// POST("/api/url/parse/raw", RawParse)
func (h *URLParseHandler) RawParse(c *gin.Context) {
	h.parse(c, false)
}

func (h *URLParseHandler) parse(c *gin.Context, validate bool) {
	var req struct {
		URL string `json:"url"`
	}
	if err := jsonx.ParseStrictJSONBody(c.Request, &req); err != nil {
		c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	parts, err := h.svc.Parse(c.Request.Context(), req.URL, validate)
	if err != nil {
		c.Error(err)
		if errors.Is(err, service.ErrInvalidHost) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, parts)
}

// POST("/api/url/parse/batch", Batch)
func (h *URLParseHandler) Batch(c *gin.Context) {
	var req struct {
		URLs []string `json:"urls"`
	}
	if err := jsonx.ParseStrictJSONBody(c.Request, &req); err != nil {
		c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if len(req.URLs) > maxBatchURLs {
		c.JSON(http.StatusBadRequest, gin.H{"message": "too many urls (max " + strconv.Itoa(maxBatchURLs) + ")"})
		return
	}

	out := h.svc.ParseBatch(c.Request.Context(), req.URLs)

	c.Header("X-Total-Count", strconv.Itoa(len(out)))
	c.JSON(http.StatusOK, out)
}

// GET("/api/url/components/:field", Component)
//
// Runs a single extractor against ?url=. Nothing is recorded to history.
func (h *URLParseHandler) Component(c *gin.Context) {
	raw, ok := c.GetQuery("url")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "missing url query parameter"})
		return
	}

	var (
		v       string
		present bool
	)
	switch field := c.Param("field"); field {
	case "protocol":
		v, present = urlparts.Protocol(raw)
	case "host":
		v, present = urlparts.Host(raw)
	case "path":
		v, present = urlparts.Path(raw)
	case "search":
		v, present = urlparts.Search(raw)
	case "fragment":
		v, present = urlparts.Fragment(raw)
	case "params":
		params := urlparts.Params(raw)
		if params == nil {
			params = []urlparts.Param{}
		}
		c.Header("X-Total-Count", strconv.Itoa(len(params)))
		c.JSON(http.StatusOK, params)
		return
	default:
		c.JSON(http.StatusNotFound, gin.H{"message": "unknown url component: '" + field + "'"})
		return
	}

	if !present {
		c.JSON(http.StatusOK, gin.H{"value": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"value": v})
}
