package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/youruser/webpproxy/internal/metrics"
	"github.com/youruser/webpproxy/internal/pipeline"
	"github.com/youruser/webpproxy/internal/proxyerr"
)

// Handler serves the transcode endpoint.
type Handler struct {
	pipeline *pipeline.Pipeline
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewHandler wires a Handler. A nil metrics or logger gets a private default.
func NewHandler(p *pipeline.Pipeline, m *metrics.Metrics, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if m == nil {
		m = metrics.New()
	}
	return &Handler{pipeline: p, metrics: m, logger: logger}
}

// health reports liveness.
func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// transcode serves GET /?image=<url> as WebP.
func (h *Handler) transcode(c *gin.Context) {
	out, err := h.pipeline.Run(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		e := proxyerr.From(err)
		fields := []zap.Field{
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.String("image", c.Query(pipeline.ImageParam)),
			zap.String("kind", string(e.Kind)),
		}
		if e.Status() >= http.StatusInternalServerError {
			h.logger.Error("transcode request failed", append(fields, zap.Error(e))...)
		} else {
			h.logger.Info("transcode request rejected", fields...)
		}
		h.metrics.Outcome(string(e.Kind))
		c.String(e.Status(), "%s", e.Public())
		return
	}

	h.metrics.Outcome("ok")
	c.Data(http.StatusOK, out.ContentType, out.Bytes)
}
