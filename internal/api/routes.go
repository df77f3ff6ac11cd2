package api

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.Engine, h *Handler) {
	r.GET("/", h.transcode)
	r.GET("/metrics", gin.WrapH(h.metrics.Handler()))

	api := r.Group("/api")
	{
		api.GET("/health", health)
	}
}

// NewRouter builds the engine with middleware and routes attached.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(requestID(), accessLog(h.logger), recovery(h.logger))
	RegisterRoutes(r, h)
	return r
}
