package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xiaohu31/ai-resume-architect/internal/api/middleware"
	"github.com/xiaohu31/ai-resume-architect/internal/metrics"
)

// NewRouter 构建 Gin 路由引擎：请求日志、Correlation ID、指标采集、
// 健康检查与 /metrics。业务路由由 RegisterRoutes 挂载。
func NewRouter(logger *slog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.CorrelationIDMiddleware(),
		middleware.SlogLoggerMiddleware(logger),
		metrics.GinMiddleware(),
		gin.Recovery(),
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
