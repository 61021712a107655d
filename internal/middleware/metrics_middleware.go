package middleware

import (
	"time"

	"github.com/bufgix/recipe-blog-backend/internal/metrics"
	"github.com/gin-gonic/gin"
)

// MetricsMiddleware 라우트 패턴 단위로 요청 수와 지연 시간을 기록
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		metrics.TrackActiveRequest(true)
		defer metrics.TrackActiveRequest(false)

		c.Next()

		// 매칭되지 않은 경로는 하나로 묶어 라벨 수가 늘어나지 않게 한다
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		metrics.RecordAPIRequest(c.Request.Method, endpoint, c.Writer.Status(), time.Since(startTime))
	}
}
