package routes

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stollenaar/analyticsbot/internal/analytics"
	"github.com/stollenaar/analyticsbot/internal/commands/analyticscommand"
	"github.com/stollenaar/analyticsbot/internal/util/charts"
)

// CreateRouter builds the health and chart preview routes.
func CreateRouter(pipeline *analyticscommand.Pipeline, debug bool) *gin.Engine {
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.SetTrustedProxies(nil)
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
	addPreview(r, pipeline)
	return r
}

func addPreview(r *gin.Engine, pipeline *analyticscommand.Pipeline) {
	r.GET("/preview/:website", func(c *gin.Context) {
		flow := pipeline.Run(c.Request.Context(), c.Param("website"), c.DefaultQuery("duration", "7"))
		if flow.State != analyticscommand.Completed {
			c.JSON(statusFor(flow.Err), gin.H{
				"kind":  analytics.KindOf(flow.Err),
				"error": flow.Err.Error(),
			})
			return
		}

		var page bytes.Buffer
		result := flow.Result
		if err := charts.RenderPreviewPage(&page, charts.Title(result.Website, result.Range), result.Samples); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"kind":  analytics.RenderError,
				"error": err.Error(),
			})
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", page.Bytes())
	})
}

func statusFor(err error) int {
	switch analytics.KindOf(err) {
	case analytics.InvalidDuration:
		return http.StatusBadRequest
	case analytics.UnknownWebsite:
		return http.StatusNotFound
	case analytics.AuthenticationError, analytics.BackendError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
