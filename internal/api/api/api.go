package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/ginext"

	"confreg/cmd/middleware"
	"confreg/internal/api/handler"
	"confreg/internal/dto"
	"confreg/internal/metrics"
	"confreg/internal/service"
)

// Pinger reports store health for /healthz.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Routers struct {
	Service service.Service
	Health  Pinger
	Metrics *metrics.Metrics
	Log     *zerolog.Logger
}

func NewRouters(r *Routers) *ginext.Engine {
	app := ginext.New("release")

	app.Use(middleware.LoggingMiddleware(r.Log, r.Metrics))
	app.Use(cors.Default())

	h := handler.New(r.Service, r.Log)
	regGroup := app.Group("/api/registrations")

	regGroup.POST("/sessions/:sessionId", h.EnrollSession)
	regGroup.DELETE("/sessions/:sessionId/:registrationId", h.UnenrollSession)
	regGroup.POST("/activities/:activityId", h.EnrollActivity)
	regGroup.DELETE("/activities/:activityId/:registrationId", h.UnenrollActivity)
	regGroup.GET("/user/:registrationId", h.ListForRegistrant)

	regGroup.POST("/", h.SubmitRegistration)
	regGroup.GET("/", h.ListRegistrations)
	regGroup.PATCH("/bulk/status", h.BulkTransitionStatus)
	regGroup.PATCH("/:id/status", h.TransitionStatus)
	regGroup.GET("/stats/overview", h.StatsOverview)
	regGroup.DELETE("/:id", h.DeleteRegistration)
	regGroup.PUT("/:id", h.UpdateRegistration)

	metricsHandler := promhttp.Handler()
	app.GET("/metrics", func(c *ginext.Context) {
		metricsHandler.ServeHTTP(c.Writer, c.Request)
	})

	app.GET("/healthz", func(c *ginext.Context) {
		if r.Health != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := r.Health.Ping(ctx); err != nil {
				r.Log.Error().Err(err).Msg("health check failed")
				c.JSON(http.StatusServiceUnavailable, dto.Response{
					Status: "error",
					Error:  &dto.Error{Code: dto.ServiceUnavailable, Desc: dto.InternalError},
				})
				return
			}
		}
		dto.SuccessResponse(c, map[string]string{"db": "ok"})
	})

	return app
}
