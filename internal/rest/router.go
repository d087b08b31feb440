// Package rest serves the clinic over JSON/HTTP with gin.
package rest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"clinic-scheduler-api/internal/auth"
	"clinic-scheduler-api/internal/clinic"
	"clinic-scheduler-api/internal/middleware"
	"clinic-scheduler-api/internal/scheduling"
)

type Handler struct {
	svc *clinic.Service
	loc *time.Location
}

// NewRouter wires every route. rl may be nil to disable rate limiting.
func NewRouter(svc *clinic.Service, tokens *auth.Tokens, rl *middleware.RateLimiter, loc *time.Location, log zerolog.Logger) *gin.Engine {
	if loc == nil {
		loc = time.UTC
	}
	h := &Handler{svc: svc, loc: loc}

	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(log))

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	v1 := r.Group("/v1")
	limit := RateLimit(rl)
	v1.POST("/login/:role", limit, h.Login)
	v1.POST("/patients", limit, h.RegisterPatient)
	v1.GET("/doctors", h.ListDoctors)

	// the core answers these with its own outcome for unusable tokens
	v1.DELETE("/appointments/:id", BearerAuth(tokens, false), h.CancelAppointment)
	v1.GET("/tokens/validate/:role", BearerAuth(tokens, false), h.ValidateToken)

	authed := v1.Group("", BearerAuth(tokens, true))
	authed.POST("/doctors", h.AddDoctor)
	authed.DELETE("/doctors/:id", h.DeleteDoctor)
	authed.GET("/patients/me", h.PatientProfile)
	authed.GET("/doctors/:id/availability", h.CheckAvailability)
	authed.POST("/appointments", h.BookAppointment)
	authed.PUT("/appointments/:id", h.UpdateAppointment)
	authed.PATCH("/appointments/:id/complete", h.CompleteAppointment)
	authed.GET("/appointments", h.ListDoctorAppointments)

	return r
}

// HTTPStatus maps an error kind onto its HTTP status code.
func HTTPStatus(k scheduling.Kind) int {
	switch k {
	case scheduling.KindNotFound:
		return http.StatusNotFound
	case scheduling.KindForbidden:
		return http.StatusForbidden
	case scheduling.KindConflict:
		return http.StatusConflict
	case scheduling.KindValidationFailed, scheduling.KindInvalidArgument:
		return http.StatusBadRequest
	case scheduling.KindUnauthenticated:
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

func fail(c *gin.Context, err error) {
	c.JSON(HTTPStatus(scheduling.KindOf(err)), gin.H{"message": scheduling.Message(err)})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"message": msg})
}
