package http

import (
	"github.com/GoSim-25-26J-441/indoor-nav-backend/internal/indoor_navigation/service"
	"golang.org/x/time/rate"
)

// Handler serves building graphs, routes and closures.
type Handler struct {
	nav      *service.NavigationService
	closures *service.ClosureService
	limiter  *rate.Limiter
}

// New creates a Handler. closures may be nil when no closure store is
// configured; the closure endpoints then answer 503. A nil limiter disables
// rate limiting of route requests.
func New(nav *service.NavigationService, closures *service.ClosureService, limiter *rate.Limiter) *Handler {
	return &Handler{nav: nav, closures: closures, limiter: limiter}
}

// NewLimiter builds the route limiter. rps <= 0 means unlimited.
func NewLimiter(rps float64, burst int) *rate.Limiter {
	if rps <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}

type routeRequest struct {
	StartID string `json:"start_id" binding:"required"`
	EndID   string `json:"end_id" binding:"required"`
}
