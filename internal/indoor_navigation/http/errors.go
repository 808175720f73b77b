package http

import (
	"errors"
	"net/http"

	"github.com/GoSim-25-26J-441/indoor-nav-backend/internal/indoor_navigation/domain"
	"github.com/GoSim-25-26J-441/indoor-nav-backend/internal/indoor_navigation/service"
	"github.com/gin-gonic/gin"
)

func writeError(c *gin.Context, operation string, err error) {
	status, msg := http.StatusInternalServerError, "internal error"
	switch {
	case errors.Is(err, domain.ErrUnknownWaypoint):
		status, msg = http.StatusNotFound, "unknown waypoint"
	case errors.Is(err, domain.ErrBuildingNotFound):
		status, msg = http.StatusNotFound, "building not found"
	case errors.Is(err, domain.ErrClosureNotFound):
		status, msg = http.StatusNotFound, "closure not found"
	case errors.Is(err, domain.ErrNoPath):
		status, msg = http.StatusUnprocessableEntity, "no path"
	case errors.Is(err, domain.ErrInvalidClosure), errors.Is(err, domain.ErrInvalidClosureType):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrInvalidConfiguration):
		msg = "invalid routing configuration"
	case errors.Is(err, domain.ErrInvalidWaypoints):
		msg = "invalid building data"
	}

	if status >= http.StatusInternalServerError {
		service.NewLogger(c.Request.Context()).LogError(operation, err)
	}
	c.JSON(status, gin.H{"error": msg})
}
