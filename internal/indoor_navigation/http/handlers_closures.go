package http

import (
	"net/http"

	"github.com/GoSim-25-26J-441/indoor-nav-backend/internal/indoor_navigation/domain"
	"github.com/gin-gonic/gin"
)

func (h *Handler) closuresEnabled(c *gin.Context) bool {
	if h.closures == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "closure store not configured"})
		return false
	}
	return true
}

// ListClosures lists the closures of a building that apply now
func (h *Handler) ListClosures(c *gin.Context) {
	if !h.closuresEnabled(c) {
		return
	}

	list, err := h.closures.ListActive(c.Request.Context(), c.Param("building_id"))
	if err != nil {
		writeError(c, "closures.list", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"closures": list, "count": len(list)})
}

// GetClosureState reports the closed edges and nodes routing sees right now
func (h *Handler) GetClosureState(c *gin.Context) {
	if !h.closuresEnabled(c) {
		return
	}

	state, err := h.closures.State(c.Request.Context(), c.Param("building_id"))
	if err != nil {
		writeError(c, "closures.state", err)
		return
	}

	c.JSON(http.StatusOK, state)
}

// CloseEdge closes the connection between two waypoints
func (h *Handler) CloseEdge(c *gin.Context) {
	if !h.closuresEnabled(c) {
		return
	}

	var req domain.CloseEdgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	req.BuildingID = c.Param("building_id")
	if req.CreatedBy == "" {
		req.CreatedBy = c.GetHeader("X-User-Id")
	}

	closure, err := h.closures.CloseEdge(c.Request.Context(), &req)
	if err != nil {
		writeError(c, "closures.close_edge", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"closure": closure})
}

// CloseNode closes a waypoint entirely
func (h *Handler) CloseNode(c *gin.Context) {
	if !h.closuresEnabled(c) {
		return
	}

	var req domain.CloseNodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	req.BuildingID = c.Param("building_id")
	if req.CreatedBy == "" {
		req.CreatedBy = c.GetHeader("X-User-Id")
	}

	closure, err := h.closures.CloseNode(c.Request.Context(), &req)
	if err != nil {
		writeError(c, "closures.close_node", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"closure": closure})
}

func (h *Handler) GetClosure(c *gin.Context) {
	if !h.closuresEnabled(c) {
		return
	}

	closure, err := h.closures.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, "closures.get", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"closure": closure})
}

// ReopenClosure deactivates a closure
func (h *Handler) ReopenClosure(c *gin.Context) {
	if !h.closuresEnabled(c) {
		return
	}

	closure, err := h.closures.Reopen(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, "closures.reopen", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"closure": closure})
}
