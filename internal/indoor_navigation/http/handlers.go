package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/GoSim-25-26J-441/indoor-nav-backend/internal/indoor_navigation/export"
	"github.com/GoSim-25-26J-441/indoor-nav-backend/internal/indoor_navigation/routing"
	"github.com/gin-gonic/gin"
)

// GetGraph returns the synthesized graph of a building, each edge once.
// ?floors=1,2 limits it to those floors.
func (h *Handler) GetGraph(c *gin.Context) {
	buildingID := c.Param("building_id")

	floors, err := parseFloors(c.Query("floors"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	es, wps, err := h.nav.BuildFloorGraph(c.Request.Context(), buildingID, floors)
	if err != nil {
		writeError(c, "navigation.get_graph", err)
		return
	}

	c.JSON(http.StatusOK, export.NewGraphDocument(buildingID, h.nav.Config(), wps, es))
}

// GetGraphDOT renders the building graph for Graphviz, closures highlighted
func (h *Handler) GetGraphDOT(c *gin.Context) {
	buildingID := c.Param("building_id")

	es, wps, err := h.nav.BuildGraph(c.Request.Context(), buildingID)
	if err != nil {
		writeError(c, "navigation.get_graph_dot", err)
		return
	}

	closed := routing.NoClosures
	if h.closures != nil {
		snap, err := h.closures.Snapshot(c.Request.Context(), buildingID)
		if err != nil {
			writeError(c, "navigation.get_graph_dot", err)
			return
		}
		closed = snap
	}

	c.String(http.StatusOK, export.ToDOT(es, wps, closed, buildingID))
}

// PlanRoute returns the shortest open route between two waypoints
func (h *Handler) PlanRoute(c *gin.Context) {
	var body routeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_id and end_id are required"})
		return
	}

	route, err := h.nav.Route(c.Request.Context(), c.Param("building_id"), body.StartID, body.EndID)
	if err != nil {
		writeError(c, "navigation.plan_route", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"route": route})
}

func parseFloors(raw string) ([]int, error) {
	if raw == "" {
		return nil, nil
	}
	var floors []int
	for _, part := range strings.Split(raw, ",") {
		f, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid floor %q", part)
		}
		floors = append(floors, f)
	}
	return floors, nil
}
