package http

import "github.com/gin-gonic/gin"

// Register registers the navigation routes under an /api/v1 group
func (h *Handler) Register(rg *gin.RouterGroup) {
	b := rg.Group("/buildings/:building_id")
	b.GET("/graph", h.GetGraph)
	b.GET("/graph.dot", h.GetGraphDOT)
	b.POST("/routes", h.rateLimit(), h.PlanRoute)

	b.GET("/closures", h.ListClosures)
	b.GET("/closures/state", h.GetClosureState)
	b.POST("/closures/edges", h.CloseEdge)
	b.POST("/closures/nodes", h.CloseNode)

	rg.GET("/closures/:id", h.GetClosure)
	rg.DELETE("/closures/:id", h.ReopenClosure)
}
