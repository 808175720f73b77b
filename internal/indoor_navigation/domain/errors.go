package domain

import "errors"

var (
	ErrUnknownWaypoint      = errors.New("unknown waypoint")
	ErrNoPath               = errors.New("no path between waypoints")
	ErrInvalidConfiguration = errors.New("invalid graph configuration")
	ErrInvalidWaypoints     = errors.New("invalid waypoint set")
	ErrInvalidEdge          = errors.New("invalid edge")

	ErrClosureNotFound    = errors.New("closure not found")
	ErrInvalidClosureType = errors.New("invalid closure type")
	ErrInvalidClosure     = errors.New("invalid closure")
	ErrBuildingNotFound   = errors.New("building not found")
)
