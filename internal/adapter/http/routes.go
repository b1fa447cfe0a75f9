package http

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes attaches the API endpoints to the Echo instance.
func RegisterRoutes(e *echo.Echo, h *FlightHandler) {
	e.GET("/health", h.Health)

	api := e.Group("/api/v1")
	flights := api.Group("/flights")
	flights.POST("/search", h.SearchFlights)
}
