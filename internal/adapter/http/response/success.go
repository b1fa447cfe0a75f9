package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthResponse is the health check response body.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// Health writes a health check response.
func Health(c echo.Context, service string) error {
	return c.JSON(http.StatusOK, &HealthResponse{
		Status:  "ok",
		Service: service,
	})
}

// SearchResults writes a 200 OK response with search results. The search
// response carries its own success flag, so no extra envelope is added.
func SearchResults(c echo.Context, results interface{}) error {
	return c.JSON(http.StatusOK, results)
}
