package http

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/wanderplan/flight-engine/internal/adapter/http/response"
	"github.com/wanderplan/flight-engine/internal/domain"
	"github.com/wanderplan/flight-engine/internal/usecase"
)

// serviceName appears in the health check response.
const serviceName = "flight-engine"

// FlightHandler handles HTTP requests for the flight search endpoints.
type FlightHandler struct {
	engine usecase.SearchEngine
}

// NewFlightHandler creates a FlightHandler over the given search engine.
func NewFlightHandler(engine usecase.SearchEngine) *FlightHandler {
	return &FlightHandler{engine: engine}
}

// SearchFlights handles POST /api/v1/flights/search.
func (h *FlightHandler) SearchFlights(c echo.Context) error {
	var req SearchFlightsRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}

	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	result, err := h.engine.Search(c.Request().Context(), ToDomainRequest(&req), ToSearchOptions(&req))
	if err != nil {
		return h.handleError(c, err)
	}

	return response.SearchResults(c, result)
}

// handleValidationError maps DTO validation failures to a 400 response with
// field details.
func (h *FlightHandler) handleValidationError(c echo.Context, err error) error {
	var validationErrs *ValidationErrors
	if errors.As(err, &validationErrs) {
		return response.ValidationError(c, validationErrs.ToMap())
	}
	return response.ValidationErrorWithMessage(c, err.Error())
}

// handleError maps engine errors to HTTP responses. The engine absorbs
// provider failures into the response body, so anything surfacing here is a
// request-level problem.
func (h *FlightHandler) handleError(c echo.Context, err error) error {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return response.ValidationError(c, map[string]string{vErr.Field: vErr.Message})
	}

	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return response.ValidationErrorWithMessage(c, err.Error())
	case errors.Is(err, domain.ErrAllProvidersFailed):
		return response.ServiceUnavailable(c)
	case errors.Is(err, context.DeadlineExceeded):
		return response.GatewayTimeout(c)
	case errors.Is(err, context.Canceled):
		return response.RequestCancelled(c)
	default:
		return response.InternalServerError(c)
	}
}

// Health handles GET /health.
func (h *FlightHandler) Health(c echo.Context) error {
	return response.Health(c, serviceName)
}
