package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceIDFrom(c *gin.Context) string {
	v, _ := c.Get("trace_id")
	id, _ := v.(string)
	return id
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceIDFrom(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceIDFrom(c),
	})
}

func respondErr(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceIDFrom(c),
		Data:    data,
	})
}

// HandleServiceError maps the service error taxonomy onto HTTP responses.
// Quota denials keep their payload so clients can render "X of Y used".
func HandleServiceError(c *gin.Context, err error) {
	var limitErr *LimitReachedError
	if errors.As(err, &limitErr) {
		respondErr(c, http.StatusForbidden, limitErr.Message, limitErr)
		return
	}

	switch {
	case errors.Is(err, ErrTripNotFound),
		errors.Is(err, ErrItineraryNotFound),
		errors.Is(err, ErrDayNotFound),
		errors.Is(err, ErrPlaceNotFound),
		errors.Is(err, ErrAccountNotFound):
		respondErr(c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, ErrForbidden):
		respondErr(c, http.StatusForbidden, "You don't have access to this trip", nil)
	case errors.Is(err, ErrPastDayLocked):
		respondErr(c, http.StatusConflict, "That day has already passed and can't be edited", nil)
	case errors.Is(err, ErrDuplicatePlace):
		respondErr(c, http.StatusConflict, "That place is already in the itinerary", nil)
	case errors.Is(err, ErrInvalidInput):
		respondErr(c, http.StatusBadRequest, "Invalid request payload", nil)
	case errors.Is(err, ErrInvalidCredentials):
		respondErr(c, http.StatusUnauthorized, "Invalid email or password", nil)
	case errors.Is(err, ErrEmailAlreadyExists):
		respondErr(c, http.StatusConflict, "Email already registered", nil)
	case errors.Is(err, ErrUpstreamFailure):
		log.Printf("Upstream error: %v", err)
		respondErr(c, http.StatusBadGateway, "A provider we depend on is unavailable, try again", nil)
	case errors.Is(err, ErrDatabaseError):
		log.Printf("Database error: %v", err)
		respondErr(c, http.StatusInternalServerError, "Internal server error", nil)
	default:
		log.Printf("Unknown error: %v", err)
		respondErr(c, http.StatusInternalServerError, "Internal server error", nil)
	}
}
