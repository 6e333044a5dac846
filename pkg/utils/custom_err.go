package utils

import (
	"errors"
	"fmt"
)

var (
	ErrTripNotFound      = errors.New("trip not found")
	ErrItineraryNotFound = errors.New("itinerary not found")
	ErrDayNotFound       = errors.New("day not found")
	ErrPlaceNotFound     = errors.New("place not found")
	ErrAccountNotFound   = errors.New("account not found")

	ErrForbidden      = errors.New("forbidden")
	ErrPastDayLocked  = errors.New("day is in the past")
	ErrDuplicatePlace = errors.New("place already in itinerary")
	ErrInvalidInput   = errors.New("invalid input")

	ErrUpstreamFailure = errors.New("upstream provider failed")
	ErrDatabaseError   = errors.New("database error")

	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// LimitReachedError is returned when a quota ceiling blocks a consuming
// action. It carries enough for the client to render "X of Y used".
type LimitReachedError struct {
	Counter  string `json:"counter"`
	Limit    int    `json:"limit"`
	Used     int    `json:"used"`
	Upgraded bool   `json:"upgraded"`
	Message  string `json:"message"`
}

func (e *LimitReachedError) Error() string {
	return fmt.Sprintf("%s limit reached (%d of %d used)", e.Counter, e.Used, e.Limit)
}

func NewLimitReachedError(counter string, limit, used int, upgraded bool) *LimitReachedError {
	msg := fmt.Sprintf("You've used all %d %s for this trip. Upgrade to keep editing.", limit, counter)
	if upgraded {
		msg = fmt.Sprintf("You've hit the %s limit for this trip (%d of %d used).", counter, used, limit)
	}
	return &LimitReachedError{
		Counter:  counter,
		Limit:    limit,
		Used:     used,
		Upgraded: upgraded,
		Message:  msg,
	}
}
