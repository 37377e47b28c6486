package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Eursukkul/menulink/internal/service"
	"github.com/labstack/echo/v4"
)

// toHTTPError maps service errors onto status codes. Anything unknown is a
// 500 and its text stays in the logs.
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, service.ErrRestaurantNotFound),
		errors.Is(err, service.ErrReservationNotFound),
		errors.Is(err, service.ErrSlotNotFound),
		errors.Is(err, service.ErrCategoryNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrReservationsDisabled):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrPartyTooLarge):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrTimeNotAvailable),
		errors.Is(err, service.ErrSlotFull),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrNotTerminal),
		errors.Is(err, service.ErrAlreadyOnboarded),
		errors.Is(err, service.ErrSlugTaken),
		errors.Is(err, service.ErrOnboardingRequired):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, service.ErrInvalidTime),
		errors.Is(err, service.ErrDateInPast),
		errors.Is(err, service.ErrInvalidPartySize),
		errors.Is(err, service.ErrCustomerDetails),
		errors.Is(err, service.ErrInvalidSlug),
		errors.Is(err, service.ErrEmptyName),
		errors.Is(err, service.ErrInvalidReservationMode),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidSlotWindow):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrAnalyticsTimeout):
		return echo.NewHTTPError(http.StatusGatewayTimeout, err.Error())
	default:
		return err
	}
}

func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return uint(id), nil
}
