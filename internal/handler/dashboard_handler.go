package handler

import (
	"net/http"

	"github.com/Eursukkul/menulink/internal/availability"
	"github.com/Eursukkul/menulink/internal/dto"
	"github.com/Eursukkul/menulink/internal/middleware"
	"github.com/Eursukkul/menulink/internal/models"
	"github.com/Eursukkul/menulink/internal/repository"
	"github.com/Eursukkul/menulink/internal/service"
	"github.com/labstack/echo/v4"
)

// DashboardHandler serves the owner's restaurant settings, slots and
// reservations.
type DashboardHandler struct {
	restaurants  service.RestaurantService
	reservations service.ReservationService
}

func NewDashboardHandler(restaurants service.RestaurantService, reservations service.ReservationService) *DashboardHandler {
	return &DashboardHandler{restaurants: restaurants, reservations: reservations}
}

// RegisterRoutes mounts onboarding on g and everything else on owned, which
// must carry middleware.RequireRestaurant.
func (h *DashboardHandler) RegisterRoutes(g, owned *echo.Group) {
	g.POST("/onboarding", h.Onboard)

	owned.GET("/restaurant", h.GetRestaurant)
	owned.PATCH("/restaurant", h.UpdateRestaurant)

	owned.GET("/slots", h.ListSlots)
	owned.POST("/slots", h.CreateSlot)
	owned.PUT("/slots/:id", h.UpdateSlot)
	owned.DELETE("/slots/:id", h.DeleteSlot)

	owned.GET("/reservations", h.ListReservations)
	owned.PATCH("/reservations/:id/status", h.UpdateReservationStatus)
	owned.DELETE("/reservations/:id", h.DeleteReservation)
}

func (h *DashboardHandler) Onboard(c echo.Context) error {
	var req dto.OnboardingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	restaurant, err := h.restaurants.Onboard(c.Request().Context(), middleware.UserID(c), req)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, restaurant)
}

func (h *DashboardHandler) GetRestaurant(c echo.Context) error {
	return c.JSON(http.StatusOK, middleware.Restaurant(c))
}

func (h *DashboardHandler) UpdateRestaurant(c echo.Context) error {
	var req dto.UpdateRestaurantRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	restaurant, err := h.restaurants.Update(c.Request().Context(), middleware.Restaurant(c), req)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, restaurant)
}

func (h *DashboardHandler) ListSlots(c echo.Context) error {
	slots, err := h.restaurants.ListSlots(c.Request().Context(), middleware.Restaurant(c).ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, slots)
}

func (h *DashboardHandler) CreateSlot(c echo.Context) error {
	var req dto.TimeSlotRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	slot, err := h.restaurants.CreateSlot(c.Request().Context(), middleware.Restaurant(c).ID, req)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, slot)
}

func (h *DashboardHandler) UpdateSlot(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.TimeSlotRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	slot, err := h.restaurants.UpdateSlot(c.Request().Context(), middleware.Restaurant(c).ID, id, req)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, slot)
}

func (h *DashboardHandler) DeleteSlot(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.restaurants.DeleteSlot(c.Request().Context(), middleware.Restaurant(c).ID, id); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *DashboardHandler) ListReservations(c echo.Context) error {
	var filter repository.ReservationFilter
	if s := c.QueryParam("status"); s != "" {
		status, ok := models.ParseReservationStatus(s)
		if !ok {
			return toHTTPError(service.ErrInvalidStatus)
		}
		filter.Status = &status
	}
	if d := c.QueryParam("date"); d != "" {
		if _, err := availability.ParseDate(d); err != nil {
			return toHTTPError(err)
		}
		filter.Date = d
	}

	reservations, err := h.reservations.ListReservations(c.Request().Context(), middleware.Restaurant(c).ID, filter)
	if err != nil {
		return err
	}
	resp := make([]dto.ReservationResponse, len(reservations))
	for i := range reservations {
		resp[i] = dto.ToReservationResponse(&reservations[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *DashboardHandler) UpdateReservationStatus(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	status, ok := models.ParseReservationStatus(req.Status)
	if !ok {
		return toHTTPError(service.ErrInvalidStatus)
	}

	result, err := h.reservations.TransitionStatus(c.Request().Context(), middleware.Restaurant(c).ID, id, status, middleware.ClientID(c))
	if err != nil {
		return toHTTPError(err)
	}
	resp := dto.TransitionResponse{Reservation: dto.ToReservationResponse(result.Reservation)}
	if result.NotificationErr != nil {
		resp.Warning = "status updated but the thank-you notification failed"
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *DashboardHandler) DeleteReservation(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.reservations.DeleteReservation(c.Request().Context(), middleware.Restaurant(c).ID, id); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
