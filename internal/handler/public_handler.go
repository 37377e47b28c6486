package handler

import (
	"net/http"

	"github.com/Eursukkul/menulink/internal/dto"
	"github.com/Eursukkul/menulink/internal/middleware"
	"github.com/Eursukkul/menulink/internal/service"
	"github.com/labstack/echo/v4"
)

// PublicHandler serves the unauthenticated JSON API used by the booking
// widget and the public page scripts.
type PublicHandler struct {
	reservations service.ReservationService
	pages        service.PageService
}

func NewPublicHandler(reservations service.ReservationService, pages service.PageService) *PublicHandler {
	return &PublicHandler{reservations: reservations, pages: pages}
}

func (h *PublicHandler) RegisterRoutes(g *echo.Group) {
	r := g.Group("/restaurants/:slug")
	r.GET("/availability", h.GetAvailability)
	r.GET("/schedule", h.GetSchedule)
	r.POST("/reservations", h.CreateReservation)
	r.POST("/clicks", h.RecordClick)
}

func (h *PublicHandler) GetAvailability(c echo.Context) error {
	date := c.QueryParam("date")
	if date == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "date is required")
	}

	resp, err := h.reservations.Availability(c.Request().Context(), c.Param("slug"), date)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *PublicHandler) GetSchedule(c echo.Context) error {
	resp, err := h.reservations.Schedule(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *PublicHandler) CreateReservation(c echo.Context) error {
	var req dto.CreateReservationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	reservation, err := h.reservations.CreateReservation(c.Request().Context(), c.Param("slug"), req, middleware.ClientID(c))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToReservationResponse(reservation))
}

func (h *PublicHandler) RecordClick(c echo.Context) error {
	var req dto.ButtonClickRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.pages.RecordClick(c.Request().Context(), c.Param("slug"), req); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
