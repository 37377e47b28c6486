package handler

import (
	"net/http"
	"strconv"

	"github.com/Eursukkul/menulink/internal/middleware"
	"github.com/Eursukkul/menulink/internal/service"
	"github.com/labstack/echo/v4"
)

type AnalyticsHandler struct {
	analytics service.AnalyticsService
}

func NewAnalyticsHandler(analytics service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

func (h *AnalyticsHandler) RegisterRoutes(owned *echo.Group) {
	owned.GET("/analytics", h.GetSummary)
	owned.GET("/notifications", h.ListNotifications)
}

func (h *AnalyticsHandler) GetSummary(c echo.Context) error {
	days := 0
	if raw := c.QueryParam("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "days must be a number")
		}
		days = n
	}

	summary, err := h.analytics.Summary(c.Request().Context(), middleware.Restaurant(c).ID, days)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, summary)
}

func (h *AnalyticsHandler) ListNotifications(c echo.Context) error {
	notifications, err := h.analytics.ListNotifications(c.Request().Context(), middleware.Restaurant(c).ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notifications)
}
