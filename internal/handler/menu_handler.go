package handler

import (
	"net/http"

	"github.com/Eursukkul/menulink/internal/dto"
	"github.com/Eursukkul/menulink/internal/middleware"
	"github.com/Eursukkul/menulink/internal/service"
	"github.com/labstack/echo/v4"
)

type MenuHandler struct {
	menu     service.MenuService
	profiles service.ProfileService
}

func NewMenuHandler(menu service.MenuService, profiles service.ProfileService) *MenuHandler {
	return &MenuHandler{menu: menu, profiles: profiles}
}

func (h *MenuHandler) RegisterRoutes(owned *echo.Group) {
	owned.GET("/menu", h.GetMenu)
	owned.POST("/menu/categories", h.CreateCategory)
	owned.POST("/menu/items", h.CreateItem)

	owned.GET("/contact", h.GetProfile)
	owned.PUT("/contact", h.UpdateContact)
	owned.POST("/links", h.CreateLink)
}

func (h *MenuHandler) GetMenu(c echo.Context) error {
	menu, err := h.menu.GetMenu(c.Request().Context(), middleware.Restaurant(c).ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, menu)
}

func (h *MenuHandler) CreateCategory(c echo.Context) error {
	var req dto.CreateCategoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	category, err := h.menu.CreateCategory(c.Request().Context(), middleware.Restaurant(c), req)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, category)
}

func (h *MenuHandler) CreateItem(c echo.Context) error {
	var req dto.CreateMenuItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	item, err := h.menu.CreateItem(c.Request().Context(), middleware.Restaurant(c), req)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, item)
}

func (h *MenuHandler) GetProfile(c echo.Context) error {
	profile, err := h.profiles.GetProfile(c.Request().Context(), middleware.Restaurant(c).ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *MenuHandler) UpdateContact(c echo.Context) error {
	var req dto.UpdateContactRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	profile, err := h.profiles.UpdateContact(c.Request().Context(), middleware.Restaurant(c), req)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *MenuHandler) CreateLink(c echo.Context) error {
	var req dto.CreateLinkRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	link, err := h.profiles.AddLink(c.Request().Context(), middleware.Restaurant(c), req)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, link)
}
