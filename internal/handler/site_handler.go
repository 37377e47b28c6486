package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Eursukkul/menulink/internal/availability"
	"github.com/Eursukkul/menulink/internal/dto"
	"github.com/Eursukkul/menulink/internal/middleware"
	"github.com/Eursukkul/menulink/internal/models"
	"github.com/Eursukkul/menulink/internal/page"
	"github.com/Eursukkul/menulink/internal/service"
	"github.com/Eursukkul/menulink/pkg/logger"
	"github.com/gorilla/csrf"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// SiteHandler renders the public restaurant pages.
type SiteHandler struct {
	pages        service.PageService
	reservations service.ReservationService
	renderer     *page.Renderer
	now          func() time.Time
}

func NewSiteHandler(pages service.PageService, reservations service.ReservationService, renderer *page.Renderer) *SiteHandler {
	return &SiteHandler{pages: pages, reservations: reservations, renderer: renderer, now: time.Now}
}

// RegisterRoutes mounts the pages on g. The group is expected to carry the
// CSRF middleware.
func (h *SiteHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/:slug", h.ShowPage)
	g.POST("/:slug/reserve", h.SubmitReservation)
}

// ShowPage renders the page with the booking form set to ?date=, today by
// default.
func (h *SiteHandler) ShowPage(c echo.Context) error {
	ctx := c.Request().Context()
	vm, err := h.pages.Load(ctx, c.Param("slug"))
	if err != nil {
		return toHTTPError(err)
	}
	h.pages.RecordPageView(ctx, vm.RestaurantID, c.Request().Referer(), c.Request().UserAgent())

	date := c.QueryParam("date")
	if date == "" {
		return h.render(c, http.StatusOK, vm, h.today(), "", false)
	}
	if _, err := availability.ParseDate(date); err != nil {
		return h.render(c, http.StatusBadRequest, vm, h.today(), err.Error(), true)
	}
	return h.render(c, http.StatusOK, vm, date, "", false)
}

func (h *SiteHandler) SubmitReservation(c echo.Context) error {
	ctx := c.Request().Context()
	slug := c.Param("slug")
	vm, err := h.pages.Load(ctx, slug)
	if err != nil {
		return toHTTPError(err)
	}

	var req dto.CreateReservationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return h.renderFailure(c, vm, h.formDate(req.ReservationDate), err)
	}

	reservation, err := h.reservations.CreateReservation(ctx, slug, req, middleware.ClientID(c))
	if err != nil {
		return h.renderFailure(c, vm, h.formDate(req.ReservationDate), toHTTPError(err))
	}

	flash := fmt.Sprintf("Thank you, %s. Your request for %d on %s at %s has been received.",
		reservation.CustomerName, reservation.PartySize, reservation.ReservationDate, reservation.ReservationTime)
	return h.render(c, http.StatusCreated, vm, reservation.ReservationDate, flash, false)
}

// renderFailure shows client errors as a flash on the page itself.
func (h *SiteHandler) renderFailure(c echo.Context, vm *page.ViewModel, date string, err error) error {
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code >= http.StatusInternalServerError {
		return err
	}
	msg, _ := he.Message.(string)
	if msg == "" {
		msg = http.StatusText(he.Code)
	}
	return h.render(c, he.Code, vm, date, msg, true)
}

func (h *SiteHandler) render(c echo.Context, code int, vm *page.ViewModel, date, flash string, isError bool) error {
	data := page.Data{
		ViewModel:    vm,
		CSRFField:    csrf.TemplateField(c.Request()),
		FormAction:   "/r/" + vm.Slug + "/reserve",
		Flash:        flash,
		FlashIsError: isError,
		PageAction:   "/r/" + vm.Slug,
		Date:         date,
	}
	if vm.ReservationMode == models.ReservationForm {
		h.fillAvailability(c, &data)
	}

	var buf bytes.Buffer
	if err := h.renderer.ForVariant(vm.Theme.Variant).Render(&buf, data); err != nil {
		return fmt.Errorf("render %s: %w", vm.Slug, err)
	}
	return c.HTMLBlob(code, buf.Bytes())
}

// fillAvailability offers the bookable times and party sizes for data.Date.
// A failed lookup leaves the form in its no-availability state.
func (h *SiteHandler) fillAvailability(c echo.Context, data *page.Data) {
	largest := availability.DefaultMaxPartySize
	resp, err := h.reservations.Availability(c.Request().Context(), data.Slug, data.Date)
	if err != nil {
		logger.Ctx(c.Request().Context()).Warn("availability lookup failed",
			zap.String("slug", data.Slug), zap.String("date", data.Date), zap.Error(err))
	} else {
		data.Times = resp.Times
		data.Available = resp.Available
		largest = resp.MaxPartySize
	}

	data.PartySizes = make([]int, largest)
	for i := range data.PartySizes {
		data.PartySizes[i] = i + 1
	}
}

func (h *SiteHandler) today() string {
	return h.now().UTC().Format(availability.DateLayout)
}

// formDate keeps the submitted date selected when it parses.
func (h *SiteHandler) formDate(date string) string {
	if _, err := availability.ParseDate(date); err != nil {
		return h.today()
	}
	return date
}
