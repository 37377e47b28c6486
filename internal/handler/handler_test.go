package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Eursukkul/menulink/internal/dto"
	"github.com/Eursukkul/menulink/internal/middleware"
	"github.com/Eursukkul/menulink/internal/models"
	"github.com/Eursukkul/menulink/internal/page"
	"github.com/Eursukkul/menulink/internal/repository"
	"github.com/Eursukkul/menulink/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock ReservationService ---

type mockReservationService struct {
	availabilityFn func(ctx context.Context, slug, date string) (*dto.AvailabilityResponse, error)
	scheduleFn     func(ctx context.Context, slug string) (dto.ScheduleResponse, error)
	createFn       func(ctx context.Context, slug string, req dto.CreateReservationRequest, origin string) (*models.Reservation, error)
	listFn         func(ctx context.Context, restaurantID uint, filter repository.ReservationFilter) ([]models.Reservation, error)
	transitionFn   func(ctx context.Context, restaurantID, id uint, to models.ReservationStatus, origin string) (*service.TransitionResult, error)
	deleteFn       func(ctx context.Context, restaurantID, id uint) error
}

func (m *mockReservationService) Availability(ctx context.Context, slug, date string) (*dto.AvailabilityResponse, error) {
	if m.availabilityFn == nil {
		return &dto.AvailabilityResponse{Date: date, Times: []string{}, MaxPartySize: 4}, nil
	}
	return m.availabilityFn(ctx, slug, date)
}
func (m *mockReservationService) Schedule(ctx context.Context, slug string) (dto.ScheduleResponse, error) {
	if m.scheduleFn == nil {
		return dto.ScheduleResponse{}, nil
	}
	return m.scheduleFn(ctx, slug)
}
func (m *mockReservationService) CreateReservation(ctx context.Context, slug string, req dto.CreateReservationRequest, origin string) (*models.Reservation, error) {
	return m.createFn(ctx, slug, req, origin)
}
func (m *mockReservationService) ListReservations(ctx context.Context, restaurantID uint, filter repository.ReservationFilter) ([]models.Reservation, error) {
	return m.listFn(ctx, restaurantID, filter)
}
func (m *mockReservationService) TransitionStatus(ctx context.Context, restaurantID, id uint, to models.ReservationStatus, origin string) (*service.TransitionResult, error) {
	return m.transitionFn(ctx, restaurantID, id, to, origin)
}
func (m *mockReservationService) DeleteReservation(ctx context.Context, restaurantID, id uint) error {
	return m.deleteFn(ctx, restaurantID, id)
}

// --- Mock PageService ---

type mockPageService struct {
	loadFn  func(ctx context.Context, slug string) (*page.ViewModel, error)
	clickFn func(ctx context.Context, slug string, req dto.ButtonClickRequest) error
	views   []uint
}

func (m *mockPageService) Load(ctx context.Context, slug string) (*page.ViewModel, error) {
	return m.loadFn(ctx, slug)
}
func (m *mockPageService) RecordPageView(_ context.Context, restaurantID uint, _, _ string) {
	m.views = append(m.views, restaurantID)
}
func (m *mockPageService) RecordClick(ctx context.Context, slug string, req dto.ButtonClickRequest) error {
	return m.clickFn(ctx, slug, req)
}

// --- Mock AnalyticsService ---

type mockAnalyticsService struct {
	summaryFn func(ctx context.Context, restaurantID uint, days int) (*dto.AnalyticsSummary, error)
}

func (m *mockAnalyticsService) Summary(ctx context.Context, restaurantID uint, days int) (*dto.AnalyticsSummary, error) {
	return m.summaryFn(ctx, restaurantID, days)
}
func (m *mockAnalyticsService) ListNotifications(context.Context, uint) ([]models.Notification, error) {
	return []models.Notification{}, nil
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewRequestValidator()
	return e
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func assertHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, code, he.Code)
}

const validBooking = `{"customer_name":"Ana","customer_email":"ana@example.com","party_size":2,"reservation_date":"2030-06-03","reservation_time":"13:00"}`

func TestCreateReservation_Success(t *testing.T) {
	e := newEcho()
	req := jsonRequest(http.MethodPost, "/", validBooking)
	req.Header.Set("X-Client-ID", "tab-1")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("slug")
	c.SetParamValues("casa-luz")

	svc := &mockReservationService{
		createFn: func(_ context.Context, slug string, r dto.CreateReservationRequest, origin string) (*models.Reservation, error) {
			assert.Equal(t, "casa-luz", slug)
			assert.Equal(t, "tab-1", origin)
			return &models.Reservation{ID: 1, CustomerName: r.CustomerName, PartySize: r.PartySize, Status: models.StatusPending, CreatedAt: time.Now()}, nil
		},
	}
	h := NewPublicHandler(svc, &mockPageService{})

	require.NoError(t, h.CreateReservation(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp dto.ReservationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.StatusPending, resp.Status)
	assert.Equal(t, "Ana", resp.CustomerName)
}

func TestCreateReservation_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"unknown restaurant", service.ErrRestaurantNotFound, http.StatusNotFound},
		{"disabled", service.ErrReservationsDisabled, http.StatusForbidden},
		{"time not available", service.ErrTimeNotAvailable, http.StatusConflict},
		{"slot full", service.ErrSlotFull, http.StatusConflict},
		{"party too large", service.ErrPartyTooLarge, http.StatusUnprocessableEntity},
		{"past date", service.ErrDateInPast, http.StatusBadRequest},
		{"bad time", service.ErrInvalidTime, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEcho()
			c := e.NewContext(jsonRequest(http.MethodPost, "/", validBooking), httptest.NewRecorder())
			c.SetParamNames("slug")
			c.SetParamValues("casa-luz")

			svc := &mockReservationService{
				createFn: func(context.Context, string, dto.CreateReservationRequest, string) (*models.Reservation, error) {
					return nil, tt.err
				},
			}
			err := NewPublicHandler(svc, &mockPageService{}).CreateReservation(c)
			assertHTTPError(t, err, tt.wantCode)
		})
	}
}

func TestCreateReservation_ValidationError(t *testing.T) {
	e := newEcho()
	c := e.NewContext(jsonRequest(http.MethodPost, "/", `{"customer_name":"Ana","customer_email":"nope","party_size":0}`), httptest.NewRecorder())
	c.SetParamNames("slug")
	c.SetParamValues("casa-luz")

	err := NewPublicHandler(&mockReservationService{}, &mockPageService{}).CreateReservation(c)
	assertHTTPError(t, err, http.StatusBadRequest)
}

func TestGetAvailability(t *testing.T) {
	e := newEcho()

	t.Run("requires date", func(t *testing.T) {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		err := NewPublicHandler(&mockReservationService{}, &mockPageService{}).GetAvailability(c)
		assertHTTPError(t, err, http.StatusBadRequest)
	})

	t.Run("returns times", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/?date=2030-06-03", nil), rec)
		c.SetParamNames("slug")
		c.SetParamValues("casa-luz")
		svc := &mockReservationService{
			availabilityFn: func(_ context.Context, _ string, date string) (*dto.AvailabilityResponse, error) {
				return &dto.AvailabilityResponse{Date: date, DayOfWeek: 1, Times: []string{"12:00", "19:00"}, MaxPartySize: 8, Available: true}, nil
			},
		}
		require.NoError(t, NewPublicHandler(svc, &mockPageService{}).GetAvailability(c))

		var resp dto.AvailabilityResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, []string{"12:00", "19:00"}, resp.Times)
		assert.True(t, resp.Available)
	})
}

func TestRecordClick(t *testing.T) {
	e := newEcho()

	t.Run("records", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(jsonRequest(http.MethodPost, "/", `{"button_type":"phone"}`), rec)
		c.SetParamNames("slug")
		c.SetParamValues("casa-luz")
		pages := &mockPageService{clickFn: func(_ context.Context, _ string, req dto.ButtonClickRequest) error {
			assert.Equal(t, "phone", req.ButtonType)
			return nil
		}}
		require.NoError(t, NewPublicHandler(&mockReservationService{}, pages).RecordClick(c))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("rejects unknown button", func(t *testing.T) {
		c := e.NewContext(jsonRequest(http.MethodPost, "/", `{"button_type":"fax"}`), httptest.NewRecorder())
		err := NewPublicHandler(&mockReservationService{}, &mockPageService{}).RecordClick(c)
		assertHTTPError(t, err, http.StatusBadRequest)
	})
}

func withRestaurant(c echo.Context) {
	middleware.SetRestaurant(c, &models.Restaurant{ID: 5, Slug: "casa-luz", OwnerID: "user-1"})
}

func TestUpdateReservationStatus(t *testing.T) {
	e := newEcho()

	t.Run("reports notification warning", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(jsonRequest(http.MethodPatch, "/", `{"status":"completed"}`), rec)
		c.SetParamNames("id")
		c.SetParamValues("9")
		withRestaurant(c)

		svc := &mockReservationService{
			transitionFn: func(_ context.Context, rid, id uint, to models.ReservationStatus, _ string) (*service.TransitionResult, error) {
				assert.Equal(t, uint(5), rid)
				assert.Equal(t, uint(9), id)
				return &service.TransitionResult{
					Reservation:     &models.Reservation{ID: id, Status: to},
					NotificationErr: assert.AnError,
				}, nil
			},
		}
		require.NoError(t, NewDashboardHandler(nil, svc).UpdateReservationStatus(c))

		var resp dto.TransitionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, models.StatusCompleted, resp.Reservation.Status)
		assert.NotEmpty(t, resp.Warning)
	})

	t.Run("unknown status", func(t *testing.T) {
		c := e.NewContext(jsonRequest(http.MethodPatch, "/", `{"status":"seated"}`), httptest.NewRecorder())
		c.SetParamNames("id")
		c.SetParamValues("9")
		withRestaurant(c)
		err := NewDashboardHandler(nil, &mockReservationService{}).UpdateReservationStatus(c)
		assertHTTPError(t, err, http.StatusBadRequest)
	})

	t.Run("invalid transition", func(t *testing.T) {
		c := e.NewContext(jsonRequest(http.MethodPatch, "/", `{"status":"pending"}`), httptest.NewRecorder())
		c.SetParamNames("id")
		c.SetParamValues("9")
		withRestaurant(c)
		svc := &mockReservationService{
			transitionFn: func(context.Context, uint, uint, models.ReservationStatus, string) (*service.TransitionResult, error) {
				return nil, service.ErrInvalidTransition
			},
		}
		err := NewDashboardHandler(nil, svc).UpdateReservationStatus(c)
		assertHTTPError(t, err, http.StatusConflict)
	})

	t.Run("bad id", func(t *testing.T) {
		c := e.NewContext(jsonRequest(http.MethodPatch, "/", `{"status":"confirmed"}`), httptest.NewRecorder())
		c.SetParamNames("id")
		c.SetParamValues("abc")
		err := NewDashboardHandler(nil, &mockReservationService{}).UpdateReservationStatus(c)
		assertHTTPError(t, err, http.StatusBadRequest)
	})
}

func TestDeleteReservation_NotTerminal(t *testing.T) {
	e := newEcho()
	c := e.NewContext(httptest.NewRequest(http.MethodDelete, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("3")
	withRestaurant(c)
	svc := &mockReservationService{deleteFn: func(context.Context, uint, uint) error { return service.ErrNotTerminal }}

	err := NewDashboardHandler(nil, svc).DeleteReservation(c)
	assertHTTPError(t, err, http.StatusConflict)
}

func TestListReservations_ParsesFilter(t *testing.T) {
	e := newEcho()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/?status=confirmed&date=2030-06-03", nil), rec)
	withRestaurant(c)

	svc := &mockReservationService{
		listFn: func(_ context.Context, _ uint, f repository.ReservationFilter) ([]models.Reservation, error) {
			require.NotNil(t, f.Status)
			assert.Equal(t, models.StatusConfirmed, *f.Status)
			assert.Equal(t, "2030-06-03", f.Date)
			return []models.Reservation{{ID: 1, Status: models.StatusConfirmed}}, nil
		},
	}
	require.NoError(t, NewDashboardHandler(nil, svc).ListReservations(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	bad := e.NewContext(httptest.NewRequest(http.MethodGet, "/?date=June", nil), httptest.NewRecorder())
	withRestaurant(bad)
	assertHTTPError(t, NewDashboardHandler(nil, svc).ListReservations(bad), http.StatusBadRequest)
}

func TestAnalyticsSummary(t *testing.T) {
	e := newEcho()

	t.Run("passes days", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/?days=30", nil), rec)
		withRestaurant(c)
		svc := &mockAnalyticsService{summaryFn: func(_ context.Context, _ uint, days int) (*dto.AnalyticsSummary, error) {
			assert.Equal(t, 30, days)
			return &dto.AnalyticsSummary{Days: days}, nil
		}}
		require.NoError(t, NewAnalyticsHandler(svc).GetSummary(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("timeout is 504", func(t *testing.T) {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		withRestaurant(c)
		svc := &mockAnalyticsService{summaryFn: func(context.Context, uint, int) (*dto.AnalyticsSummary, error) {
			return nil, service.ErrAnalyticsTimeout
		}}
		assertHTTPError(t, NewAnalyticsHandler(svc).GetSummary(c), http.StatusGatewayTimeout)
	})

	t.Run("non numeric days", func(t *testing.T) {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/?days=week", nil), httptest.NewRecorder())
		withRestaurant(c)
		assertHTTPError(t, NewAnalyticsHandler(&mockAnalyticsService{}).GetSummary(c), http.StatusBadRequest)
	})
}
