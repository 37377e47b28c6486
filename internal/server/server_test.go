package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/Eursukkul/menulink/internal/dto"
	"github.com/Eursukkul/menulink/internal/models"
	"github.com/Eursukkul/menulink/internal/page"
	"github.com/Eursukkul/menulink/internal/realtime"
	"github.com/Eursukkul/menulink/internal/repository"
	"github.com/Eursukkul/menulink/internal/service"
	"github.com/Eursukkul/menulink/pkg/database"
	"github.com/Eursukkul/menulink/pkg/storage"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "server-test-secret"

type testServer struct {
	*httptest.Server
	token string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db, err := database.NewSQLiteDB(":memory:")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	hub := realtime.NewHub()
	go hub.Run(ctx)

	restaurantRepo := repository.NewRestaurantRepository(db)
	slotRepo := repository.NewTimeSlotRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	renderer, err := page.NewRenderer()
	require.NoError(t, err)

	e := New(Services{
		Reservations: service.NewReservationService(service.ReservationDeps{
			Restaurants:   restaurantRepo,
			Slots:         slotRepo,
			Reservations:  repository.NewReservationRepository(db),
			Customers:     repository.NewCustomerRepository(db),
			Notifications: notificationRepo,
			Publisher:     realtime.NewLocalPublisher(hub),
		}),
		Restaurants: service.NewRestaurantService(restaurantRepo, slotRepo, nil),
		Menu:        service.NewMenuService(menuRepo, nil),
		Profiles:    service.NewProfileService(profileRepo, nil),
		Pages: service.NewPageService(service.PageDeps{
			Restaurants: restaurantRepo,
			Menu:        menuRepo,
			Profile:     profileRepo,
			Analytics:   analyticsRepo,
			Assets:      storage.NewURLResolver("https://files.example.com", "public"),
		}),
		Analytics: service.NewAnalyticsService(analyticsRepo, notificationRepo, time.Second),
	}, hub, renderer, Options{
		AppName:   "menulink-test",
		JWTSecret: testSecret,
		CSRFKey:   bytes.Repeat([]byte("k"), 32),
	})

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "owner-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	return &testServer{Server: srv, token: token}
}

func (s *testServer) do(t *testing.T, method, path string, body any, auth bool) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, s.URL+path, r)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

// nextWeekday returns a date at least two days out that falls on day.
func nextWeekday(day time.Weekday) string {
	d := time.Now().UTC().AddDate(0, 0, 2)
	for d.Weekday() != day {
		d = d.AddDate(0, 0, 1)
	}
	return d.Format("2006-01-02")
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.do(t, http.MethodGet, "/health", nil, false)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "menulink-test")
}

func TestDashboard_RequiresTokenAndOnboarding(t *testing.T) {
	s := newTestServer(t)

	resp, _ := s.do(t, http.MethodGet, "/api/v1/dashboard/restaurant", nil, false)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = s.do(t, http.MethodGet, "/api/v1/dashboard/restaurant", nil, true)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestFullReservationFlow(t *testing.T) {
	s := newTestServer(t)
	date := nextWeekday(time.Monday)

	var restaurant models.Restaurant
	t.Run("onboard", func(t *testing.T) {
		resp, body := s.do(t, http.MethodPost, "/api/v1/dashboard/onboarding", dto.OnboardingRequest{
			Name:            "Casa Verde",
			ReservationMode: "form",
		}, true)
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
		require.NoError(t, json.Unmarshal(body, &restaurant))
		assert.Equal(t, "casa-verde", restaurant.Slug)

		resp, _ = s.do(t, http.MethodPost, "/api/v1/dashboard/onboarding", dto.OnboardingRequest{Name: "Again"}, true)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	var availability dto.AvailabilityResponse
	t.Run("availability", func(t *testing.T) {
		resp, body := s.do(t, http.MethodGet, "/api/v1/public/restaurants/casa-verde/availability?date="+date, nil, false)
		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
		require.NoError(t, json.Unmarshal(body, &availability))
		assert.True(t, availability.Available)
		assert.Equal(t, 8, availability.MaxPartySize)
		require.NotEmpty(t, availability.Times)
	})

	ws := s.subscribe(t, "dashboard-tab")

	var reservation dto.ReservationResponse
	t.Run("book", func(t *testing.T) {
		resp, body := s.do(t, http.MethodPost, "/api/v1/public/restaurants/casa-verde/reservations", dto.CreateReservationRequest{
			CustomerName:    "Ana",
			CustomerEmail:   "Ana@Example.com",
			PartySize:       2,
			ReservationDate: date,
			ReservationTime: availability.Times[0],
		}, false)
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
		require.NoError(t, json.Unmarshal(body, &reservation))
		assert.Equal(t, models.StatusPending, reservation.Status)
		assert.Equal(t, "ana@example.com", reservation.CustomerEmail)

		evt := readEvent(t, ws)
		assert.Equal(t, "reservation.created", evt.Type)
		assert.Equal(t, reservation.ID, evt.Reservation.ID)
	})

	t.Run("too large party", func(t *testing.T) {
		resp, _ := s.do(t, http.MethodPost, "/api/v1/public/restaurants/casa-verde/reservations", dto.CreateReservationRequest{
			CustomerName:    "Big Group",
			CustomerEmail:   "group@example.com",
			PartySize:       20,
			ReservationDate: date,
			ReservationTime: availability.Times[0],
		}, false)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("dashboard lifecycle", func(t *testing.T) {
		resp, body := s.do(t, http.MethodGet, "/api/v1/dashboard/reservations?status=pending", nil, true)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var list []dto.ReservationResponse
		require.NoError(t, json.Unmarshal(body, &list))
		require.Len(t, list, 1)

		path := fmt.Sprintf("/api/v1/dashboard/reservations/%d", reservation.ID)
		resp, _ = s.do(t, http.MethodDelete, path, nil, true)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)

		for _, status := range []string{"confirmed", "completed"} {
			resp, body = s.do(t, http.MethodPatch, path+"/status", dto.UpdateStatusRequest{Status: status}, true)
			require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
			assert.Equal(t, status, string(readEvent(t, ws).Reservation.Status))
		}

		resp, _ = s.do(t, http.MethodPatch, path+"/status", dto.UpdateStatusRequest{Status: "pending"}, true)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)

		resp, body = s.do(t, http.MethodGet, "/api/v1/dashboard/notifications", nil, true)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, string(body), "Thank you for dining with us, Ana")

		resp, _ = s.do(t, http.MethodDelete, path, nil, true)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("public page and analytics", func(t *testing.T) {
		resp, body := s.do(t, http.MethodGet, "/r/casa-verde?date="+date, nil, false)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, string(body), `<option value="12:00">12:00</option>`)
		assert.Contains(t, string(body), `<option value="19:00">19:00</option>`)
		assert.Contains(t, string(body), "Casa Verde")
		assert.Contains(t, string(body), `name="csrf_token"`)

		resp, _ = s.do(t, http.MethodPost, "/api/v1/public/restaurants/casa-verde/clicks", dto.ButtonClickRequest{ButtonType: "phone"}, false)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		resp, body = s.do(t, http.MethodGet, "/api/v1/dashboard/analytics?days=7", nil, true)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var summary dto.AnalyticsSummary
		require.NoError(t, json.Unmarshal(body, &summary))
		assert.Equal(t, 1, summary.TotalPageViews)
		assert.Equal(t, 1, summary.TotalClicks)
		assert.Equal(t, 1, summary.ClicksByButton["phone"])
		assert.Len(t, summary.PageViews, 7)
	})
}

func TestSiteForm_RejectsMissingCSRFToken(t *testing.T) {
	s := newTestServer(t)
	resp, body := s.do(t, http.MethodPost, "/api/v1/dashboard/onboarding", dto.OnboardingRequest{Name: "Casa Verde"}, true)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	form := url.Values{"customer_name": {"Ana"}, "customer_email": {"ana@example.com"}}
	req, err := http.NewRequest(http.MethodPost, s.URL+"/r/casa-verde/reserve", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err = s.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestPublicRoutes_UnknownSlug(t *testing.T) {
	s := newTestServer(t)

	resp, _ := s.do(t, http.MethodGet, "/api/v1/public/restaurants/nowhere/schedule", nil, false)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = s.do(t, http.MethodGet, "/r/nowhere", nil, false)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func (s *testServer) subscribe(t *testing.T, clientID string) *websocket.Conn {
	t.Helper()
	u := "ws" + strings.TrimPrefix(s.URL, "http") + "/api/v1/dashboard/realtime?client_id=" + clientID + "&access_token=" + s.token
	conn, resp, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	resp.Body.Close()
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) dto.ReservationEvent {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var evt dto.ReservationEvent
	require.NoError(t, conn.ReadJSON(&evt))
	return evt
}
