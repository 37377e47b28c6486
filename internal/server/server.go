// Package server assembles the HTTP surface: middleware, route groups and
// handlers.
package server

import (
	"net/http"

	"github.com/Eursukkul/menulink/internal/handler"
	"github.com/Eursukkul/menulink/internal/middleware"
	"github.com/Eursukkul/menulink/internal/page"
	"github.com/Eursukkul/menulink/internal/realtime"
	"github.com/Eursukkul/menulink/internal/service"
	"github.com/gorilla/csrf"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

type Services struct {
	Reservations service.ReservationService
	Restaurants  service.RestaurantService
	Menu         service.MenuService
	Profiles     service.ProfileService
	Pages        service.PageService
	Analytics    service.AnalyticsService
}

type Options struct {
	AppName   string
	JWTSecret string
	CSRFKey   []byte
	// SecureCookies marks the CSRF cookie Secure and enforces same-origin
	// Referer checks for HTTPS.
	SecureCookies bool
}

func New(svc Services, hub *realtime.Hub, renderer *page.Renderer, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Validator = handler.NewRequestValidator()
	e.Use(middleware.RequestContext())
	e.Use(middleware.RequestLogger())
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": opts.AppName})
	})

	api := e.Group("/api/v1")
	handler.NewPublicHandler(svc.Reservations, svc.Pages).RegisterRoutes(api.Group("/public"))

	dashboard := api.Group("/dashboard", middleware.Auth(opts.JWTSecret))
	owned := dashboard.Group("", middleware.RequireRestaurant(svc.Restaurants))
	handler.NewDashboardHandler(svc.Restaurants, svc.Reservations).RegisterRoutes(dashboard, owned)
	handler.NewMenuHandler(svc.Menu, svc.Profiles).RegisterRoutes(owned)
	handler.NewAnalyticsHandler(svc.Analytics).RegisterRoutes(owned)
	handler.NewRealtimeHandler(hub).RegisterRoutes(owned)

	site := e.Group("/r", CSRF(opts.CSRFKey, opts.SecureCookies))
	handler.NewSiteHandler(svc.Pages, svc.Reservations, renderer).RegisterRoutes(site)

	return e
}

// CSRF protects the HTML booking form. When secure is false the site is
// served over plain HTTP, which gorilla/csrf must be told about per request.
func CSRF(key []byte, secure bool) echo.MiddlewareFunc {
	protect := csrf.Protect(key,
		csrf.Secure(secure),
		csrf.Path("/r"),
		csrf.FieldName("csrf_token"),
	)
	return echo.WrapMiddleware(func(next http.Handler) http.Handler {
		protected := protect(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !secure && r.TLS == nil {
				r = csrf.PlaintextHTTPRequest(r)
			}
			protected.ServeHTTP(w, r)
		})
	})
}
