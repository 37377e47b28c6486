package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Eursukkul/menulink/internal/models"
	"github.com/Eursukkul/menulink/internal/service"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	userIDKey     = "user_id"
	restaurantKey = "restaurant"
)

// Auth verifies HS256 bearer tokens issued by the auth provider and stores
// the subject as the user id. Browsers cannot set headers on a websocket
// upgrade, so the token may also arrive as the access_token query value.
func Auth(secret string) echo.MiddlewareFunc {
	key := []byte(secret)
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := bearerToken(c)
			if raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			token, err := parser.Parse(raw, func(*jwt.Token) (any, error) { return key, nil })
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}
			sub, err := token.Claims.GetSubject()
			if err != nil || sub == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token has no subject")
			}

			c.Set(userIDKey, sub)
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) string {
	if h := c.Request().Header.Get(echo.HeaderAuthorization); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	return c.QueryParam("access_token")
}

func UserID(c echo.Context) string {
	id, _ := c.Get(userIDKey).(string)
	return id
}

// RestaurantLoader is the part of RestaurantService the dashboard guard needs.
type RestaurantLoader interface {
	GetByOwner(ctx context.Context, ownerID string) (*models.Restaurant, error)
}

// RequireRestaurant loads the caller's restaurant. Accounts that have not
// finished onboarding get 409.
func RequireRestaurant(restaurants RestaurantLoader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			restaurant, err := restaurants.GetByOwner(c.Request().Context(), UserID(c))
			if errors.Is(err, service.ErrOnboardingRequired) {
				return echo.NewHTTPError(http.StatusConflict, err.Error())
			}
			if err != nil {
				return err
			}
			SetRestaurant(c, restaurant)
			return next(c)
		}
	}
}

func SetRestaurant(c echo.Context, r *models.Restaurant) {
	c.Set(restaurantKey, r)
}

// Restaurant returns the restaurant stored by RequireRestaurant.
func Restaurant(c echo.Context) *models.Restaurant {
	r, _ := c.Get(restaurantKey).(*models.Restaurant)
	return r
}
