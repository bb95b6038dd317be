package v1

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/posawiki/posawiki/internal/profile"
	"github.com/posawiki/posawiki/server/auth"
	"github.com/posawiki/posawiki/server/internal/observability"
	"github.com/posawiki/posawiki/server/middleware"
	"github.com/posawiki/posawiki/server/service/tagauthority"
	"github.com/posawiki/posawiki/store"
)

const claimsContextKey = "auth-claims"

type APIV1Service struct {
	Secret       string
	Profile      *profile.Profile
	Store        *store.Store
	TagAuthority *tagauthority.Service
}

func NewAPIV1Service(secret string, profile *profile.Profile, store *store.Store, tagAuthority *tagauthority.Service) *APIV1Service {
	return &APIV1Service{
		Secret:       secret,
		Profile:      profile,
		Store:        store,
		TagAuthority: tagAuthority,
	}
}

// RegisterRoutes mounts the curator API. Reads are public; mutations
// need an editor token, deactivation and revalidation an admin token.
func (s *APIV1Service) RegisterRoutes(echoServer *echo.Echo) {
	rateLimiter := middleware.NewRateLimiter()

	g := echoServer.Group("/api/v1")
	g.Use(echomw.CORS())
	g.Use(rateLimiter.Middleware())
	g.Use(s.authContext)

	g.GET("/authorities", s.ListAuthorities)
	g.POST("/authorities", s.CreateAuthority, s.requireEditor)
	g.POST("/authorities/:uid/aliases", s.AddAliases, s.requireEditor)
	g.POST("/authorities/:uid/deactivate", s.DeactivateAuthority, s.requireAdmin)
	g.DELETE("/aliases/:id", s.DeleteAlias, s.requireEditor)

	g.GET("/coverage", s.GetCoverage)
	g.POST("/revalidate", s.Revalidate, s.requireAdmin)

	g.GET("/videos", s.ListVideos)
	g.GET("/videos/:uid", s.GetVideo)

	g.GET("/people", s.ListPeople)
	g.POST("/people", s.CreatePerson, s.requireEditor)
	g.DELETE("/people/:uid", s.DeletePerson, s.requireAdmin)
	g.GET("/dogs", s.ListDogs)
	g.POST("/dogs", s.CreateDog, s.requireEditor)
	g.DELETE("/dogs/:uid", s.DeleteDog, s.requireAdmin)
	g.GET("/trips", s.ListTrips)
	g.GET("/trips/:uid", s.GetTrip)
	g.POST("/trips", s.CreateTrip, s.requireEditor)
	g.POST("/trips/:uid/videos", s.AddTripVideo, s.requireEditor)
	g.GET("/posaisms", s.ListPosaisms)
	g.POST("/posaisms", s.CreatePosaism, s.requireEditor)
	g.DELETE("/posaisms/:uid", s.DeletePosaism, s.requireAdmin)
}

// authContext verifies the bearer token when present and stashes its
// claims. Anonymous requests pass through; role checks happen on the
// mutating routes.
func (s *APIV1Service) authContext(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := auth.Authenticate(c.Request().Header.Get("Authorization"), s.Secret)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
		}
		if claims != nil {
			c.Set(claimsContextKey, claims)
		}
		reqCtx := observability.NewRequestContext(slog.Default(), actorFromClaims(claims))
		c.SetRequest(c.Request().WithContext(observability.WithRequestContext(c.Request().Context(), reqCtx)))
		return next(c)
	}
}

func (s *APIV1Service) requireEditor(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := claimsFrom(c)
		if claims == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
		}
		if !claims.CanMutate() {
			return echo.NewHTTPError(http.StatusForbidden, "editor role required")
		}
		return next(c)
	}
}

func (s *APIV1Service) requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := claimsFrom(c)
		if claims == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
		}
		if !claims.IsAdmin() {
			return echo.NewHTTPError(http.StatusForbidden, "admin role required")
		}
		return next(c)
	}
}

func claimsFrom(c echo.Context) *auth.Claims {
	claims, _ := c.Get(claimsContextKey).(*auth.Claims)
	return claims
}

func actorFromClaims(claims *auth.Claims) string {
	if claims == nil {
		return "anonymous"
	}
	return claims.Subject
}

// mapServiceError translates core errors into HTTP responses. Conflict
// errors keep their full message so the curator sees which authority
// claims the key.
func mapServiceError(err error) error {
	var validation *tagauthority.ValidationError
	if errors.As(err, &validation) {
		return echo.NewHTTPError(http.StatusBadRequest, validation.Error())
	}
	var duplicate *tagauthority.DuplicateNameError
	if errors.As(err, &duplicate) {
		return echo.NewHTTPError(http.StatusConflict, duplicate.Error())
	}
	var conflict *tagauthority.AliasConflictError
	if errors.As(err, &conflict) {
		return echo.NewHTTPError(http.StatusConflict, conflict.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "internal error").SetInternal(err)
}
