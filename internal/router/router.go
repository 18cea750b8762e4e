package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/mandaladignite/enlivesalon/internal/handler"
	"github.com/mandaladignite/enlivesalon/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Used by load balancers and monitoring to verify the service is up.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// POST /v1/auth/refresh rotates the refresh token; /refresh-access issues
	// a fresh access token without rotating so browser tabs can renew a
	// session concurrently.
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout accepts either a bearer token (revoke all sessions) or a JSON
	// body with a `refresh_token` (revoke one).  It does not require JWT
	// authentication so that a client with only a refresh token can still
	// terminate its session.
	g.POST("/logout", a.Logout)

	// Profile endpoints require a valid access token but no particular role.
	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
	auth.PUT("/me", a.UpdateMe)
}

// RegisterPublic registers unauthenticated browse endpoints on the provided
// Echo instance.  The PublicHandler returns sanitized catalog data for
// services, stylists, gallery items, reviews and membership plans.  These
// routes apply no JWT or role middleware and are intended for guest users;
// when cache is non-nil the GET listings are served through the Redis
// response cache.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, q *handler.EnquiryHandler, cache echo.MiddlewareFunc) {
	mw := []echo.MiddlewareFunc{}
	if cache != nil {
		mw = append(mw, cache)
	}

	e.GET("/v1/services", p.ListServices, mw...)
	e.GET("/v1/services/:id", p.GetService, mw...)
	e.GET("/v1/stylists", p.ListStylists, mw...)
	e.GET("/v1/stylists/:id", p.GetStylist, mw...)
	e.GET("/v1/gallery", p.ListGallery, mw...)
	e.GET("/v1/reviews", p.ListReviews, mw...)
	e.GET("/v1/membership-plans", p.ListMembershipPlans, mw...)

	// Quote computes selection totals without touching any state, so it is
	// open to guests building a booking before they register.  POST bodies
	// are never cached.
	e.POST("/v1/quote", p.Quote)

	// Enquiries: anyone can submit one and look it up by reference later.
	e.POST("/v1/enquiries", q.Create)
	e.GET("/v1/enquiries/:reference", q.GetByReference)
}
