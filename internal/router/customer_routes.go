package router

import (
	"github.com/labstack/echo/v4"

	"github.com/mandaladignite/enlivesalon/internal/handler"
	"github.com/mandaladignite/enlivesalon/internal/middleware"
)

// RegisterCustomer registers customer-scoped endpoints under /v1.  All routes
// require a valid JWT and the CUSTOMER role.  Customers can book, reschedule
// and cancel appointments, manage addresses, submit reviews and purchase
// memberships.  When paymentLimit is non-nil it is applied to the membership
// purchase and verification routes as a stricter token bucket than the
// global limiter.
func RegisterCustomer(e *echo.Echo, b *handler.BookingHandler, ac *handler.AccountHandler, m *handler.MembershipHandler, jwtSecret string, paymentLimit echo.MiddlewareFunc) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(middleware.RoleCustomer),
	)

	// ---- Appointments ----
	g.POST("/appointments", b.Create)
	g.GET("/appointments", b.ListMine)
	g.PUT("/appointments/:id/reschedule", b.Reschedule)
	g.DELETE("/appointments/:id", b.Cancel)

	// ---- Addresses ----
	g.POST("/addresses", ac.CreateAddress)
	g.GET("/addresses", ac.ListAddresses)
	g.PUT("/addresses/:id", ac.UpdateAddress)
	g.DELETE("/addresses/:id", ac.DeleteAddress)

	// ---- Reviews ----
	g.POST("/reviews", ac.CreateReview)
	g.GET("/my-reviews", ac.ListMyReviews)
	g.DELETE("/reviews/:id", ac.DeleteMyReview)

	// ---- Memberships ----
	pay := []echo.MiddlewareFunc{}
	if paymentLimit != nil {
		pay = append(pay, paymentLimit)
	}
	g.POST("/memberships/purchase", m.Purchase, pay...)
	g.POST("/memberships/verify-payment", m.VerifyPayment, pay...)
	g.GET("/memberships", m.ListMine)
}
