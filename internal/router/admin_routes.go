package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/mandaladignite/enlivesalon/internal/handler"
	"github.com/mandaladignite/enlivesalon/internal/middleware"
)

// RegisterAdmin registers ADMIN-scoped endpoints under /v1/admin.
// All routes require a valid JWT and ADMIN role.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	// Attach middlewares at group construction time for clarity.
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(middleware.RoleAdmin),
	)

	// ---- Services ----
	g.POST("/services", a.CreateService)
	g.GET("/services", a.ListServicesAdmin)
	g.PUT("/services/:id", a.UpdateService)
	g.DELETE("/services/:id", a.DeleteService)

	// ---- Stylists ----
	g.POST("/stylists", a.CreateStylist)
	g.GET("/stylists", a.ListStylistsAdmin)
	g.PUT("/stylists/:id", a.UpdateStylist)
	g.DELETE("/stylists/:id", a.DeleteStylist)

	// ---- Membership plans ----
	g.POST("/membership-plans", a.CreatePlan)
	g.GET("/membership-plans", a.ListPlansAdmin)
	g.PUT("/membership-plans/:id", a.UpdatePlan)
	g.DELETE("/membership-plans/:id", a.DeletePlan)

	// ---- Gallery ----
	g.POST("/gallery", a.UploadGalleryItem)
	g.GET("/gallery", a.ListGalleryAdmin)
	g.PUT("/gallery/:id", a.UpdateGalleryItem)
	g.DELETE("/gallery/:id", a.DeleteGalleryItem)

	// ---- Reviews ----
	g.GET("/reviews", a.ListReviewsAdmin)
	g.PUT("/reviews/:id/moderate", a.ModerateReview)
	g.DELETE("/reviews/:id", a.DeleteReviewAdmin)

	// ---- Enquiries ----
	g.GET("/enquiries", a.ListEnquiries)
	g.PUT("/enquiries/:id/status", a.UpdateEnquiryStatus)
	g.GET("/enquiries/export", a.ExportEnquiriesCSV)

	// ---- Appointments ----
	g.GET("/appointments", a.ListAppointmentsAdmin)
	g.PUT("/appointments/:id/status", a.UpdateAppointmentStatus)
	g.GET("/appointments/export", a.ExportAppointmentsCSV)
}
