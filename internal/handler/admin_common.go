package handler

import (
	"github.com/mandaladignite/enlivesalon/internal/config"
	"github.com/mandaladignite/enlivesalon/internal/repository"
)

// AdminHandler bundles every repository the back office touches.  Its
// methods are spread across the admin_*.go files by resource.
type AdminHandler struct {
	Cfg          config.Config
	Services     *repository.ServiceRepo
	Stylists     *repository.StylistRepo
	Appointments *repository.AppointmentRepo
	Memberships  *repository.MembershipRepo
	Gallery      *repository.GalleryRepo
	Reviews      *repository.ReviewRepo
	Enquiries    *repository.EnquiryRepo
}

// NewAdminHandler constructs an AdminHandler and panics if any dependency
// is nil.
func NewAdminHandler(cfg config.Config, sv *repository.ServiceRepo, st *repository.StylistRepo, ap *repository.AppointmentRepo, m *repository.MembershipRepo, g *repository.GalleryRepo, rv *repository.ReviewRepo, e *repository.EnquiryRepo) *AdminHandler {
	if sv == nil || st == nil || ap == nil || m == nil || g == nil || rv == nil || e == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{
		Cfg:          cfg,
		Services:     sv,
		Stylists:     st,
		Appointments: ap,
		Memberships:  m,
		Gallery:      g,
		Reviews:      rv,
		Enquiries:    e,
	}
}
