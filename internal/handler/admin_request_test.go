package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceReqValidate(t *testing.T) {
	base := serviceReq{
		Name:             "Hair Spa",
		Price:            1200,
		DurationMinutes:  45,
		AvailableAtSalon: true,
	}
	assert.Empty(t, base.validate())

	noName := base
	noName.Name = "  "
	assert.Equal(t, "name is required", noName.validate())

	negPrice := base
	negPrice.Price = -1
	assert.Equal(t, "price cannot be negative", negPrice.validate())

	zeroDur := base
	zeroDur.DurationMinutes = 0
	assert.Equal(t, "duration_minutes must be positive", zeroDur.validate())

	badDiscount := base
	pct := 150.0
	badDiscount.DiscountPercentage = &pct
	assert.Equal(t, "discount_percentage must be between 0 and 100", badDiscount.validate())

	nowhere := base
	nowhere.AvailableAtSalon = false
	assert.Equal(t, "service must be available at home or at the salon", nowhere.validate())
}

func TestServiceReqToModelNormalizes(t *testing.T) {
	m := serviceReq{
		Name:             "  Hair Spa ",
		Category:         " Hair ",
		Price:            1200,
		DurationMinutes:  45,
		AvailableAtSalon: true,
	}.toModel(9)
	assert.Equal(t, uint64(9), m.ID)
	assert.Equal(t, "Hair Spa", m.Name)
	assert.Equal(t, "hair", m.Category)
}

func TestStylistReqToModelJoinsSpecialties(t *testing.T) {
	m := stylistReq{
		Name:              "Priya",
		Specialties:       []string{" haircut ", "", "color"},
		ExperienceYears:   6,
		Rating:            4.5,
		AvailableForSalon: true,
		IsActive:          true,
	}.toModel(0)
	assert.Equal(t, "haircut,color", m.Specialties)
}

func TestStylistReqValidate(t *testing.T) {
	ok := stylistReq{Name: "Priya", Rating: 4.5}
	assert.Empty(t, ok.validate())

	badRating := ok
	badRating.Rating = 5.5
	assert.Equal(t, "rating must be between 0 and 5", badRating.validate())

	negExp := ok
	negExp.ExperienceYears = -1
	assert.Equal(t, "experience_years cannot be negative", negExp.validate())
}

func TestPlanReqValidate(t *testing.T) {
	ok := planReq{Name: "Gold", PricePaise: 499900, DurationDays: 365, DiscountPercentage: 15}
	assert.Empty(t, ok.validate())

	freePlan := ok
	freePlan.PricePaise = 0
	assert.Equal(t, "price_paise must be positive", freePlan.validate())

	badPct := ok
	badPct.DiscountPercentage = 101
	assert.Equal(t, "discount_percentage must be between 0 and 100", badPct.validate())
}

func TestAdminSearchFromQuery(t *testing.T) {
	c, _ := newTestContext(http.MethodGet, "/?status=CONFIRMED&stylist_id=4&date_from=2026-08-01&date_to=2026-08-31&page=2&page_size=50")
	q := adminSearchFromQuery(c)
	assert.Equal(t, "CONFIRMED", q.Status)
	assert.Equal(t, uint64(4), q.StylistID)
	assert.Equal(t, "2026-08-01", q.DateFrom)
	assert.Equal(t, "2026-08-31", q.DateTo)
	assert.Equal(t, 2, q.Page)
	assert.Equal(t, 50, q.PageSize)

	// Defaults when nothing is supplied.
	c, _ = newTestContext(http.MethodGet, "/")
	q = adminSearchFromQuery(c)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 20, q.PageSize)
	assert.Zero(t, q.StylistID)
}

func TestNewEnquiryReferenceFormat(t *testing.T) {
	ref := newEnquiryReference()
	require.Len(t, ref, 12)
	assert.Equal(t, "ENQ-", ref[:4])
	assert.NotEqual(t, ref, newEnquiryReference())
}
