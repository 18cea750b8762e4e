package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mandaladignite/enlivesalon/internal/catalog"
	"github.com/mandaladignite/enlivesalon/internal/repository"
)

// PublicHandler serves the unauthenticated storefront: service and stylist
// catalogs, the gallery, approved reviews and membership plans.  Listings
// are loaded from the database and run through the in-memory catalog
// pipeline, so search/filter/sort/pagination behave identically everywhere
// they appear.
type PublicHandler struct {
	Services    *repository.ServiceRepo
	Stylists    *repository.StylistRepo
	Gallery     *repository.GalleryRepo
	Reviews     *repository.ReviewRepo
	Memberships *repository.MembershipRepo
}

func NewPublicHandler(sv *repository.ServiceRepo, st *repository.StylistRepo, g *repository.GalleryRepo, rv *repository.ReviewRepo, m *repository.MembershipRepo) *PublicHandler {
	if sv == nil || st == nil || g == nil || rv == nil || m == nil {
		panic("nil repository passed to NewPublicHandler")
	}
	return &PublicHandler{Services: sv, Stylists: st, Gallery: g, Reviews: rv, Memberships: m}
}

const defaultPageSize = 12

// serviceView is the catalog item shape sent to clients, with the computed
// effective price alongside the list price.
type serviceView struct {
	ID              uint64   `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Category        string   `json:"category"`
	Price           float64  `json:"price"`
	EffectivePrice  float64  `json:"effective_price"`
	DurationMinutes int      `json:"duration_minutes"`
	Discounted      bool     `json:"discounted"`
	Locations       []string `json:"locations"`
}

func toServiceView(s catalog.Service, now time.Time) serviceView {
	locs := []string{}
	if s.AvailableAtHome {
		locs = append(locs, string(catalog.LocationHome))
	}
	if s.AvailableAtSalon {
		locs = append(locs, string(catalog.LocationSalon))
	}
	return serviceView{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description,
		Category:        s.Category,
		Price:           s.Price,
		EffectivePrice:  catalog.EffectivePrice(s, now),
		DurationMinutes: s.DurationMinutes,
		Discounted:      catalog.IsDiscountActive(s, now),
		Locations:       locs,
	}
}

func queryFloat(c echo.Context, name string) *float64 {
	if v := c.QueryParam(name); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return &f
		}
	}
	return nil
}

func queryInt(c echo.Context, name string) *int {
	if v := c.QueryParam(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return &n
		}
	}
	return nil
}

func queryIntDefault(c echo.Context, name string, def int) int {
	if p := queryInt(c, name); p != nil {
		return *p
	}
	return def
}

// ListServices handles GET /v1/services.  Query parameters: search,
// category, min_price, max_price, min_duration, max_duration, sort, order,
// page, page_size.
func (h *PublicHandler) ListServices(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rows, err := h.Services.ListActive(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not load services")
	}
	items := make([]catalog.Service, 0, len(rows))
	for _, row := range rows {
		items = append(items, repository.ToCatalog(row))
	}

	q := catalog.NewServiceQuery(defaultPageSize)
	q.SetSearch(c.QueryParam("search"))
	q.SetFilter(catalog.ServiceFilter{
		Category:    c.QueryParam("category"),
		MinPrice:    queryFloat(c, "min_price"),
		MaxPrice:    queryFloat(c, "max_price"),
		MinDuration: queryInt(c, "min_duration"),
		MaxDuration: queryInt(c, "max_duration"),
	})
	if sort := c.QueryParam("sort"); sort != "" {
		q.SetSort(catalog.ServiceSortKey(sort), c.QueryParam("order") == "desc")
	}
	q.SetPageSize(queryIntDefault(c, "page_size", defaultPageSize))
	// Page last: every setter above resets to page 1.
	q.SetPage(queryIntDefault(c, "page", 1))

	now := time.Now().UTC()
	page := q.Apply(items, now)

	views := make([]serviceView, 0, len(page.Items))
	for _, s := range page.Items {
		views = append(views, toServiceView(s, now))
	}
	return ok(c, http.StatusOK, "services", echo.Map{
		"items":       views,
		"page":        page.Number,
		"page_size":   page.PageSize,
		"total_items": page.TotalItems,
		"total_pages": page.TotalPages,
	})
}

// GetService handles GET /v1/services/:id.
func (h *PublicHandler) GetService(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid service id")
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	row, err := h.Services.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrServiceNotFound {
			return fail(c, http.StatusNotFound, "service not found")
		}
		return fail(c, http.StatusInternalServerError, "could not load service")
	}
	if !row.IsActive {
		return fail(c, http.StatusNotFound, "service not found")
	}
	return ok(c, http.StatusOK, "service", toServiceView(repository.ToCatalog(row), time.Now().UTC()))
}

// ListStylists handles GET /v1/stylists.  Query parameters: search,
// location, min_experience, max_experience, min_rating, max_rating, sort,
// order, page, page_size.
func (h *PublicHandler) ListStylists(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rows, err := h.Stylists.ListActive(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not load stylists")
	}
	items := make([]catalog.Stylist, 0, len(rows))
	for _, row := range rows {
		items = append(items, repository.StylistToCatalog(row))
	}

	q := catalog.NewStylistQuery(defaultPageSize)
	q.SetSearch(c.QueryParam("search"))
	q.SetFilter(catalog.StylistFilter{
		MinExperience: queryInt(c, "min_experience"),
		MaxExperience: queryInt(c, "max_experience"),
		MinRating:     queryFloat(c, "min_rating"),
		MaxRating:     queryFloat(c, "max_rating"),
		Location:      catalog.Location(strings.ToLower(c.QueryParam("location"))),
	})
	if sort := c.QueryParam("sort"); sort != "" {
		q.SetSort(catalog.StylistSortKey(sort), c.QueryParam("order") == "desc")
	}
	q.SetPageSize(queryIntDefault(c, "page_size", defaultPageSize))
	q.SetPage(queryIntDefault(c, "page", 1))

	page := q.Apply(items)
	return ok(c, http.StatusOK, "stylists", echo.Map{
		"items":       page.Items,
		"page":        page.Number,
		"page_size":   page.PageSize,
		"total_items": page.TotalItems,
		"total_pages": page.TotalPages,
	})
}

// GetStylist handles GET /v1/stylists/:id.
func (h *PublicHandler) GetStylist(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid stylist id")
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	row, err := h.Stylists.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrStylistNotFound {
			return fail(c, http.StatusNotFound, "stylist not found")
		}
		return fail(c, http.StatusInternalServerError, "could not load stylist")
	}
	return ok(c, http.StatusOK, "stylist", repository.StylistToCatalog(row))
}

// Quote handles POST /v1/quote: given service ids, return the running
// wizard totals for the selection.
func (h *PublicHandler) Quote(c echo.Context) error {
	var body struct {
		ServiceIDs []uint64 `json:"service_ids"`
	}
	if err := c.Bind(&body); err != nil || len(body.ServiceIDs) == 0 {
		return fail(c, http.StatusBadRequest, "service_ids required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	selected := make([]catalog.Service, 0, len(body.ServiceIDs))
	for _, id := range body.ServiceIDs {
		row, err := h.Services.GetByID(ctx, id)
		if err != nil {
			if err == repository.ErrServiceNotFound {
				return fail(c, http.StatusNotFound, "service not found")
			}
			return fail(c, http.StatusInternalServerError, "could not load service")
		}
		if !row.IsActive {
			return fail(c, http.StatusNotFound, "service not found")
		}
		selected = append(selected, repository.ToCatalog(row))
	}
	totals := catalog.Totals(selected, now)
	return ok(c, http.StatusOK, "quote", echo.Map{
		"total":          totals.Total,
		"original_total": totals.OriginalTotal,
		"total_discount": totals.TotalDiscount,
		"total_minutes":  totals.TotalMinutes,
	})
}

// ListGallery handles GET /v1/gallery with an optional category filter.
func (h *PublicHandler) ListGallery(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Gallery.List(ctx, c.QueryParam("category"), true)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not load gallery")
	}
	return ok(c, http.StatusOK, "gallery", items)
}

// ListReviews handles GET /v1/reviews and returns approved reviews only.
func (h *PublicHandler) ListReviews(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Reviews.ListApproved(ctx)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not load reviews")
	}
	return ok(c, http.StatusOK, "reviews", items)
}

// ListMembershipPlans handles GET /v1/membership-plans (active plans only).
func (h *PublicHandler) ListMembershipPlans(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	plans, err := h.Memberships.ListPlans(ctx, true)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not load plans")
	}
	return ok(c, http.StatusOK, "membership plans", plans)
}
