package catalog

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fp(f float64) *float64 { return &f }
func ip(i int) *int         { return &i }

func sampleServices() []Service {
	return []Service{
		{ID: 1, Name: "Classic Haircut", Description: "Scissor cut and styling", Category: "hair", Price: 500, DurationMinutes: 30},
		{ID: 2, Name: "Bridal Makeup", Description: "Full bridal package", Category: "makeup", Price: 8000, DurationMinutes: 180},
		{ID: 3, Name: "Hair Spa", Description: "Deep conditioning spa treatment", Category: "hair", Price: 1200, DurationMinutes: 60,
			Discount: &Discount{Percentage: 25, IsActive: true}},
		{ID: 4, Name: "Manicure", Description: "Nail shaping and polish", Category: "nails", Price: 400, DurationMinutes: 45},
	}
}

func TestSearchEmptyQueryIsIdentity(t *testing.T) {
	items := sampleServices()
	got := SearchServices("", items)
	assert.Equal(t, items, got)
	// Whitespace-only behaves the same.
	assert.Equal(t, items, SearchServices("   \t ", items))
}

func TestSearchAllTermsMustMatch(t *testing.T) {
	items := sampleServices()
	got := SearchServices("hair spa", items)
	require.Len(t, got, 1)
	assert.Equal(t, uint64(3), got[0].ID)

	// A single term matches across name, description and category.
	got = SearchServices("HAIR", items)
	require.Len(t, got, 2)
	assert.Equal(t, uint64(1), got[0].ID)
	assert.Equal(t, uint64(3), got[1].ID)
}

func TestSearchIdempotent(t *testing.T) {
	items := sampleServices()
	once := SearchServices("hair", items)
	twice := SearchServices("hair", once)
	assert.Equal(t, once, twice)
}

func TestSearchStylistsSpecialties(t *testing.T) {
	stylists := []Stylist{
		{ID: 1, Name: "Asha", Specialties: []string{"bridal makeup", "hair styling"}},
		{ID: 2, Name: "Meera", Specialties: []string{"nail art"}},
	}
	got := SearchStylists("bridal", stylists)
	require.Len(t, got, 1)
	assert.Equal(t, uint64(1), got[0].ID)
}

func TestFilterServicesByCategoryAndRanges(t *testing.T) {
	now := time.Now()
	items := sampleServices()

	got := FilterServices(items, ServiceFilter{Category: "hair"}, now)
	assert.Len(t, got, 2)

	// The "all" sentinel disables the category criterion.
	got = FilterServices(items, ServiceFilter{Category: CategoryAll}, now)
	assert.Len(t, got, 4)

	// Price range is inclusive and uses the discounted price: the 1200 spa
	// at 25% off is 900 and falls inside [400, 900].
	got = FilterServices(items, ServiceFilter{MinPrice: fp(400), MaxPrice: fp(900)}, now)
	require.Len(t, got, 3)
	for _, s := range got {
		p := EffectivePrice(s, now)
		assert.GreaterOrEqual(t, p, 400.0)
		assert.LessOrEqual(t, p, 900.0)
	}

	got = FilterServices(items, ServiceFilter{MinDuration: ip(45), MaxDuration: ip(60)}, now)
	assert.Len(t, got, 2)
}

func TestFilterStylistsByLocation(t *testing.T) {
	stylists := []Stylist{
		{ID: 1, Name: "Asha", ExperienceYears: 8, Rating: 4.7, AvailableForHome: true, AvailableForSalon: true},
		{ID: 2, Name: "Meera", ExperienceYears: 3, Rating: 4.1, AvailableForSalon: true},
		{ID: 3, Name: "Zoya", ExperienceYears: 12, Rating: 4.9, AvailableForHome: true},
	}
	got := FilterStylists(stylists, StylistFilter{Location: LocationHome})
	assert.Len(t, got, 2)

	got = FilterStylists(stylists, StylistFilter{MinExperience: ip(5), Location: LocationSalon})
	require.Len(t, got, 1)
	assert.Equal(t, uint64(1), got[0].ID)

	got = FilterStylists(stylists, StylistFilter{MinRating: fp(4.5), MaxRating: fp(5)})
	assert.Len(t, got, 2)
}

func TestSortServicesStableAndCaseInsensitive(t *testing.T) {
	now := time.Now()
	items := []Service{
		{ID: 1, Name: "bridal makeup", Price: 300},
		{ID: 2, Name: "Haircut", Price: 100},
		{ID: 3, Name: "haircut", Price: 200}, // equal key to ID 2 after folding
	}
	got := SortServices(items, ServiceSortName, false, now)
	require.Len(t, got, 3)
	assert.Equal(t, uint64(1), got[0].ID)
	// Stable: the two "haircut" entries keep their original relative order.
	assert.Equal(t, uint64(2), got[1].ID)
	assert.Equal(t, uint64(3), got[2].ID)

	desc := SortServices(items, ServiceSortPrice, true, now)
	assert.Equal(t, uint64(1), desc[0].ID)
	assert.Equal(t, uint64(3), desc[1].ID)
	assert.Equal(t, uint64(2), desc[2].ID)

	// The input slice is left untouched.
	assert.Equal(t, uint64(1), items[0].ID)
}

func TestSortServicesUsesDiscountedPrice(t *testing.T) {
	now := time.Now()
	items := []Service{
		{ID: 1, Name: "A", Price: 1000, Discount: &Discount{Percentage: 90, IsActive: true}}, // 100
		{ID: 2, Name: "B", Price: 200},
	}
	got := SortServices(items, ServiceSortPrice, false, now)
	assert.Equal(t, uint64(1), got[0].ID)
}

func TestPaginateSliceBounds(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i + 1
	}

	p1 := Paginate(items, 1, 12)
	require.Len(t, p1.Items, 12)
	assert.Equal(t, 1, p1.Items[0])
	assert.Equal(t, 12, p1.Items[11])
	assert.Equal(t, 3, p1.TotalPages)
	assert.Equal(t, 25, p1.TotalItems)

	p3 := Paginate(items, 3, 12)
	require.Len(t, p3.Items, 1)
	assert.Equal(t, 25, p3.Items[0])

	// Past the end: empty page, no error.
	p9 := Paginate(items, 9, 12)
	assert.Empty(t, p9.Items)
}

func TestPaginatePartition(t *testing.T) {
	// Across all pages the slices partition the list: the lengths sum to N
	// and only the last page may be short.
	for _, n := range []int{0, 1, 11, 12, 13, 24, 25, 36} {
		items := make([]int, n)
		size := 12
		sum := 0
		pages := TotalPages(n, size)
		for page := 1; page <= pages; page++ {
			p := Paginate(items, page, size)
			sum += len(p.Items)
			if page < pages {
				assert.Len(t, p.Items, size, "n=%d page=%d", n, page)
			}
		}
		assert.Equal(t, n, sum, "n=%d", n)
	}
}

func TestQueryResetsPageOnAnyChange(t *testing.T) {
	q := NewServiceQuery(12)
	q.SetPage(3)
	assert.Equal(t, 3, q.Page())

	q.SetSearch("hair")
	assert.Equal(t, 1, q.Page())

	q.SetPage(2)
	q.SetFilter(ServiceFilter{Category: "hair"})
	assert.Equal(t, 1, q.Page())

	q.SetPage(2)
	q.SetSort(ServiceSortPrice, true)
	assert.Equal(t, 1, q.Page())

	q.SetPage(2)
	q.SetPageSize(5)
	assert.Equal(t, 1, q.Page())
}

func TestQueryApplyPipeline(t *testing.T) {
	now := time.Now()
	var items []Service
	for i := 1; i <= 25; i++ {
		items = append(items, Service{
			ID:       uint64(i),
			Name:     fmt.Sprintf("Service %02d", i),
			Category: "hair",
			Price:    float64(i * 100),
		})
	}
	q := NewServiceQuery(12)
	page := q.Apply(items, now)
	assert.Len(t, page.Items, 12)
	assert.Equal(t, 3, page.TotalPages)

	q.SetPage(3)
	page = q.Apply(items, now)
	require.Len(t, page.Items, 1)
	assert.Equal(t, uint64(25), page.Items[0].ID)
}
