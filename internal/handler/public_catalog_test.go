package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mandaladignite/enlivesalon/internal/catalog"
)

func TestToServiceViewWithActiveDiscount(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	s := catalog.Service{
		ID:               3,
		Name:             "Hair Spa",
		Category:         "hair",
		Price:            1000,
		DurationMinutes:  45,
		IsActive:         true,
		AvailableAtHome:  true,
		AvailableAtSalon: true,
		Discount:         &catalog.Discount{Percentage: 20, IsActive: true},
	}

	v := toServiceView(s, now)
	assert.Equal(t, 1000.0, v.Price)
	assert.Equal(t, 800.0, v.EffectivePrice)
	assert.True(t, v.Discounted)
	assert.Equal(t, []string{"home", "salon"}, v.Locations)
}

func TestToServiceViewNoDiscount(t *testing.T) {
	now := time.Now()
	s := catalog.Service{ID: 4, Name: "Haircut", Price: 500, AvailableAtSalon: true}

	v := toServiceView(s, now)
	assert.Equal(t, 500.0, v.EffectivePrice)
	assert.False(t, v.Discounted)
	assert.Equal(t, []string{"salon"}, v.Locations)
}
