package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeSelection() Selection {
	return Selection{
		ServiceIDs: []uint64{1, 2},
		Location:   LocationSalon,
		StylistID:  7,
		Date:       "2026-09-01",
		TimeSlot:   "10:00",
	}
}

func TestStepServicesRequiresSelection(t *testing.T) {
	sel := completeSelection()
	sel.ServiceIDs = nil

	errs := ValidateStep(sel, StepServices)
	require.Len(t, errs, 1)
	assert.Contains(t, errs, "services")
	assert.False(t, CanAdvance(sel, StepServices))

	sel.ServiceIDs = []uint64{3}
	assert.True(t, CanAdvance(sel, StepServices))
}

func TestStepLocationEnum(t *testing.T) {
	sel := completeSelection()
	for _, loc := range []Location{"", "office", "HOME"} {
		sel.Location = loc
		errs := ValidateStep(sel, StepLocation)
		require.Len(t, errs, 1, "loc=%q", loc)
		assert.Contains(t, errs, "location")
	}
	sel.Location = LocationHome
	assert.True(t, CanAdvance(sel, StepLocation))
}

func TestStepStylistRequired(t *testing.T) {
	sel := completeSelection()
	sel.StylistID = 0
	errs := ValidateStep(sel, StepStylist)
	require.Len(t, errs, 1)
	assert.Contains(t, errs, "stylist")
}

func TestStepScheduleKeysAreExact(t *testing.T) {
	// Date set, slot missing: exactly the timeSlot key, not date.
	sel := completeSelection()
	sel.TimeSlot = ""
	errs := ValidateStep(sel, StepSchedule)
	require.Len(t, errs, 1)
	assert.Contains(t, errs, "timeSlot")
	assert.NotContains(t, errs, "date")

	// Slot set, date missing: exactly the date key.
	sel = completeSelection()
	sel.Date = ""
	errs = ValidateStep(sel, StepSchedule)
	require.Len(t, errs, 1)
	assert.Contains(t, errs, "date")

	// Both missing: both keys.
	sel.TimeSlot = ""
	errs = ValidateStep(sel, StepSchedule)
	assert.Len(t, errs, 2)
}

func TestStepDetailsAlwaysPasses(t *testing.T) {
	assert.True(t, CanAdvance(Selection{}, StepDetails))
}

func TestValidateSelectionMergesAllSteps(t *testing.T) {
	errs := ValidateSelection(Selection{})
	assert.Contains(t, errs, "services")
	assert.Contains(t, errs, "location")
	assert.Contains(t, errs, "stylist")
	assert.Contains(t, errs, "date")
	assert.Contains(t, errs, "timeSlot")

	assert.Empty(t, ValidateSelection(completeSelection()))
}
