package catalog

// The booking wizard walks a customer through five steps: pick services,
// pick a location, pick a stylist, pick a date and time slot, and finally
// optional notes/address.  A step must validate before the wizard may
// advance past it, and each failure is keyed by a fixed field name so the
// caller can attach the message to the right input.

// Wizard step numbers.
const (
	StepServices = 1
	StepLocation = 2
	StepStylist  = 3
	StepSchedule = 4
	StepDetails  = 5
)

// Selection is the ephemeral state built up by the booking wizard.  The
// service ID order is the customer's insertion order; it matters for display
// but not for pricing.
type Selection struct {
	ServiceIDs []uint64 `json:"service_ids"`
	Location   Location `json:"location"`
	StylistID  uint64   `json:"stylist_id"`
	Date       string   `json:"date"`      // YYYY-MM-DD
	TimeSlot   string   `json:"time_slot"` // e.g. "10:00"
	Notes      string   `json:"notes,omitempty"`
	Address    string   `json:"address,omitempty"`
}

// ValidateStep checks a single wizard step and returns the validation
// errors keyed by field name (`services`, `location`, `stylist`, `date`,
// `timeSlot`).  An empty map means the step passes.  Step 5 carries only
// optional fields and always passes; unknown steps pass as well.
func ValidateStep(sel Selection, step int) map[string]string {
	errs := map[string]string{}
	switch step {
	case StepServices:
		if len(sel.ServiceIDs) == 0 {
			errs["services"] = "select at least one service"
		}
	case StepLocation:
		if !ValidLocation(sel.Location) {
			errs["location"] = "choose home or salon"
		}
	case StepStylist:
		if sel.StylistID == 0 {
			errs["stylist"] = "select a stylist"
		}
	case StepSchedule:
		if sel.Date == "" {
			errs["date"] = "select a date"
		}
		if sel.TimeSlot == "" {
			errs["timeSlot"] = "select a time slot"
		}
	}
	return errs
}

// CanAdvance reports whether the wizard may move past the given step.
func CanAdvance(sel Selection, step int) bool {
	return len(ValidateStep(sel, step)) == 0
}

// ValidateSelection checks every step up to and including StepDetails and
// merges the failures.  A submission is only accepted when the returned map
// is empty.
func ValidateSelection(sel Selection) map[string]string {
	errs := map[string]string{}
	for step := StepServices; step <= StepDetails; step++ {
		for field, msg := range ValidateStep(sel, step) {
			errs[field] = msg
		}
	}
	return errs
}
