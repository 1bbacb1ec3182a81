package donation

import "time"

// CooldownDays is the minimum calendar gap between whole-blood donations.
const CooldownDays = 90

// CooldownStatus reports whether a donor may give again and, if not yet,
// the first date on which they may.
type CooldownStatus struct {
	Eligible         bool
	NextEligibleDate *time.Time // nil when the donor has never donated
}

// CheckCooldown evaluates the 90-day rule for a donor whose most recent
// donation was on last (nil means no donation on record, which is always
// eligible). Both inputs are calendar dates; the donor becomes eligible on
// the boundary date itself, not the day after.
func CheckCooldown(last *time.Time, today time.Time) CooldownStatus {
	if last == nil {
		return CooldownStatus{Eligible: true}
	}
	next := last.AddDate(0, 0, CooldownDays)
	return CooldownStatus{
		Eligible:         !today.Before(next),
		NextEligibleDate: &next,
	}
}

// DaysLeft returns the whole days remaining until the next eligible date,
// or zero once the donor is eligible.
func (c CooldownStatus) DaysLeft(today time.Time) int {
	if c.Eligible || c.NextEligibleDate == nil {
		return 0
	}
	return int(c.NextEligibleDate.Sub(today).Hours() / 24)
}
