package donor

import (
	"strings"
	"time"

	id "lifeline/pkg/domain"
)

// Donor is a registered donor profile. Identity is the explicit DonorID;
// contact details are what requesters see when a search matches.
type Donor struct {
	ID         id.DonorID
	Name       string
	Email      string
	Phone      string
	Age        int
	Gender     string
	BloodGroup id.BloodGroup
	State      string
	District   string
	Location   string
	Available  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SearchCriteria narrows a public donor search. Blood group matches
// exactly; state and district match as case-insensitive substrings.
type SearchCriteria struct {
	BloodGroup *id.BloodGroup
	State      string
	District   string
}

// Empty reports whether no criterion is set. Unbounded searches over the
// whole directory are rejected at the service.
func (c SearchCriteria) Empty() bool {
	return c.BloodGroup == nil && strings.TrimSpace(c.State) == "" && strings.TrimSpace(c.District) == ""
}

// Matches reports whether the donor satisfies every set criterion.
func (c SearchCriteria) Matches(d *Donor) bool {
	if c.BloodGroup != nil && d.BloodGroup != *c.BloodGroup {
		return false
	}
	if s := strings.TrimSpace(c.State); s != "" && !strings.Contains(strings.ToLower(d.State), strings.ToLower(s)) {
		return false
	}
	if s := strings.TrimSpace(c.District); s != "" && !strings.Contains(strings.ToLower(d.District), strings.ToLower(s)) {
		return false
	}
	return true
}
