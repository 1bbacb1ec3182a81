package bloodrequest

import (
	"strings"
	"time"

	id "lifeline/pkg/domain"
)

// RetentionWindow is how long a submitted request stays visible. Requests
// older than this are purged so the public board never shows stale needs.
const RetentionWindow = 24 * time.Hour

// StatusPending is the initial status of every submitted request.
const StatusPending = "pending"

// Request is one public call for blood. There is no requester account;
// contact details travel with the request itself.
type Request struct {
	ID           id.RequestID
	PatientName  string
	HospitalName string
	BloodGroup   id.BloodGroup
	State        string
	District     string
	Location     string
	Contact      string
	Age          int
	Gender       string
	Urgent       bool
	Status       string
	CreatedAt    time.Time
}

// Filter narrows the public request board.
type Filter struct {
	BloodGroup *id.BloodGroup
	State      string
	District   string
}

// Matches reports whether the request satisfies every set criterion.
// Region criteria match as case-insensitive substrings.
func (f Filter) Matches(r *Request) bool {
	if f.BloodGroup != nil && r.BloodGroup != *f.BloodGroup {
		return false
	}
	if s := strings.TrimSpace(f.State); s != "" && !strings.Contains(strings.ToLower(r.State), strings.ToLower(s)) {
		return false
	}
	if s := strings.TrimSpace(f.District); s != "" && !strings.Contains(strings.ToLower(r.District), strings.ToLower(s)) {
		return false
	}
	return true
}
