package bloodrequest

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Broadcaster fans an urgent request out to downstream notifiers.
type Broadcaster interface {
	BroadcastUrgent(ctx context.Context, r *Request) error
}

// Publisher is the transport a KafkaBroadcaster publishes through.
type Publisher interface {
	Publish(ctx context.Context, key, value []byte) error
}

// UrgentMessage is the wire payload published for one urgent request.
// Donor-matching consumers key their notification fan-out off blood group
// and region.
type UrgentMessage struct {
	RequestID    string    `json:"request_id"`
	PatientName  string    `json:"patient_name"`
	HospitalName string    `json:"hospital_name"`
	BloodGroup   string    `json:"blood_group"`
	State        string    `json:"state"`
	District     string    `json:"district"`
	Location     string    `json:"location,omitempty"`
	Contact      string    `json:"contact"`
	CreatedAt    time.Time `json:"created_at"`
}

// KafkaBroadcaster publishes urgent requests keyed by blood group so
// consumers partition by the thing donors subscribe to.
type KafkaBroadcaster struct {
	publisher Publisher
}

// NewKafkaBroadcaster wraps a Kafka publisher.
func NewKafkaBroadcaster(publisher Publisher) *KafkaBroadcaster {
	return &KafkaBroadcaster{publisher: publisher}
}

func (b *KafkaBroadcaster) BroadcastUrgent(ctx context.Context, r *Request) error {
	payload, err := json.Marshal(UrgentMessage{
		RequestID:    r.ID.String(),
		PatientName:  r.PatientName,
		HospitalName: r.HospitalName,
		BloodGroup:   string(r.BloodGroup),
		State:        r.State,
		District:     r.District,
		Location:     r.Location,
		Contact:      r.Contact,
		CreatedAt:    r.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal urgent message: %w", err)
	}
	return b.publisher.Publish(ctx, []byte(r.BloodGroup), payload)
}
