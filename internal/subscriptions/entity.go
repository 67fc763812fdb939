package subscriptions

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Status is the lifecycle state of a subscription
type Status string

const (
	StatusActive   Status = "active"
	StatusOptedOut Status = "opted_out"
)

// Source records where a subscription was created or last re-activated
type Source string

const (
	SourceWeb Source = "web"
	SourceSMS Source = "sms"
)

// Subscription is one phone number that agreed to receive SMS updates.
// Rows are unique by PhoneNormalized.
type Subscription struct {
	bun.BaseModel `bun:"table:sms_subscriptions,alias:s"`

	ID              uuid.UUID  `bun:"id,pk,type:uuid" json:"id"`
	Phone           string     `bun:"phone,notnull" json:"phone"`
	PhoneNormalized string     `bun:"phone_normalized,notnull" json:"phoneNormalized"`
	Status          Status     `bun:"status,notnull" json:"status"`
	ConsentText     string     `bun:"consent_text,notnull" json:"consentText"`
	Source          Source     `bun:"source,notnull" json:"source"`
	IP              string     `bun:"ip,notnull" json:"ip"`
	UserAgent       string     `bun:"user_agent,notnull" json:"userAgent"`
	CreatedAt       time.Time  `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt       time.Time  `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`
	OptedOutAt      *time.Time `bun:"opted_out_at" json:"optedOutAt,omitempty"`
}

// IsActive reports whether the number should receive messages
func (s *Subscription) IsActive() bool {
	return s.Status == StatusActive
}
