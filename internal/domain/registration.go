package domain

import (
	"time"

	"github.com/google/uuid"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// Candidate is the participant detail block collected at checkout. It is
// transient: validated, copied onto the payment order and registration,
// never stored on its own.
type Candidate struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Age            int    `json:"age"`
	Gender         Gender `json:"gender"`
	Education      string `json:"education"`
	CommunityOptIn bool   `json:"community_opt_in"`
}

type RegistrationStatus string

const (
	RegistrationRegistered RegistrationStatus = "registered"
	RegistrationCancelled  RegistrationStatus = "cancelled"
	RegistrationCompleted  RegistrationStatus = "completed"
)

func (s RegistrationStatus) Valid() bool {
	switch s {
	case RegistrationRegistered, RegistrationCancelled, RegistrationCompleted:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentAuthorized PaymentStatus = "authorized"
	PaymentCaptured   PaymentStatus = "captured"
	PaymentFailed     PaymentStatus = "failed"
	PaymentRefunded   PaymentStatus = "refunded"
	PaymentPaid       PaymentStatus = "paid"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentAuthorized, PaymentCaptured,
		PaymentFailed, PaymentRefunded, PaymentPaid:
		return true
	}
	return false
}

type Registration struct {
	ID uuid.UUID `json:"id" db:"id"`

	ItemID    uuid.UUID `json:"item_id" db:"item_id"`
	ItemType  ItemType  `json:"item_type" db:"item_type"`
	ItemTitle string    `json:"item_title" db:"item_title"`

	Name           string `json:"name" db:"name"`
	Email          string `json:"email" db:"email"`
	Phone          string `json:"phone" db:"phone"`
	Age            int    `json:"age" db:"age"`
	Gender         Gender `json:"gender" db:"gender"`
	Education      string `json:"education" db:"education"`
	CommunityOptIn bool   `json:"community_opt_in" db:"community_opt_in"`

	Status        RegistrationStatus `json:"status" db:"status"`
	PaymentStatus PaymentStatus      `json:"payment_status" db:"payment_status"`
	ReceiptID     *string            `json:"receipt_id,omitempty" db:"receipt_id"`
	Notes         string             `json:"notes" db:"notes"`

	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"-" db:"deleted_at"`
}
