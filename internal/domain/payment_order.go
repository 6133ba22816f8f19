package domain

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	// OrderCreated: issued at the gateway, checkout not concluded.
	OrderCreated OrderStatus = "created"
	// OrderAttempted: checkout was opened and dismissed or errored; the
	// reconciler still re-checks these against the gateway.
	OrderAttempted OrderStatus = "attempted"
	OrderPaid      OrderStatus = "paid"
	OrderFailed    OrderStatus = "failed"
)

// PaymentOrder mirrors one gateway order for one checkout attempt. Amount
// and currency are immutable once the gateway has issued the order. An
// abandoned checkout leaves the row in created/attempted until the
// reconciler settles it.
type PaymentOrder struct {
	ID             uuid.UUID `json:"id" db:"id"`
	GatewayOrderID string    `json:"gateway_order_id" db:"gateway_order_id"`
	ReceiptID      string    `json:"receipt_id" db:"receipt_id"`
	Amount         int64     `json:"amount" db:"amount"`
	Currency       string    `json:"currency" db:"currency"`

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
	// Notes keeps the flat key=value blob the legacy flow embedded in the
	// gateway order, alongside the structured columns above.
	Notes string `json:"notes" db:"notes"`

	Status           OrderStatus `json:"status" db:"status"`
	GatewayPaymentID *string     `json:"gateway_payment_id,omitempty" db:"gateway_payment_id"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func (o *PaymentOrder) IsSettled() bool {
	return o.Status == OrderPaid || o.Status == OrderFailed
}

type AdminUser struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Email        string     `json:"email" db:"email"`
	Name         string     `json:"name" db:"name"`
	PasswordHash string     `json:"-" db:"password_hash"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	DeletedAt    *time.Time `json:"-" db:"deleted_at"`
}
