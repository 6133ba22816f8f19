package domain

import (
	"time"

	"github.com/google/uuid"
)

type ItemType string

const (
	ItemTypeEvent       ItemType = "event"
	ItemTypeCourse      ItemType = "course"
	ItemTypeCompetition ItemType = "competition"
)

func (t ItemType) Valid() bool {
	switch t {
	case ItemTypeEvent, ItemTypeCourse, ItemTypeCompetition:
		return true
	}
	return false
}

// ReceiptPrefix is the short tag receipt identifiers for this item type
// start with.
func (t ItemType) ReceiptPrefix() string {
	switch t {
	case ItemTypeCourse:
		return "crs"
	case ItemTypeCompetition:
		return "cmp"
	default:
		return "evt"
	}
}

type ItemStatus string

const (
	ItemActive    ItemStatus = "active"
	ItemInactive  ItemStatus = "inactive"
	ItemCompleted ItemStatus = "completed"
	ItemCancelled ItemStatus = "cancelled"
	ItemDraft     ItemStatus = "draft"
)

func (s ItemStatus) Valid() bool {
	switch s {
	case ItemActive, ItemInactive, ItemCompleted, ItemCancelled, ItemDraft:
		return true
	}
	return false
}

// CatalogItem is one registrable offering. Events, courses and competitions
// share capacity, scheduling and fee semantics and live in one table; the
// type-specific columns are nullable.
type CatalogItem struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Type        ItemType   `json:"type" db:"type"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Location    *string    `json:"location,omitempty" db:"location"`
	StartsAt    *time.Time `json:"starts_at,omitempty" db:"starts_at"`
	EndsAt      *time.Time `json:"ends_at,omitempty" db:"ends_at"`

	// Course only.
	Instructor    *string `json:"instructor,omitempty" db:"instructor"`
	DurationWeeks *int    `json:"duration_weeks,omitempty" db:"duration_weeks"`

	// Competition only.
	AgeMin *int `json:"age_min,omitempty" db:"age_min"`
	AgeMax *int `json:"age_max,omitempty" db:"age_max"`

	// Fee in minor currency units; zero means a free item.
	Fee             int64      `json:"fee" db:"fee"`
	MaxParticipants int        `json:"max_participants" db:"max_participants"`
	RegisteredCount int        `json:"registered_count" db:"registered_count"`
	Status          ItemStatus `json:"status" db:"status"`

	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"-" db:"deleted_at"`
}

func (i *CatalogItem) IsPaid() bool {
	return i.Fee > 0
}

func (i *CatalogItem) SeatsLeft() int {
	left := i.MaxParticipants - i.RegisteredCount
	if left < 0 {
		return 0
	}
	return left
}

// AgeBounds returns the accepted participant age range. Competitions carry
// their own bounds; everything else takes the site-wide default.
func (i *CatalogItem) AgeBounds() (int, int) {
	min, max := 5, 100
	if i.Type == ItemTypeCompetition {
		max = 18
		if i.AgeMin != nil {
			min = *i.AgeMin
		}
		if i.AgeMax != nil {
			max = *i.AgeMax
		}
	}
	return min, max
}

// ItemRef is the denormalized item snapshot carried on registrations and
// payment orders.
type ItemRef struct {
	ID    uuid.UUID `json:"id" db:"item_id"`
	Type  ItemType  `json:"type" db:"item_type"`
	Title string    `json:"title" db:"item_title"`
}
