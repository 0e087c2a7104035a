package models

import (
	"github.com/google/uuid"

	domain "github.com/ghuser/circulation/services/lending/domain"
)

// ItemStock is the availability counter for one catalog item: how many copies
// the library owns and how many are on the shelf right now.
//
// The counter is never written directly. Available moves only through paired
// Decrement (loan opened) / Increment (loan closed) calls, and only inside the
// per-item serialization boundary the store provides.
type ItemStock struct {
	ItemID    uuid.UUID
	Total     int
	Available int
}

// NewItemStock constructs an availability record for a newly catalogued item.
// All copies start on the shelf.
func NewItemStock(itemID uuid.UUID, total int) (*ItemStock, error) {
	if itemID == uuid.Nil {
		return nil, domain.ErrItemNotFound
	}
	if total < 0 {
		return nil, domain.ErrInvalidStock
	}
	return &ItemStock{ItemID: itemID, Total: total, Available: total}, nil
}

// Decrement takes one copy off the shelf for a new loan.
func (s *ItemStock) Decrement() error {
	if s.Available <= 0 {
		return domain.ErrOutOfStock
	}
	s.Available--
	return nil
}

// Increment puts a returned copy back on the shelf.
func (s *ItemStock) Increment() error {
	if s.Available >= s.Total {
		return domain.ErrOverCapacity
	}
	s.Available++
	return nil
}

// Valid reports whether the counter satisfies 0 <= available <= total.
func (s *ItemStock) Valid() bool {
	return s.Available >= 0 && s.Available <= s.Total
}
