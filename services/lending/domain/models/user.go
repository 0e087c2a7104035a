package models

import "github.com/google/uuid"

// User is the slice of the identity collaborator's record the lending rules
// need: whether the account may borrow at all. The directory is read-only
// here; account management lives elsewhere.
type User struct {
	ID       uuid.UUID
	Disabled bool
}
