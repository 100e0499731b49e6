package ledger

import "finance-ledger/internal/models"

// Actor identifies the authenticated caller of a ledger operation.
type Actor struct {
	ID    uint
	Admin bool
}

// ActorFor builds an Actor from an authenticated user.
func ActorFor(u *models.User) Actor {
	return Actor{ID: u.ID, Admin: u.IsAdmin}
}

// CanAccess reports whether the actor may operate on a resource owned by
// ownerID. Admins may access everything.
func (a Actor) CanAccess(ownerID uint) bool {
	return a.Admin || a.ID == ownerID
}

// CanReadCategory reports whether the actor may reference the category.
// Global categories are readable by everyone.
func (a Actor) CanReadCategory(c *models.Category) bool {
	if c.IsGlobal() {
		return true
	}
	return a.CanAccess(*c.UserID)
}

// CanWriteCategory reports whether the actor may modify or delete the
// category. Global categories are writable only by admins.
func (a Actor) CanWriteCategory(c *models.Category) bool {
	if c.IsGlobal() {
		return a.Admin
	}
	return a.CanAccess(*c.UserID)
}
