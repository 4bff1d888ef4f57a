package models

// Actor identifies the caller of a cart or order operation: a registered user
// (UserID set), a guest (GuestID set), or an administrator. Exactly one of
// UserID/GuestID is non-empty.
type Actor struct {
	UserID  string
	GuestID string
	Admin   bool
}

func (a Actor) IsUser() bool  { return a.UserID != "" }
func (a Actor) IsGuest() bool { return a.UserID == "" && a.GuestID != "" }

// OwnsOrder reports whether the actor is the order's owner. Admin privilege
// is checked separately by callers; this is pure ownership.
func (a Actor) OwnsOrder(o *Order) bool {
	if a.UserID != "" && o.UserID != nil && *o.UserID == a.UserID {
		return true
	}
	return a.GuestID != "" && o.GuestID == a.GuestID
}
