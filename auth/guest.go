package auth

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	GuestCookieName   = "guest_id"
	guestCookieMaxAge = 60 * 60 * 24 * 30 // 30 days
)

// GuestID returns the guest identifier carried by the request cookie, or ""
// if the shopper has none yet.
func GuestID(c *gin.Context) string {
	id, err := c.Cookie(GuestCookieName)
	if err != nil {
		return ""
	}
	return id
}

// EnsureGuestID returns the request's guest identifier, minting one and
// setting the long-lived cookie on first guest interaction.
func EnsureGuestID(c *gin.Context) string {
	if id := GuestID(c); id != "" {
		return id
	}
	id := uuid.NewString()
	c.SetCookie(GuestCookieName, id, guestCookieMaxAge, "/", "", false, true)
	return id
}
