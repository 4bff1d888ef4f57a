package orderControllers

import (
	"testing"

	"github.com/Hassanfedawy/dr.mano/apperr"
	"github.com/Hassanfedawy/dr.mano/events"
	"github.com/Hassanfedawy/dr.mano/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestUpdateStatusRequiresAdmin(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, "p1", "10.00")

	req := guestCheckoutRequest()
	req.CartItems = req.CartItems[:1]
	order, err := PlaceOrder(db, events.Noop{}, models.Actor{GuestID: "owner"}, req)
	require.NoError(t, err)

	_, err = UpdateStatus(db, events.Noop{}, models.Actor{UserID: "owner"}, order.ID, "SHIPPED")
	require.Error(t, err)
	require.True(t, apperr.IsKind(err, apperr.Authorization))

	var unchanged models.Order
	require.NoError(t, db.First(&unchanged, "id = ?", order.ID).Error)
	require.Equal(t, models.OrderStatusPending, unchanged.Status)
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, "p1", "10.00")

	req := guestCheckoutRequest()
	req.CartItems = req.CartItems[:1]
	order, err := PlaceOrder(db, events.Noop{}, models.Actor{GuestID: "owner"}, req)
	require.NoError(t, err)

	admin := models.Actor{UserID: "admin-1", Admin: true}
	for _, bad := range []string{"pending", "RETURNED", "shipped", ""} {
		_, err := UpdateStatus(db, events.Noop{}, admin, order.ID, bad)
		require.Error(t, err, "status %q should be rejected", bad)
		require.True(t, apperr.IsKind(err, apperr.Validation))
	}
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	db := newTestDB(t)

	_, err := UpdateStatus(db, events.Noop{}, models.Actor{UserID: "admin-1", Admin: true}, "nope", "SHIPPED")
	require.Error(t, err)
	require.True(t, apperr.IsKind(err, apperr.NotFound))
}

func TestAdminCancelsPendingOrder(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, "p1", "10.00")
	seedProduct(t, db, "p2", "5.50")
	pub := &fakePublisher{}
	owner := models.Actor{GuestID: "guest-ada"}

	order, err := PlaceOrder(db, pub, owner, guestCheckoutRequest())
	require.NoError(t, err)

	admin := models.Actor{UserID: "admin-1", Admin: true}
	updated, err := UpdateStatus(db, pub, admin, order.ID, "CANCELLED")
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusCancelled, updated.Status)

	// The original owner sees the new status with the total unchanged.
	fetched, err := GetOrder(db, owner, order.ID)
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusCancelled, fetched.Status)
	require.True(t, fetched.Total.Equal(decimal.RequireFromString("25.50")))

	require.Equal(t, []string{events.TopicOrderPlaced, events.TopicOrderStatus}, pub.topics)
}

func TestUpdateStatusPermissiveTransitions(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, "p1", "10.00")

	req := guestCheckoutRequest()
	req.CartItems = req.CartItems[:1]
	order, err := PlaceOrder(db, events.Noop{}, models.Actor{GuestID: "owner"}, req)
	require.NoError(t, err)

	admin := models.Actor{UserID: "admin-1", Admin: true}
	// Any status may move to any other, including out of terminal states.
	for _, status := range []string{"DELIVERED", "PENDING", "CANCELLED", "PROCESSING"} {
		updated, err := UpdateStatus(db, events.Noop{}, admin, order.ID, status)
		require.NoError(t, err)
		require.Equal(t, models.OrderStatus(status), updated.Status)
	}
}

func TestUpdateStatusRecomputesTotalFromItems(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, "p1", "10.00")
	seedProduct(t, db, "p2", "5.50")

	order, err := PlaceOrder(db, events.Noop{}, models.Actor{GuestID: "owner"}, guestCheckoutRequest())
	require.NoError(t, err)

	// Simulate drift in the stored column.
	require.NoError(t, db.Model(&models.Order{}).
		Where("id = ?", order.ID).
		Update("total", decimal.RequireFromString("999.99")).Error)

	admin := models.Actor{UserID: "admin-1", Admin: true}
	updated, err := UpdateStatus(db, events.Noop{}, admin, order.ID, "PROCESSING")
	require.NoError(t, err)
	require.True(t, updated.Total.Equal(decimal.RequireFromString("25.50")), "got %s", updated.Total)
}
