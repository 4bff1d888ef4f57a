package orderControllers

import (
	"errors"
	"net/http"

	"github.com/Hassanfedawy/dr.mano/apperr"
	"github.com/Hassanfedawy/dr.mano/events"
	"github.com/Hassanfedawy/dr.mano/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus moves an order to a new fulfilment status. Any status may move
// to any other; the permissive graph is kept deliberately as an admin
// override (see DESIGN.md). The returned order carries a total recomputed
// from its items rather than the stored column.
func UpdateStatus(db *gorm.DB, pub events.Publisher, actor models.Actor, orderID, status string) (*models.Order, error) {
	if !actor.Admin {
		return nil, apperr.New(apperr.Authorization, "admin privilege required")
	}

	newStatus, err := models.ParseOrderStatus(status)
	if err != nil {
		return nil, apperr.New(apperr.Validation, "invalid order status")
	}

	var order models.Order
	if err := db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "order not found")
		}
		return nil, apperr.Wrap(apperr.Persistence, "failed to fetch order", err)
	}

	if err := db.Model(&order).Update("status", newStatus).Error; err != nil {
		return nil, apperr.Wrap(apperr.Persistence, "failed to update order status", err)
	}

	var updated models.Order
	if err := db.Preload("Items.Product").Preload("User").First(&updated, "id = ?", orderID).Error; err != nil {
		return nil, apperr.Wrap(apperr.Persistence, "failed to fetch updated order", err)
	}
	updated.Total = updated.ItemsTotal()

	publishOrderEvent(pub, events.TopicOrderStatus, &updated)
	broadcastOrderUpdate(updated)
	return &updated, nil
}

// -------- Admin Handlers --------

// GET /admin/orders
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("User").
			Preload("Items.Product").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			respondError(c, apperr.Wrap(apperr.Persistence, "failed to fetch orders", err))
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /admin/orders/:id
func AdminGetOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := GetOrder(db, resolveActor(c, false), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		order.Total = order.ItemsTotal()
		c.JSON(http.StatusOK, order)
	}
}

// PATCH /admin/orders/:id
func UpdateOrderStatusHandler(db *gorm.DB, pub events.Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		order, err := UpdateStatus(db, pub, resolveActor(c, false), c.Param("id"), req.Status)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// DELETE /admin/orders/:id
func DeleteOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("id")

		var order models.Order
		if err := db.First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			respondError(c, apperr.Wrap(apperr.Persistence, "failed to fetch order", err))
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}
			return tx.Delete(&order).Error
		})
		if err != nil {
			respondError(c, apperr.Wrap(apperr.Persistence, "failed to delete order", err))
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
	}
}
