package orderControllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"regexp"
	"strings"

	"github.com/Hassanfedawy/dr.mano/apperr"
	"github.com/Hassanfedawy/dr.mano/auth"
	cartControllers "github.com/Hassanfedawy/dr.mano/controllers/cart"
	"github.com/Hassanfedawy/dr.mano/events"
	"github.com/Hassanfedawy/dr.mano/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// -------- Request Structs --------

type CheckoutItem struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type PlaceOrderRequest struct {
	ShippingAddress string `json:"shippingAddress"`
	City            string `json:"city"`
	Country         string `json:"country"`
	PaymentMethod   string `json:"paymentMethod"`
	PhoneNumber     string `json:"phoneNumber"`
	GuestName       string `json:"guestName"`
	GuestEmail      string `json:"guestEmail"`
	// CartItems lets a client-held (guest) cart submit its lines directly.
	// When empty, the actor's server-side cart is used instead.
	CartItems []CheckoutItem `json:"cartItems"`
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// -------- Helpers --------

// composeShippingAddress folds the optional city and country fragments into
// the single stored address string; the schema has no separate columns.
func composeShippingAddress(address, city, country string) string {
	parts := []string{address}
	if city != "" {
		parts = append(parts, city)
	}
	if country != "" {
		parts = append(parts, country)
	}
	return strings.Join(parts, ", ")
}

func validateCheckoutItems(items []CheckoutItem) error {
	if len(items) == 0 {
		return apperr.New(apperr.Validation, "cart is empty")
	}
	for _, item := range items {
		if item.ProductID == "" {
			return apperr.New(apperr.Validation, "productId is required for every cart item")
		}
		if item.Quantity < 1 {
			return apperr.Validationf("invalid quantity for product %s", item.ProductID)
		}
		if item.Price.Sign() < 0 {
			return apperr.Validationf("invalid price for product %s", item.ProductID)
		}
	}
	return nil
}

func (req *PlaceOrderRequest) validate(actor models.Actor) error {
	if req.ShippingAddress == "" {
		return apperr.New(apperr.Validation, "shipping address is required")
	}
	if req.PaymentMethod == "" {
		return apperr.New(apperr.Validation, "payment method is required")
	}
	if req.PhoneNumber == "" {
		return apperr.New(apperr.Validation, "phone number is required")
	}
	if !actor.IsUser() {
		if req.GuestName == "" {
			return apperr.New(apperr.Validation, "guest name is required")
		}
		if !emailPattern.MatchString(req.GuestEmail) {
			return apperr.New(apperr.Validation, "a valid guest email is required")
		}
	}
	return nil
}

// serverCartItems loads the actor's server-side cart and snapshots each line
// at the product's current price.
func serverCartItems(db *gorm.DB, actor models.Actor) ([]CheckoutItem, error) {
	cart, err := cartControllers.GetCart(db, actor)
	if err != nil {
		return nil, err
	}
	items := make([]CheckoutItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, CheckoutItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Product.Price,
		})
	}
	return items, nil
}

// -------- Core Logic --------

// PlaceOrder validates exhaustively, recomputes the total server-side, then
// persists the order, its items and the cart clear in a single transaction.
// The cart is untouched unless the order write succeeds. Placing an order is
// not idempotent: a second call with the same cart creates a second order
// against an already-empty cart.
func PlaceOrder(db *gorm.DB, pub events.Publisher, actor models.Actor, req PlaceOrderRequest) (*models.Order, error) {
	if err := req.validate(actor); err != nil {
		return nil, err
	}

	items := req.CartItems
	if len(items) == 0 {
		var err error
		if items, err = serverCartItems(db, actor); err != nil {
			return nil, err
		}
	}
	if err := validateCheckoutItems(items); err != nil {
		return nil, err
	}

	// Authoritative total; any client-sent figure is ignored.
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	order := models.Order{
		Total:           total,
		Status:          models.OrderStatusPending,
		ShippingAddress: composeShippingAddress(req.ShippingAddress, req.City, req.Country),
		PaymentMethod:   req.PaymentMethod,
		PhoneNumber:     req.PhoneNumber,
	}
	if actor.IsUser() {
		order.UserID = &actor.UserID
	} else {
		order.GuestID = actor.GuestID
		order.GuestName = req.GuestName
		order.GuestEmail = req.GuestEmail
	}
	for _, item := range items {
		order.Items = append(order.Items, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			var product models.Product
			if err := tx.First(&product, "id = ?", item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.New(apperr.Conflict, "invalid product reference")
				}
				return err
			}
		}

		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		return cartControllers.ClearItems(tx, actor)
	})
	if err != nil {
		var appErr *apperr.Error
		switch {
		case errors.As(err, &appErr):
			return nil, err
		case errors.Is(err, gorm.ErrForeignKeyViolated):
			return nil, apperr.Wrap(apperr.Conflict, "invalid product reference", err)
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return nil, apperr.Wrap(apperr.Conflict, "conflicting order", err)
		default:
			return nil, apperr.Wrap(apperr.Persistence, "failed to place order", err)
		}
	}

	var created models.Order
	if err := db.Preload("Items.Product").Preload("User").First(&created, "id = ?", order.ID).Error; err != nil {
		return nil, apperr.Wrap(apperr.Persistence, "failed to fetch created order", err)
	}

	publishOrderEvent(pub, events.TopicOrderPlaced, &created)
	broadcastOrderUpdate(created)
	return &created, nil
}

// GetOrder fetches one order for its owner or an admin. Absent and not-owned
// orders answer the same not-found error so existence is never leaked.
func GetOrder(db *gorm.DB, actor models.Actor, orderID string) (*models.Order, error) {
	var order models.Order
	if err := db.Preload("Items.Product").Preload("User").First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "order not found")
		}
		return nil, apperr.Wrap(apperr.Persistence, "failed to fetch order", err)
	}
	if !actor.Admin && !actor.OwnsOrder(&order) {
		return nil, apperr.New(apperr.NotFound, "order not found")
	}
	return &order, nil
}

// ListOrders returns the actor's own orders, newest first.
func ListOrders(db *gorm.DB, actor models.Actor) ([]models.Order, error) {
	query := db.Preload("Items.Product").Order("created_at DESC")
	if actor.IsUser() {
		query = query.Where("user_id = ?", actor.UserID)
	} else if actor.GuestID != "" {
		query = query.Where("guest_id = ?", actor.GuestID)
	} else {
		return []models.Order{}, nil
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, apperr.Wrap(apperr.Persistence, "failed to fetch orders", err)
	}
	return orders, nil
}

func publishOrderEvent(pub events.Publisher, topic string, order *models.Order) {
	if pub == nil {
		return
	}
	event := events.OrderEvent{
		OrderID: order.ID,
		GuestID: order.GuestID,
		Status:  string(order.Status),
		Total:   order.Total.StringFixed(2),
	}
	if order.UserID != nil {
		event.UserID = *order.UserID
	}
	if err := pub.Publish(context.Background(), topic, order.ID, event); err != nil {
		log.Printf("❌ Failed to publish %s event: %v", topic, err)
	}
}

// -------- Handlers --------

func resolveActor(c *gin.Context, mintGuest bool) models.Actor {
	if userID, exists := c.Get("user_id"); exists {
		role, _ := c.Get("role")
		return models.Actor{UserID: userID.(string), Admin: role == models.RoleAdmin}
	}
	if mintGuest {
		return models.Actor{GuestID: auth.EnsureGuestID(c)}
	}
	return models.Actor{GuestID: auth.GuestID(c)}
}

func respondError(c *gin.Context, err error) {
	status := apperr.Status(err)
	if status == http.StatusInternalServerError {
		log.Printf("❌ order error: %v", err)
	}
	c.JSON(status, gin.H{"error": apperr.Message(err)})
}

// POST /orders
func PlaceOrderHandler(db *gorm.DB, pub events.Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		order, err := PlaceOrder(db, pub, resolveActor(c, true), req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

// GET /orders
func ListOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := ListOrders(db, resolveActor(c, false))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /orders/:id
func GetOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := GetOrder(db, resolveActor(c, false), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}
