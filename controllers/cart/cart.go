package cartControllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/Hassanfedawy/dr.mano/apperr"
	"github.com/Hassanfedawy/dr.mano/auth"
	"github.com/Hassanfedawy/dr.mano/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AddItemInput struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

type UpdateItemInput struct {
	Quantity int `json:"quantity"`
}

func ownerScope(actor models.Actor) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if actor.UserID != "" {
			return db.Where("user_id = ?", actor.UserID)
		}
		return db.Where("guest_id = ?", actor.GuestID)
	}
}

func ownsCart(actor models.Actor, cart *models.Cart) bool {
	if actor.UserID != "" {
		return cart.UserID != nil && *cart.UserID == actor.UserID
	}
	return actor.GuestID != "" && cart.GuestID != nil && *cart.GuestID == actor.GuestID
}

// AddItem creates the owner's cart on first use, then inserts or increments
// the (cart, product) row. Both two-step sequences run inside one transaction
// so concurrent adds cannot produce duplicate rows.
func AddItem(db *gorm.DB, actor models.Actor, productID string, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, apperr.New(apperr.Validation, "quantity must be at least 1")
	}
	if productID == "" {
		return nil, apperr.New(apperr.Validation, "productId is required")
	}

	var cartID string
	err := db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.NotFound, "product not found")
			}
			return apperr.Wrap(apperr.Persistence, "failed to validate product", err)
		}

		var cart models.Cart
		err := tx.Scopes(ownerScope(actor)).First(&cart).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			cart = models.Cart{}
			if actor.UserID != "" {
				cart.UserID = &actor.UserID
			} else {
				cart.GuestID = &actor.GuestID
			}
			if err := tx.Create(&cart).Error; err != nil {
				return apperr.Wrap(apperr.Persistence, "failed to create cart", err)
			}
		} else if err != nil {
			return apperr.Wrap(apperr.Persistence, "failed to fetch cart", err)
		}
		cartID = cart.ID

		var item models.CartItem
		err = tx.Where("cart_id = ? AND product_id = ?", cart.ID, productID).First(&item).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			item = models.CartItem{
				CartID:    cart.ID,
				ProductID: productID,
				Quantity:  quantity,
			}
			if err := tx.Create(&item).Error; err != nil {
				return apperr.Wrap(apperr.Persistence, "failed to add item to cart", err)
			}
			return nil
		} else if err != nil {
			return apperr.Wrap(apperr.Persistence, "failed to fetch cart item", err)
		}

		if err := tx.Model(&item).Update("quantity", item.Quantity+quantity).Error; err != nil {
			return apperr.Wrap(apperr.Persistence, "failed to update cart item", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var cart models.Cart
	if err := db.Preload("Items.Product").First(&cart, "id = ?", cartID).Error; err != nil {
		return nil, apperr.Wrap(apperr.Persistence, "failed to fetch cart", err)
	}
	return &cart, nil
}

// UpdateItemQuantity sets the item's quantity. A quantity of zero or less
// removes the item, in which case the returned item is nil.
func UpdateItemQuantity(db *gorm.DB, actor models.Actor, itemID string, quantity int) (*models.CartItem, error) {
	var item models.CartItem
	if err := db.First(&item, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "cart item not found")
		}
		return nil, apperr.Wrap(apperr.Persistence, "failed to fetch cart item", err)
	}

	var cart models.Cart
	if err := db.First(&cart, "id = ?", item.CartID).Error; err != nil {
		return nil, apperr.Wrap(apperr.Persistence, "failed to fetch cart", err)
	}
	if !ownsCart(actor, &cart) {
		return nil, apperr.New(apperr.Authorization, "cart item does not belong to caller")
	}

	if quantity <= 0 {
		if err := db.Delete(&item).Error; err != nil {
			return nil, apperr.Wrap(apperr.Persistence, "failed to remove cart item", err)
		}
		return nil, nil
	}

	if err := db.Model(&item).Update("quantity", quantity).Error; err != nil {
		return nil, apperr.Wrap(apperr.Persistence, "failed to update cart item", err)
	}
	return &item, nil
}

// RemoveItem deletes the item. Absent and not-owned items answer the same
// not-found error so callers cannot probe other shoppers' carts.
func RemoveItem(db *gorm.DB, actor models.Actor, itemID string) error {
	var item models.CartItem
	if err := db.First(&item, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.NotFound, "cart item not found")
		}
		return apperr.Wrap(apperr.Persistence, "failed to fetch cart item", err)
	}

	var cart models.Cart
	if err := db.First(&cart, "id = ?", item.CartID).Error; err != nil {
		return apperr.Wrap(apperr.Persistence, "failed to fetch cart", err)
	}
	if !ownsCart(actor, &cart) {
		return apperr.New(apperr.NotFound, "cart item not found")
	}

	if err := db.Delete(&item).Error; err != nil {
		return apperr.Wrap(apperr.Persistence, "failed to remove cart item", err)
	}
	return nil
}

// GetCart returns the owner's cart with product details joined in. Owners
// without a cart get an empty placeholder, never nil.
func GetCart(db *gorm.DB, actor models.Actor) (*models.Cart, error) {
	var cart models.Cart
	err := db.Preload("Items.Product").Scopes(ownerScope(actor)).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		placeholder := models.Cart{Items: []models.CartItem{}}
		if actor.UserID != "" {
			placeholder.UserID = &actor.UserID
		} else if actor.GuestID != "" {
			placeholder.GuestID = &actor.GuestID
		}
		return &placeholder, nil
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Persistence, "failed to fetch cart", err)
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return &cart, nil
}

// ClearItems empties the cart belonging to the actor, keeping the cart row.
// Called inside the order placement transaction.
func ClearItems(tx *gorm.DB, actor models.Actor) error {
	var cart models.Cart
	err := tx.Scopes(ownerScope(actor)).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
}

// -------- Handlers --------

func resolveActor(c *gin.Context) models.Actor {
	if userID, exists := c.Get("user_id"); exists {
		role, _ := c.Get("role")
		return models.Actor{UserID: userID.(string), Admin: role == models.RoleAdmin}
	}
	return models.Actor{GuestID: auth.EnsureGuestID(c)}
}

func respondError(c *gin.Context, err error) {
	status := apperr.Status(err)
	if status == http.StatusInternalServerError {
		log.Printf("❌ cart error: %v", err)
	}
	c.JSON(status, gin.H{"error": apperr.Message(err)})
}

// GET /cart
func GetCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := GetCart(db, resolveActor(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

// POST /cart
func AddItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		cart, err := AddItem(db, resolveActor(c), input.ProductID, input.Quantity)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

// PUT /cart/items/:id
func UpdateItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input UpdateItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		item, err := UpdateItemQuantity(db, resolveActor(c), c.Param("id"), input.Quantity)
		if err != nil {
			respondError(c, err)
			return
		}
		if item == nil {
			c.JSON(http.StatusOK, gin.H{"message": "Cart item removed"})
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// DELETE /cart/items/:id
func RemoveItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := RemoveItem(db, resolveActor(c), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart item removed"})
	}
}
