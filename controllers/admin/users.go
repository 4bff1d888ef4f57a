package adminController

import (
	"errors"
	"net/http"

	"github.com/Hassanfedawy/dr.mano/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UpdateUserInput struct {
	Name            *string `json:"name"`
	Email           *string `json:"email"`
	PhoneNumber     *string `json:"phoneNumber"`
	ShippingAddress *string `json:"shippingAddress"`
	Role            *string `json:"role"`
	Password        *string `json:"password"`
}

// GET /admin/users
func GetAllUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []models.User
		if err := db.Order("created_at DESC").Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

// PUT /admin/users/:id
func UpdateUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := db.First(&user, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
			}
			return
		}

		var input UpdateUserInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.Password != nil {
			if len(*input.Password) < 6 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 6 characters long"})
				return
			}
			hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
				return
			}
			user.Password = string(hashed)
		}
		if input.Role != nil {
			if *input.Role != models.RoleUser && *input.Role != models.RoleAdmin {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
				return
			}
			user.Role = *input.Role
		}
		if input.Name != nil {
			user.Name = *input.Name
		}
		if input.Email != nil {
			user.Email = *input.Email
		}
		if input.PhoneNumber != nil {
			user.PhoneNumber = *input.PhoneNumber
		}
		if input.ShippingAddress != nil {
			user.ShippingAddress = *input.ShippingAddress
		}

		if err := db.Save(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusConflict, gin.H{"error": "Phone number already in use"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
			return
		}

		c.JSON(http.StatusOK, user)
	}
}

// DELETE /admin/users/:id
func DeleteUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := db.First(&user, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			// Orphan the user's orders rather than erasing purchase history.
			if err := tx.Model(&models.Order{}).
				Where("user_id = ?", user.ID).
				Update("user_id", nil).Error; err != nil {
				return err
			}
			var cart models.Cart
			if err := tx.Where("user_id = ?", user.ID).First(&cart).Error; err == nil {
				if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
					return err
				}
				if err := tx.Delete(&cart).Error; err != nil {
					return err
				}
			}
			return tx.Delete(&user).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
	}
}
