package profileController

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Hassanfedawy/dr.mano/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, password string) models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := models.User{
		ID:          "user-1",
		Name:        "Ada",
		PhoneNumber: "01012345678",
		Email:       "ada@example.com",
		Password:    string(hashed),
		Role:        models.RoleUser,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func doRequest(t *testing.T, handler gin.HandlerFunc, userID, method, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("user_id", userID)
	handler(c)
	return w
}

func TestGetProfileIncludesRecentOrders(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "secret123")

	// Seven orders; the profile carries only the five newest.
	for i := 0; i < 7; i++ {
		order := models.Order{
			ID:              fmt.Sprintf("o%d", i),
			UserID:          &user.ID,
			Total:           decimal.RequireFromString("10.00"),
			Status:          models.OrderStatusPending,
			ShippingAddress: "12 Elm St",
			PaymentMethod:   "cash",
			PhoneNumber:     user.PhoneNumber,
			CreatedAt:       time.Date(2026, 1, 1+i, 0, 0, 0, 0, time.UTC),
		}
		require.NoError(t, db.Create(&order).Error)
	}

	w := doRequest(t, GetProfile(db), user.ID, http.MethodGet, "")
	require.Equal(t, http.StatusOK, w.Code)

	var got struct {
		Name   string         `json:"name"`
		Orders []models.Order `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Equal(t, "Ada", got.Name)
	require.Len(t, got.Orders, 5)
	require.Equal(t, "o6", got.Orders[0].ID)
	require.NotContains(t, w.Body.String(), "secret123")
}

func TestGetProfileUnknownUser(t *testing.T) {
	db := newTestDB(t)

	w := doRequest(t, GetProfile(db), "nope", http.MethodGet, "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateProfilePartialFields(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "secret123")

	w := doRequest(t, UpdateProfile(db), user.ID, http.MethodPut, `{"name":"Ada L."}`)
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.User
	require.NoError(t, db.First(&updated, "id = ?", user.ID).Error)
	require.Equal(t, "Ada L.", updated.Name)
	require.Equal(t, "ada@example.com", updated.Email)
}

func TestUpdatePasswordWrongCurrent(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "secret123")

	w := doRequest(t, UpdatePassword(db), user.ID, http.MethodPut,
		`{"currentPassword":"wrong","newPassword":"newsecret"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var unchanged models.User
	require.NoError(t, db.First(&unchanged, "id = ?", user.ID).Error)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(unchanged.Password), []byte("secret123")))
}

func TestUpdatePasswordSuccess(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "secret123")

	w := doRequest(t, UpdatePassword(db), user.ID, http.MethodPut,
		`{"currentPassword":"secret123","newPassword":"newsecret"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.User
	require.NoError(t, db.First(&updated, "id = ?", user.ID).Error)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("newsecret")))
	require.Error(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("secret123")))
}

func TestUpdatePasswordTooShort(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "secret123")

	w := doRequest(t, UpdatePassword(db), user.ID, http.MethodPut,
		`{"currentPassword":"secret123","newPassword":"short"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
