package productController

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

func doRequest(t *testing.T, handler gin.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	handler(c)
	return w
}

type listResponse struct {
	Products   []models.Product `json:"products"`
	Pagination struct {
		Total   int64 `json:"total"`
		Pages   int   `json:"pages"`
		Current int   `json:"current"`
	} `json:"pagination"`
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Skin Care":        "skin-care",
		"  Lip & Eye  ":    "lip--eye",
		"Soins Visage 2.0": "soins-visage-20",
		"---":              "",
	}
	for name, want := range cases {
		require.Equal(t, want, slugify(name), "slugify(%q)", name)
	}
}

func TestCreateCategoryDerivesSlug(t *testing.T) {
	db := newTestDB(t)

	w := doRequest(t, CreateCategory(db), http.MethodPost, "/categories", `{"name":"Skin Care"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Equal(t, "skin-care", created.Slug)
}

func TestCreateCategoryKeepsExplicitSlug(t *testing.T) {
	db := newTestDB(t)

	w := doRequest(t, CreateCategory(db), http.MethodPost, "/categories",
		`{"name":"Skin Care","slug":"soins"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Equal(t, "soins", created.Slug)
}

func TestCreateCategoryDuplicateSlug(t *testing.T) {
	db := newTestDB(t)

	w := doRequest(t, CreateCategory(db), http.MethodPost, "/categories", `{"name":"Skin Care"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	// Same name derives the same slug; the unique index rejects it.
	w = doRequest(t, CreateCategory(db), http.MethodPost, "/categories", `{"name":"Skin Care"}`)
	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, w.Body.String(), "slug already exists")

	var count int64
	require.NoError(t, db.Model(&models.Category{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()
	skincare := models.Category{ID: "c1", Name: "Skin Care", Slug: "skin-care"}
	makeup := models.Category{ID: "c2", Name: "Makeup", Slug: "makeup"}
	require.NoError(t, db.Create(&skincare).Error)
	require.NoError(t, db.Create(&makeup).Error)

	// 15 skincare and 10 makeup products, each a day apart.
	for i := 0; i < 25; i++ {
		categoryID := skincare.ID
		if i >= 15 {
			categoryID = makeup.ID
		}
		product := models.Product{
			ID:         fmt.Sprintf("p%02d", i),
			Name:       fmt.Sprintf("Product %02d", i),
			Price:      decimal.RequireFromString("10.00"),
			Stock:      5,
			CategoryID: &categoryID,
			CreatedAt:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
		}
		require.NoError(t, db.Create(&product).Error)
	}
}

func TestGetProductsPagination(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)

	w := doRequest(t, GetProducts(db), http.MethodGet, "/products?page=2&limit=10", "")
	require.Equal(t, http.StatusOK, w.Code)

	var got listResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got.Products, 10)
	require.EqualValues(t, 25, got.Pagination.Total)
	require.Equal(t, 3, got.Pagination.Pages)
	require.Equal(t, 2, got.Pagination.Current)

	// Newest first: page 2 starts at the 11th newest product.
	require.Equal(t, "p14", got.Products[0].ID)
}

func TestGetProductsCategoryFilter(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)

	w := doRequest(t, GetProducts(db), http.MethodGet, "/products?category=makeup&limit=100", "")
	require.Equal(t, http.StatusOK, w.Code)

	var got listResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got.Products, 10)
	require.EqualValues(t, 10, got.Pagination.Total)
	require.Equal(t, 1, got.Pagination.Pages)
	for _, p := range got.Products {
		require.NotNil(t, p.Category)
		require.Equal(t, "makeup", p.Category.Slug)
	}
}

func TestGetProductsUnknownCategory(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)

	w := doRequest(t, GetProducts(db), http.MethodGet, "/products?category=perfume", "")
	require.Equal(t, http.StatusOK, w.Code)

	var got listResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Empty(t, got.Products)
	require.EqualValues(t, 0, got.Pagination.Total)
}

func TestGetProductsBadPageDefaults(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)

	w := doRequest(t, GetProducts(db), http.MethodGet, "/products?page=zero&limit=-3", "")
	require.Equal(t, http.StatusOK, w.Code)

	var got listResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got.Products, 10)
	require.Equal(t, 1, got.Pagination.Current)
}
