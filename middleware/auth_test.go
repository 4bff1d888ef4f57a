package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Hassanfedawy/dr.mano/auth"
	"github.com/Hassanfedawy/dr.mano/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T, target string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, w
}

func TestValidateTokenQueryAcceptsQueryToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token, err := auth.IssueToken("admin-1", models.RoleAdmin)
	require.NoError(t, err)

	c, _ := testContext(t, "/admin/orders/ws?token="+token)
	ValidateTokenQuery(c)

	require.False(t, c.IsAborted())
	userID, _ := c.Get("user_id")
	require.Equal(t, "admin-1", userID)
	role, _ := c.Get("role")
	require.Equal(t, models.RoleAdmin, role)
}

func TestValidateTokenQueryPrefersHeader(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token, err := auth.IssueToken("admin-1", models.RoleAdmin)
	require.NoError(t, err)

	c, _ := testContext(t, "/admin/orders/ws?token=garbage")
	c.Request.Header.Set("Authorization", "Bearer "+token)
	ValidateTokenQuery(c)

	require.False(t, c.IsAborted())
	userID, _ := c.Get("user_id")
	require.Equal(t, "admin-1", userID)
}

func TestValidateTokenQueryRejectsMissingToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	c, w := testContext(t, "/admin/orders/ws")
	ValidateTokenQuery(c)

	require.True(t, c.IsAborted())
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestValidateTokenRejectsBadToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	c, w := testContext(t, "/profile")
	c.Request.Header.Set("Authorization", "Bearer not-a-token")
	ValidateToken(c)

	require.True(t, c.IsAborted())
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
