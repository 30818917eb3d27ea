package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func runChain(mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})(c)
	return rec, c
}

func TestJWTAuth_ValidToken(t *testing.T) {
	raw := signToken(t, testSecret, jwt.MapClaims{
		"sub":  float64(42),
		"role": "OWNER",
		"exp":  time.Now().Add(time.Minute).Unix(),
	})

	rec, c := runChain(JWTAuth(testSecret), "Bearer "+raw)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(42), c.Get("user_id"))
	assert.Equal(t, "OWNER", c.Get("role"))
}

func TestJWTAuth_Rejections(t *testing.T) {
	expired := signToken(t, testSecret, jwt.MapClaims{
		"sub":  float64(1),
		"role": "OWNER",
		"exp":  time.Now().Add(-time.Minute).Unix(),
	})
	wrongKey := signToken(t, "other-secret", jwt.MapClaims{
		"sub":  float64(1),
		"role": "OWNER",
		"exp":  time.Now().Add(time.Minute).Unix(),
	})

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not.a.jwt"},
		{"expired", "Bearer " + expired},
		{"wrong secret", "Bearer " + wrongKey},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, _ := runChain(JWTAuth(testSecret), tc.header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestRequireRole(t *testing.T) {
	cases := []struct {
		name    string
		role    interface{}
		allowed []string
		want    int
	}{
		{"allowed role", "OWNER", []string{"OWNER"}, http.StatusOK},
		{"one of several", "CUSTOMER", []string{"OWNER", "CUSTOMER"}, http.StatusOK},
		{"disallowed role", "CUSTOMER", []string{"OWNER"}, http.StatusForbidden},
		{"missing role", nil, []string{"OWNER"}, http.StatusForbidden},
		{"non-string role", 7, []string{"OWNER"}, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			if tc.role != nil {
				c.Set("role", tc.role)
			}
			_ = RequireRole(tc.allowed...)(func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			})(c)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}
