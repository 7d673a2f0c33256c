package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const testSecret = "test-secret"

func signTestToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func staffClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"sub":              "u1",
		"email":            "front@h1.test",
		"role":             "staff",
		"hotel_id":         "H1",
		"room_number":      "",
		"can_manage_rooms": true,
		"can_manage_staff": false,
		"exp":              time.Now().Add(time.Hour).Unix(),
	}
}

func runAuth(t *testing.T, header string) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/rooms", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(testSecret)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	err := handler(c)
	return c, err
}

func TestAuthValidToken(t *testing.T) {
	token := signTestToken(t, testSecret, staffClaims())
	c, err := runAuth(t, "Bearer "+token)
	if err != nil {
		t.Fatalf("valid token rejected: %v", err)
	}

	if got := c.Get("user_id"); got != "u1" {
		t.Errorf("user_id claim: %v", got)
	}
	if got := c.Get("role"); got != "staff" {
		t.Errorf("role claim: %v", got)
	}
	if got := c.Get("hotel_id"); got != "H1" {
		t.Errorf("hotel_id claim: %v", got)
	}
	if got := c.Get("can_manage_rooms"); got != true {
		t.Errorf("can_manage_rooms claim: %v", got)
	}
}

func TestAuthLowercaseBearer(t *testing.T) {
	token := signTestToken(t, testSecret, staffClaims())
	if _, err := runAuth(t, "bearer "+token); err != nil {
		t.Fatalf("lowercase scheme rejected: %v", err)
	}
}

func TestAuthMissingHeader(t *testing.T) {
	_, err := runAuth(t, "")
	assertHTTPError(t, err, http.StatusUnauthorized)
}

func TestAuthMalformedHeader(t *testing.T) {
	_, err := runAuth(t, "Token abc")
	assertHTTPError(t, err, http.StatusUnauthorized)

	_, err = runAuth(t, "Bearer")
	assertHTTPError(t, err, http.StatusUnauthorized)
}

func TestAuthWrongSecret(t *testing.T) {
	token := signTestToken(t, "other-secret", staffClaims())
	_, err := runAuth(t, "Bearer "+token)
	assertHTTPError(t, err, http.StatusUnauthorized)
}

func TestAuthExpiredToken(t *testing.T) {
	claims := staffClaims()
	claims["exp"] = time.Now().Add(-time.Minute).Unix()
	token := signTestToken(t, testSecret, claims)
	_, err := runAuth(t, "Bearer "+token)
	assertHTTPError(t, err, http.StatusUnauthorized)
}

func TestAuthUnsignedAlgRejected(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, staffClaims()).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none token: %v", err)
	}
	_, err = runAuth(t, "Bearer "+token)
	assertHTTPError(t, err, http.StatusUnauthorized)
}

func assertHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if he.Code != code {
		t.Fatalf("expected status %d, got %d", code, he.Code)
	}
}
