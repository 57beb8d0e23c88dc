package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/hare-edu/hare-backend/internal/pkg/apperrors"
)

func newErrorTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/students", nil)
	return c, w
}

// Unhandled errors surface their cause in the 500 body so operators can
// read the failure without digging through logs.
func TestHandleAPIErrorUnhandledIncludesCause(t *testing.T) {
	c, w := newErrorTestContext(t)

	HandleAPIError(c, errors.New("connection refused"))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if !strings.Contains(w.Body.String(), "connection refused") {
		t.Errorf("body %q does not include the underlying cause", w.Body.String())
	}
}

func TestHandleAPIErrorInvalidCredentials(t *testing.T) {
	c, w := newErrorTestContext(t)

	HandleAPIError(c, apperrors.ErrInvalidCredentials)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if w.Header().Get("WWW-Authenticate") != "Bearer" {
		t.Errorf("WWW-Authenticate = %q, want Bearer", w.Header().Get("WWW-Authenticate"))
	}
}
