package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"paggo-backend/internal/shared/auth"
)

func protectedRouter(t *testing.T) (*gin.Engine, *auth.Tokens) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tokens, err := auth.NewTokens("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("new tokens: %v", err)
	}
	r := gin.New()
	r.GET("/protected", Auth(tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": UserIDFromContext(c), "email": UserEmailFromContext(c)})
	})
	return r, tokens
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	r, _ := protectedRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAuthRejectsMalformedHeader(t *testing.T) {
	r, _ := protectedRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAuthRejectsInvalidToken(t *testing.T) {
	r, _ := protectedRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAuthAcceptsValidToken(t *testing.T) {
	r, tokens := protectedRouter(t)

	raw, err := tokens.Sign("user-1", "a@b.com")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", resp.Code, resp.Body.String())
	}
}
