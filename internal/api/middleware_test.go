package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

const testSecret = "test-secret"

func identityFor(t *testing.T, header string) Identity {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var got Identity
	engine := gin.New()
	engine.Use(AuthMiddleware(testSecret))
	engine.GET("/", func(c *gin.Context) {
		got = CurrentIdentity(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	engine.ServeHTTP(httptest.NewRecorder(), req)
	return got
}

func TestAuthMiddleware(t *testing.T) {
	valid, err := IssueToken(testSecret, 42, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}
	expired, err := IssueToken(testSecret, 42, -time.Hour)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}
	wrongKey, err := IssueToken("other-secret", 42, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}

	tests := []struct {
		name       string
		header     string
		wantUserID int64
		wantAuthed bool
	}{
		{"no header is anonymous", "", 0, false},
		{"valid token resolves identity", "Bearer " + valid, 42, true},
		{"expired token is anonymous", "Bearer " + expired, 0, false},
		{"wrong key is anonymous", "Bearer " + wrongKey, 0, false},
		{"garbage token is anonymous", "Bearer not-a-jwt", 0, false},
		{"non-bearer scheme is anonymous", "Basic dXNlcjpwYXNz", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := identityFor(t, tt.header)
			if got.Authenticated != tt.wantAuthed || got.UserID != tt.wantUserID {
				t.Errorf("identity = {UserID: %d, Authenticated: %v}, want {UserID: %d, Authenticated: %v}",
					got.UserID, got.Authenticated, tt.wantUserID, tt.wantAuthed)
			}
		})
	}
}

func TestRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.Use(AuthMiddleware(testSecret))
	protected := engine.Group("", RequireAuth())
	protected.GET("/me", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	t.Run("anonymous gets 401", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
		}
	})

	t.Run("authenticated passes", func(t *testing.T) {
		token, err := IssueToken(testSecret, 7, time.Hour)
		if err != nil {
			t.Fatalf("IssueToken() error = %v", err)
		}
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
		}
	})
}
