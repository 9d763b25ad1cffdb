package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/abubakar1702/techgeek/internal/engagement"
)

func TestAbortWithError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", NewNotFound("post not found"), http.StatusNotFound},
		{"forbidden", NewForbidden("not the post author"), http.StatusForbidden},
		{"unauthenticated", NewUnauthenticated("authentication required"), http.StatusUnauthorized},
		{"validation", NewValidation("invalid status"), http.StatusBadRequest},
		{"ledger not found sentinel", engagement.ErrNotFound, http.StatusNotFound},
		{"unknown error is opaque", errors.New("pq: connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			abortWithError(c, tt.err)

			if w.Code != tt.wantStatus {
				t.Errorf("abortWithError(%v) status = %d, want %d", tt.err, w.Code, tt.wantStatus)
			}
		})
	}
}

func TestAbortWithErrorHidesInternalDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	abortWithError(c, errors.New("pq: password authentication failed for user"))

	if body := w.Body.String(); body != `{"detail":"internal server error"}` {
		t.Errorf("body = %s, want opaque detail", body)
	}
}
