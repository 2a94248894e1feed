package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestService() *Service {
	return NewService("test-secret", "admin", "s3cret", time.Hour)
}

func TestAuthenticate(t *testing.T) {
	svc := newTestService()

	token, err := svc.Authenticate("admin", "s3cret")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	user, err := svc.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, "admin", user)
}

func TestAuthenticateBadCredentials(t *testing.T) {
	svc := newTestService()

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "admin", "nope"},
		{"wrong username", "root", "s3cret"},
		{"both wrong", "root", "nope"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Authenticate(tt.username, tt.password)
			assert.Equal(t, ErrBadCredentials, err)
		})
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	svc := newTestService()

	issued := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }

	token, err := svc.Authenticate("admin", "s3cret")
	assert.NoError(t, err)

	// Still valid just before expiry
	svc.now = func() time.Time { return issued.Add(59 * time.Minute) }
	_, err = svc.Verify(token)
	assert.NoError(t, err)

	// Invalid right after
	svc.now = func() time.Time { return issued.Add(61 * time.Minute) }
	_, err = svc.Verify(token)
	assert.Equal(t, ErrInvalidToken, err)
}

func TestVerifyGarbageToken(t *testing.T) {
	svc := newTestService()

	_, err := svc.Verify("not-a-token")
	assert.Equal(t, ErrInvalidToken, err)
}

func TestVerifyWrongSecret(t *testing.T) {
	svc := newTestService()
	other := NewService("different-secret", "admin", "s3cret", time.Hour)

	token, err := other.Authenticate("admin", "s3cret")
	assert.NoError(t, err)

	_, err = svc.Verify(token)
	assert.Equal(t, ErrInvalidToken, err)
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := newTestService()

	router := gin.New()
	router.GET("/protected", svc.Middleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": c.GetString("user")})
	})

	token, err := svc.Authenticate("admin", "s3cret")
	assert.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"valid token", "Bearer " + token, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"bare bearer", "Bearer", http.StatusUnauthorized},
		{"invalid token", "Bearer garbage", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
