package oauth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/sales-review/internal/infrastructure/cache"
)

func TestStateManager_OneTimeUse(t *testing.T) {
	store := cache.NewMemoryStore()
	t.Cleanup(store.Close)
	sm := NewStateManager(store)
	ctx := context.Background()

	state, err := sm.GenerateState(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, state)

	ok, err := sm.ConsumeState(ctx, state)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = sm.ConsumeState(ctx, state)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = sm.ConsumeState(ctx, "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGoogleProvider_AuthURL(t *testing.T) {
	g := NewGoogleProvider("client-id", "secret", "http://localhost/cb")
	u := g.AuthURL("xyz")
	assert.Contains(t, u, "state=xyz")
	assert.Contains(t, u, "client_id=client-id")
}

func TestGoogleProvider_UserInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"123","email":"linh@example.com","verified_email":true,"name":"Linh"}`))
	}))
	defer srv.Close()

	g := NewGoogleProvider("id", "secret", "http://localhost/cb")
	g.userInfoURL = srv.URL

	id, err := g.userInfo(context.Background(), srv.Client())
	require.NoError(t, err)
	assert.Equal(t, "google", id.Provider)
	assert.Equal(t, "123", id.Subject)
	assert.Equal(t, "linh@example.com", id.Email)
	assert.True(t, id.EmailVerified)
}

func TestGoogleProvider_UserInfoErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"non-200", http.StatusUnauthorized, `{"error":"invalid"}`},
		{"missing email", http.StatusOK, `{"id":"1"}`},
		{"bad json", http.StatusOK, `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			g := NewGoogleProvider("id", "secret", "http://localhost/cb")
			g.userInfoURL = srv.URL
			_, err := g.userInfo(context.Background(), srv.Client())
			assert.Error(t, err)
		})
	}
}
