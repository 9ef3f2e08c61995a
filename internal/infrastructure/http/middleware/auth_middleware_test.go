package middleware

import (
	"context"
	stdErrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/sales-review/errors"
	"github.com/johnquangdev/sales-review/internal/domain/entities"
	"github.com/johnquangdev/sales-review/internal/domain/policy"
)

type tokenTable map[string]*entities.User

func (t tokenTable) Authenticate(_ context.Context, token string) (*entities.User, error) {
	if u, ok := t[token]; ok {
		return u, nil
	}
	return nil, stdErrors.New("unknown token")
}

func run(t *testing.T, req *http.Request, mw ...echo.MiddlewareFunc) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	c := e.NewContext(req, httptest.NewRecorder())
	h := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return c, h(c)
}

func TestEchoAuth(t *testing.T) {
	admin := &entities.User{ID: uuid.New(), Role: entities.RoleAdmin}
	authn := tokenTable{"good": admin}

	t.Run("bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer good")

		c, err := run(t, req, EchoAuth(authn))
		require.NoError(t, err)

		user, ok := GetUser(c)
		require.True(t, ok)
		assert.Equal(t, admin.ID, user.ID)
		id, ok := GetUserID(c)
		require.True(t, ok)
		assert.Equal(t, admin.ID, id)
	})

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "good"})

		_, err := run(t, req, EchoAuth(authn))
		assert.NoError(t, err)
	})

	t.Run("missing token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		_, err := run(t, req, EchoAuth(authn))
		assert.True(t, errors.Is(err, errors.ErrorCode_UNAUTHENTICATED))
	})

	t.Run("rejected token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer stale")

		_, err := run(t, req, EchoAuth(authn))
		require.Error(t, err)
		var appErr errors.AppError
		require.True(t, stdErrors.As(err, &appErr))
		assert.Equal(t, errors.UnauthenticatedMessage, appErr.Message)
	})
}

func TestRequirePermission(t *testing.T) {
	authn := tokenTable{
		"admin": {ID: uuid.New(), Role: entities.RoleAdmin},
		"sales": {ID: uuid.New(), Role: entities.RoleSalesperson},
	}

	tests := []struct {
		name  string
		token string
		perm  policy.Permission
		code  errors.ErrorCode
	}{
		{name: "admin manages users", token: "admin", perm: policy.UsersManage},
		{name: "salesperson cannot manage users", token: "sales", perm: policy.UsersManage, code: errors.ErrorCode_PERMISSION_DENIED},
		{name: "salesperson reads meetings", token: "sales", perm: policy.MeetingsRead},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(echo.HeaderAuthorization, "Bearer "+tt.token)

			_, err := run(t, req, EchoAuth(authn), RequirePermission(tt.perm))
			if tt.code == 0 {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.code))
		})
	}
}

func TestRequirePermission_WithoutUser(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, err := run(t, req, RequirePermission(policy.MeetingsRead))
	assert.True(t, errors.Is(err, errors.ErrorCode_UNAUTHENTICATED))
}
