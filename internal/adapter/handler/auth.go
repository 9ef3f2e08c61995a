package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/sales-review/errors"
	authDTO "github.com/johnquangdev/sales-review/internal/adapter/dto/auth"
	"github.com/johnquangdev/sales-review/internal/adapter/presenter"
	"github.com/johnquangdev/sales-review/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/sales-review/internal/usecase/auth"
)

// Auth handles authentication HTTP requests
type Auth struct {
	authService  *auth.Service
	secureCookie bool
	logger       *zap.Logger
}

// NewAuth creates a new auth handler. secureCookie marks the access_token
// cookie Secure and should be set behind HTTPS.
func NewAuth(authService *auth.Service, secureCookie bool, logger *zap.Logger) *Auth {
	return &Auth{
		authService:  authService,
		secureCookie: secureCookie,
		logger:       logger,
	}
}

// Login handles username/password sign-in
// @Summary      Sign in with username and password
// @Description  Issues an access token and a refresh token. Repeated failures for one username are rate limited.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      authDTO.LoginRequest  true  "Credentials"
// @Success      200      {object}  authDTO.AuthResponse
// @Failure      400      {object}  map[string]interface{}  "Validation failed"
// @Failure      401      {object}  map[string]interface{}  "Invalid username or password"
// @Failure      429      {object}  map[string]interface{}  "Too many attempts"
// @Router       /auth/login [post]
func (h *Auth) Login(c echo.Context) error {
	var req authDTO.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	result, err := h.authService.LoginWithPassword(c.Request().Context(), req.Username, req.Password, clientInfo(c))
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return h.signedIn(c, result)
}

// GoogleLogin handles the initial Google OAuth login request
// @Summary      Start Google sign-in
// @Description  Redirects to the Google consent screen. Returns 404 when Google sign-in is not configured.
// @Tags         Auth
// @Success      307
// @Failure      404  {object}  map[string]interface{}  "Google sign-in disabled"
// @Router       /auth/google/login [get]
func (h *Auth) GoogleLogin(c echo.Context) error {
	authURL, err := h.authService.GoogleAuthURL(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	// Redirect to Google OAuth
	return c.Redirect(http.StatusTemporaryRedirect, authURL.URL)
}

// GoogleCallback handles the OAuth callback from Google
// @Summary      Complete Google sign-in
// @Tags         Auth
// @Produce      json
// @Param        code   query     string  true  "Authorization code"
// @Param        state  query     string  true  "State issued by /auth/google/login"
// @Success      200    {object}  authDTO.AuthResponse
// @Failure      400    {object}  map[string]interface{}  "Missing code or state"
// @Failure      401    {object}  map[string]interface{}  "OAuth failed"
// @Router       /auth/google/callback [get]
func (h *Auth) GoogleCallback(c echo.Context) error {
	code := c.QueryParam("code")
	state := c.QueryParam("state")

	if code == "" || state == "" {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("missing code or state parameter"))
	}

	result, err := h.authService.GoogleCallback(c.Request().Context(), code, state, clientInfo(c))
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return h.signedIn(c, result)
}

// RefreshToken exchanges a refresh token for a new token pair
// @Summary      Refresh tokens
// @Description  The presented refresh token is revoked and a new pair is issued.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      authDTO.RefreshTokenRequest  true  "Refresh token"
// @Success      200      {object}  authDTO.AuthResponse
// @Failure      401      {object}  map[string]interface{}  "Invalid refresh token"
// @Router       /auth/refresh [post]
func (h *Auth) RefreshToken(c echo.Context) error {
	var req authDTO.RefreshTokenRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	result, err := h.authService.Refresh(c.Request().Context(), req.RefreshToken, clientInfo(c))
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return h.signedIn(c, result)
}

// Logout logs out the current user
// @Summary      Sign out
// @Description  Revokes the given refresh token, or every session of the caller when "all" is true.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      authDTO.LogoutRequest  true  "Session to end"
// @Success      200      {object}  map[string]interface{}
// @Failure      401      {object}  map[string]interface{}
// @Router       /auth/logout [post]
func (h *Auth) Logout(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req authDTO.LogoutRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	ctx := c.Request().Context()
	if req.All {
		err = h.authService.LogoutAll(ctx, user.ID)
	} else {
		err = h.authService.Logout(ctx, req.RefreshToken)
	}
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	DeleteCookie(c, middleware.AccessTokenCookie)
	return HandleSuccess(h.logger, c, map[string]string{
		"message": "Logged out successfully",
	})
}

// Me returns the current user information
// @Summary      Current user
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  authDTO.UserResponse
// @Failure      401  {object}  map[string]interface{}
// @Router       /auth/me [get]
func (h *Auth) Me(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	public, err := h.authService.Me(c.Request().Context(), user.ID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToUserResponse(public))
}

func (h *Auth) signedIn(c echo.Context, result *auth.AuthResult) error {
	SetCookie(c, middleware.AccessTokenCookie, result.AccessToken, int(result.ExpiresIn), h.secureCookie)
	return HandleSuccess(h.logger, c, presenter.ToAuthResponse(result))
}
