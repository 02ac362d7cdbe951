package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	domainerrors "flock/internal/domain/errors"
	"flock/internal/domain/repository"
	"flock/internal/domain/service"
)

// ContextKeyUserID is the context key under which the authorization gate
// stores the resolved subject id.
const ContextKeyUserID = "userID"

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "token"

// AuthMiddleware guards routes behind a valid session cookie.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	userRepo repository.UserRepository
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, userRepo: userRepo}
}

// Authenticate validates the session cookie and resolves its subject. The
// three rejection reasons stay distinguishable: no cookie, bad token, and a
// token whose subject no longer exists. A store failure during the lookup is
// not an authorization verdict and surfaces as an internal error instead.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(SessionCookieName)
		if err != nil || cookie.Value == "" {
			return domainerrors.ErrTokenMissing.WrapMessage("session cookie absent")
		}

		userID, err := m.tokenSvc.Validate(cookie.Value)
		if err != nil {
			return domainerrors.ErrTokenInvalid.WrapMessage("session token rejected")
		}

		user, err := m.userRepo.FindByID(c.Request().Context(), userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUnknownSubject.WrapMessage("token subject not found")
			}

			return errors.Wrap(err, "failed to resolve token subject")
		}

		c.Set(ContextKeyUserID, user.ID)

		return next(c)
	}
}

// ClearSessionCookie expires the session cookie on the response.
func ClearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
