package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/upm-platform/complaint-service/internal/domain"
	"github.com/upm-platform/complaint-service/internal/i18n"
	"github.com/upm-platform/complaint-service/internal/repository"
	apperrors "github.com/upm-platform/complaint-service/pkg/util"
)

const (
	principalKey = "auth_principal"
	langKey      = "request_lang"

	// SessionCookie carries the opaque session token.
	SessionCookie = "session_id"
)

// Principal represents the authenticated caller.
type Principal struct {
	User    *domain.User
	Session *Session
}

// SessionMiddleware resolves the session cookie into a Principal and the
// request language. It never rejects a request; role guards do that.
type SessionMiddleware struct {
	store SessionStore
	users repository.UserRepository
}

// NewSessionMiddleware constructs middleware.
func NewSessionMiddleware(store SessionStore, users repository.UserRepository) *SessionMiddleware {
	return &SessionMiddleware{store: store, users: users}
}

// Handle loads the caller identity when a valid session cookie is present and
// threads the selected language through the request. A ?lang= query value in
// the supported set wins and is persisted back to the session.
func (m *SessionMiddleware) Handle(c *fiber.Ctx) error {
	lang := i18n.LangEnglish

	var session *Session
	if token := c.Cookies(SessionCookie); token != "" {
		found, err := m.store.Get(c.Context(), token)
		if err != nil && !errors.Is(err, ErrSessionNotFound) {
			return apperrors.MapError(err)
		}
		session = found
	}

	if session != nil {
		if i18n.IsSupported(session.Lang) {
			lang = session.Lang
		}
		user, err := m.users.GetByID(c.Context(), session.UserID)
		if err == nil {
			c.Locals(principalKey, &Principal{User: user, Session: session})
		}
	}

	if query := c.Query("lang"); i18n.IsSupported(query) {
		lang = query
		if session != nil && session.Lang != query {
			if err := m.store.SetLang(c.Context(), session.Token, query); err != nil {
				return apperrors.MapError(err)
			}
		}
	}

	c.Locals(langKey, lang)
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated caller, if any.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

// LangFromContext returns the request-scoped language, defaulting to English.
func LangFromContext(c *fiber.Ctx) string {
	if lang, ok := c.Locals(langKey).(string); ok && lang != "" {
		return lang
	}
	return i18n.LangEnglish
}
