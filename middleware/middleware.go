package middleware

import (
	"errors"
	"strings"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"campus-event-chat/apperror"
	"campus-event-chat/enum"
	"campus-event-chat/security"
)

const (
	jwtContextKey      = "jwt"
	identityContextKey = "identity"
)

type Middleware struct {
	*security.JWT
	Log   *logrus.Logger
	guard fiber.Handler
}

func NewMiddleware(JWT *security.JWT, logger *logrus.Logger) *Middleware {
	m := &Middleware{JWT: JWT, Log: logger}
	m.guard = jwtware.New(jwtware.Config{
		KeyFunc:    JWT.KeyFunc,
		Claims:     &security.Claims{},
		ContextKey: jwtContextKey,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if errors.Is(err, jwtware.ErrJWTMissingOrMalformed) && strings.TrimSpace(c.Get(fiber.HeaderAuthorization)) == "" {
				return apperror.New(apperror.ErrMissingCredential, "No token, authorization denied")
			}
			m.Log.WithError(err).Warn("Failed to validate JWT")
			return apperror.Wrap(apperror.ErrInvalidCredential, "Invalid or expired token", err)
		},
	})
	return m
}

// JWTProtected rejects requests without a verifiable bearer token.
func (middleware *Middleware) JWTProtected(c *fiber.Ctx) error {
	return middleware.guard(c)
}

// ExtractIdentity resolves the verified token into a security.Identity and
// stores it for the handlers. It must run after JWTProtected.
func (middleware *Middleware) ExtractIdentity(c *fiber.Ctx) error {
	raw := c.Get(fiber.HeaderAuthorization)
	if token, ok := c.Locals(jwtContextKey).(*jwt.Token); ok && token.Raw != "" {
		raw = token.Raw
	}

	identity, err := middleware.JWT.Authenticate(raw)
	if err != nil {
		middleware.Log.WithError(err).Warn("Failed to extract identity from token")
		return err
	}

	c.Locals(identityContextKey, identity)
	return c.Next()
}

// RequireRole lets through only callers holding one of roles.
func (middleware *Middleware) RequireRole(roles ...enum.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := CurrentIdentity(c)
		if !ok {
			return apperror.New(apperror.ErrMissingCredential, "No token, authorization denied")
		}
		for _, role := range roles {
			if identity.Role == role {
				return c.Next()
			}
		}
		return apperror.Forbidden("Access denied")
	}
}

// WebSocketUpgrade authenticates the handshake from the "token" query
// parameter or the Authorization header. Any failure is a 401 and the
// connection is never upgraded.
func (middleware *Middleware) WebSocketUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	raw := c.Query("token")
	if raw == "" {
		raw = c.Get(fiber.HeaderAuthorization)
	}

	identity, err := middleware.JWT.Authenticate(raw)
	if err != nil {
		middleware.Log.WithError(err).Warn("Rejected websocket handshake")
		return fiber.NewError(fiber.StatusUnauthorized, apperror.PublicMessage(err))
	}

	c.Locals(identityContextKey, identity)
	return c.Next()
}

func CurrentIdentity(c *fiber.Ctx) (security.Identity, bool) {
	identity, ok := c.Locals(identityContextKey).(security.Identity)
	return identity, ok
}

// SocketIdentity reads the identity stored by WebSocketUpgrade.
func SocketIdentity(conn *websocket.Conn) (security.Identity, bool) {
	identity, ok := conn.Locals(identityContextKey).(security.Identity)
	return identity, ok
}
