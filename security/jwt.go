package security

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"campus-event-chat/apperror"
	"campus-event-chat/config/common"
	"campus-event-chat/entity"
	"campus-event-chat/enum"
)

// Claims is the token payload: the user id and role, plus the registered claims.
type Claims struct {
	UserID uint      `json:"id"`
	Role   enum.Role `json:"role"`
	jwt.RegisteredClaims
}

// Identity is the authenticated caller resolved from a token.
type Identity struct {
	UserID uint
	Role   enum.Role
}

type JWT struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewJWT(config *common.Config) *JWT {
	jwtConfig := config.GetJwtConfig()
	return &JWT{
		secret: jwtConfig.Secret,
		issuer: jwtConfig.Issuer,
		ttl:    jwtConfig.TTL,
		now:    time.Now,
	}
}

func (j *JWT) GenerateToken(user *entity.User) (string, error) {
	now := j.now()
	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.issuer,
			Audience:  jwt.ClaimStrings{j.issuer},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return token.SignedString(j.secret)
}

// KeyFunc is the key lookup shared with the HTTP middleware.
func (j *JWT) KeyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, jwt.ErrSignatureInvalid
	}
	return j.secret, nil
}

// Authenticate resolves a raw credential, with or without a "Bearer " prefix.
// An empty credential is apperror.ErrMissingCredential; anything that does not
// verify is apperror.ErrInvalidCredential.
func (j *JWT) Authenticate(raw string) (Identity, error) {
	token := strings.TrimSpace(raw)
	if len(token) >= 7 && strings.EqualFold(token[:7], "bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	if token == "" {
		return Identity{}, apperror.New(apperror.ErrMissingCredential, "Access token required")
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, j.KeyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithIssuer(j.issuer),
		jwt.WithAudience(j.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return Identity{}, apperror.Wrap(apperror.ErrInvalidCredential, "Invalid or expired token", err)
	}
	if !parsed.Valid || claims.UserID == 0 || !claims.Role.IsValid() {
		return Identity{}, apperror.Wrap(apperror.ErrInvalidCredential, "Invalid or expired token", errors.New("incomplete claims"))
	}

	return Identity{UserID: claims.UserID, Role: claims.Role}, nil
}
