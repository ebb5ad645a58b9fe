package http

import (
	"errors"
	"net/http"
	"time"

	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/user"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// DefaultTokenTTL is how long an issued token stays valid.
const DefaultTokenTTL = 24 * time.Hour

// contextKeyToken is where echo-jwt stores the parsed token.
const contextKeyToken = "user"

var errInvalidTokenClaims = errors.New("token claims do not describe a user")

// Claims are the JWT claims identifying the caller.
type Claims struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer signs HS256 tokens for authenticated users.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret []byte, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenIssuer{secret: secret, ttl: ttl, now: time.Now}
}

func (i *TokenIssuer) Issue(u queries.AuthenticateUserQueryResponse) (string, error) {
	now := i.now()
	claims := Claims{
		ID:       u.ID.String(),
		Username: u.Username,
		Role:     u.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Middleware verifies bearer tokens. A missing token is 401, a token that
// does not verify is 403.
func (i *TokenIssuer) Middleware() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:    i.secret,
		SigningMethod: jwt.SigningMethodHS256.Alg(),
		ContextKey:    contextKeyToken,
		NewClaimsFunc: func(echo.Context) jwt.Claims {
			return new(Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			var parsing *echojwt.TokenParsingError
			if errors.As(err, &parsing) {
				return c.JSON(http.StatusForbidden, Error{Code: http.StatusForbidden, Message: "Invalid token"})
			}
			return c.JSON(http.StatusUnauthorized, Error{Code: http.StatusUnauthorized, Message: "Access token required"})
		},
	})
}

// actorFrom turns the verified claims into the request's actor.
func actorFrom(c echo.Context) (user.Actor, error) {
	token, ok := c.Get(contextKeyToken).(*jwt.Token)
	if !ok {
		return user.Actor{}, errInvalidTokenClaims
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return user.Actor{}, errInvalidTokenClaims
	}

	id, err := kernel.UUIDFromString(claims.ID)
	if err != nil {
		return user.Actor{}, errors.Join(errInvalidTokenClaims, err)
	}
	role, err := user.ParseRole(claims.Role)
	if err != nil {
		return user.Actor{}, errors.Join(errInvalidTokenClaims, err)
	}
	return user.NewActor(id, claims.Username, role)
}
