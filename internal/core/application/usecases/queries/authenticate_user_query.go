package queries

import (
	"errors"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/user"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var (
	ErrAuthenticateUserQueryIsNotConstructed = errors.New(
		"AuthenticateUserQuery must be created via NewAuthenticateUserQuery constructor",
	)

	// ErrInvalidCredentials hides whether the username or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AuthenticateUserQuery checks a username and password pair.
type AuthenticateUserQuery struct {
	username string
	password string

	guard guard.ConstructorGuard
}

func NewAuthenticateUserQuery(username, password string) (AuthenticateUserQuery, error) {
	username = strings.TrimSpace(username)

	var err error
	if username == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("username"))
	}
	if password == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("password"))
	}
	if err != nil {
		return AuthenticateUserQuery{}, err
	}

	return AuthenticateUserQuery{
		username: username,
		password: password,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q AuthenticateUserQuery) Validate() error {
	return q.guard.Validate(ErrAuthenticateUserQueryIsNotConstructed)
}

func (q AuthenticateUserQuery) Username() string {
	return q.username
}

func (q AuthenticateUserQuery) Password() string {
	return q.password
}

// AuthenticateUserQueryResponse is the authenticated identity that goes into
// the token.
type AuthenticateUserQueryResponse struct {
	ID       kernel.UUID
	Username string
	Role     user.Role
}
