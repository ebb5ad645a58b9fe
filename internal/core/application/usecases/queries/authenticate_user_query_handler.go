package queries

import (
	"context"
	"database/sql"
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/user"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// dummyHash is compared against when the username is unknown so both failure
// paths cost one bcrypt comparison.
const dummyHash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z0UO1R8u4ccAHdtEbU7dAv5i"

type AuthenticateUserQueryHandler struct {
	db *gorm.DB
}

func NewAuthenticateUserQueryHandler(db *gorm.DB) AuthenticateUserQueryHandler {
	return AuthenticateUserQueryHandler{db: db}
}

// Handle returns ErrInvalidCredentials for unknown users and wrong passwords.
func (h AuthenticateUserQueryHandler) Handle(
	ctx context.Context,
	query AuthenticateUserQuery,
) (AuthenticateUserQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return AuthenticateUserQueryResponse{}, err
	}

	var (
		id           uuid.UUID
		username     string
		passwordHash string
		role         string
	)
	err := h.db.WithContext(ctx).Raw(`
		SELECT id, username, password_hash, role
		FROM users
		WHERE username = ?
	`, query.Username()).Row().Scan(&id, &username, &passwordHash, &role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(query.Password()))
			return AuthenticateUserQueryResponse{}, ErrInvalidCredentials
		}
		return AuthenticateUserQueryResponse{}, err
	}

	userID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return AuthenticateUserQueryResponse{}, err
	}
	parsedRole, err := user.ParseRole(role)
	if err != nil {
		return AuthenticateUserQueryResponse{}, err
	}
	u, err := user.RestoreUser(userID, username, passwordHash, parsedRole)
	if err != nil {
		return AuthenticateUserQueryResponse{}, err
	}

	if !u.CheckPassword(query.Password()) {
		return AuthenticateUserQueryResponse{}, ErrInvalidCredentials
	}

	return AuthenticateUserQueryResponse{
		ID:       u.ID(),
		Username: u.Username(),
		Role:     u.Role(),
	}, nil
}
