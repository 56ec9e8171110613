package user

import (
	"regexp"
	"time"

	"github.com/baxirbajja/CMCEspace-api/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// RoleAdmin is the only role the system issues; every account is an
// administrator account.
const RoleAdmin = "admin"

const (
	minPasswordLen = 6
	bcryptCost     = 10
)

var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// User is an administrator account. The password hash never leaves the
// domain layer; DTOs expose everything but it.
type User struct {
	id           uuid.UUID
	name         string
	email        string
	passwordHash string
	role         string

	resetPasswordToken  string
	resetPasswordExpire *time.Time

	createdAt time.Time
	updatedAt time.Time
}

// New creates an administrator account, hashing the password with bcrypt.
func New(name, email, password string) (*User, error) {
	var messages []string
	if name == "" {
		messages = append(messages, "Veuillez ajouter un nom")
	}
	if email == "" {
		messages = append(messages, "Veuillez ajouter un email")
	} else if !emailPattern.MatchString(email) {
		messages = append(messages, "Veuillez ajouter un email valide")
	}
	if len(password) < minPasswordLen {
		messages = append(messages, "Le mot de passe doit contenir au moins 6 caractères")
	}
	if len(messages) > 0 {
		return nil, domain.NewValidationErrors(messages)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &User{
		id:           uuid.New(),
		name:         name,
		email:        email,
		passwordHash: string(hash),
		role:         RoleAdmin,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// Reconstruct rebuilds a User from persistence data (no validation).
func Reconstruct(
	id uuid.UUID,
	name string,
	email string,
	passwordHash string,
	role string,
	resetPasswordToken string,
	resetPasswordExpire *time.Time,
	createdAt time.Time,
	updatedAt time.Time,
) *User {
	return &User{
		id:                  id,
		name:                name,
		email:               email,
		passwordHash:        passwordHash,
		role:                role,
		resetPasswordToken:  resetPasswordToken,
		resetPasswordExpire: resetPasswordExpire,
		createdAt:           createdAt,
		updatedAt:           updatedAt,
	}
}

// ID returns the account's unique identifier.
func (u *User) ID() uuid.UUID { return u.id }

// Name returns the account holder's name.
func (u *User) Name() string { return u.name }

// Email returns the account's unique email.
func (u *User) Email() string { return u.email }

// PasswordHash returns the bcrypt hash for persistence.
func (u *User) PasswordHash() string { return u.passwordHash }

// Role returns the account role.
func (u *User) Role() string { return u.role }

// ResetPasswordToken returns the pending password-reset token, if any.
func (u *User) ResetPasswordToken() string { return u.resetPasswordToken }

// ResetPasswordExpire returns the reset token expiry, if any.
func (u *User) ResetPasswordExpire() *time.Time { return u.resetPasswordExpire }

// CreatedAt returns the creation timestamp.
func (u *User) CreatedAt() time.Time { return u.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// MatchPassword compares a plaintext password against the stored hash.
func (u *User) MatchPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.passwordHash), []byte(password)) == nil
}
