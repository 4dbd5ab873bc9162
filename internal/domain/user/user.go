package user

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shareit-app/shareit/internal/domain"
)

// User is the aggregate root for a registered user.
type User struct {
	id        uuid.UUID
	name      string
	email     string
	createdAt time.Time
	updatedAt time.Time
}

// NewUser creates a new user with validated fields.
func NewUser(name, email string) (*User, error) {
	if name == "" {
		return nil, domain.NewValidationError("name is required")
	}
	if email == "" {
		return nil, domain.NewValidationError("email is required")
	}
	if !strings.Contains(email, "@") {
		return nil, domain.NewValidationError("email is malformed")
	}

	now := time.Now().UTC()
	return &User{
		id:        uuid.New(),
		name:      name,
		email:     email,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds a User from persistence data (no validation).
func Reconstruct(id uuid.UUID, name, email string, createdAt, updatedAt time.Time) *User {
	return &User{
		id:        id,
		name:      name,
		email:     email,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// --- Getters ---

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Name() string         { return u.name }
func (u *User) Email() string        { return u.email }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// --- Behavior ---

// Patch is a sparse profile update; nil fields are left untouched.
type Patch struct {
	Name  *string
	Email *string
}

// Apply overwrites the fields present in the patch.
func (u *User) Apply(p Patch) error {
	if p.Name != nil {
		if *p.Name == "" {
			return domain.NewValidationError("name must not be blank")
		}
		u.name = *p.Name
	}
	if p.Email != nil {
		if !strings.Contains(*p.Email, "@") {
			return domain.NewValidationError("email is malformed")
		}
		u.email = *p.Email
	}
	u.updatedAt = time.Now().UTC()
	return nil
}
