//go:build unit || e2e

package builder

import (
	"rental-escrow/internal/domain/user"
	"rental-escrow/internal/infra/pgq"
	"rental-escrow/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type UserBuilder struct {
	ID       uuid.UUID
	Email    string
	FullName string
	Phone    string
	Role     string
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		ID:       uuid.New(),
		Email:    "guest@example.com",
		FullName: "Amina Guest",
		Phone:    "+213 555 010 203",
		Role:     "guest",
	}
}

func (u *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(u)
	return u
}

// Build methods
func (u *UserBuilder) BuildDomain() (*user.User, error) {
	email, err := user.NewEmail(u.Email)
	if err != nil {
		return nil, err
	}
	phone, err := user.NewPhone(u.Phone)
	if err != nil {
		return nil, err
	}
	role, err := user.NewRole(u.Role)
	if err != nil {
		return nil, err
	}
	return user.NewUser(u.ID, email, u.FullName, phone, role), nil
}

func (u *UserBuilder) BuildInfra() pgq.Users {
	return pgq.Users{
		ID:       u.ID,
		Email:    u.Email,
		FullName: u.FullName,
		Phone:    pgconv.OptionalStringToPgtype(u.Phone),
		Role:     u.Role,
	}
}

// Fluent builder methods
func (u *UserBuilder) WithEmail(email string) *UserBuilder {
	u.Email = email
	return u
}

func (u *UserBuilder) WithRole(role string) *UserBuilder {
	u.Role = role
	return u
}

func (u *UserBuilder) WithPhone(phone string) *UserBuilder {
	u.Phone = phone
	return u
}

func (u *UserBuilder) AsHost() *UserBuilder {
	u.Email = "host@example.com"
	u.FullName = "Karim Host"
	u.Role = "host"
	return u
}

func (u *UserBuilder) AsAdmin() *UserBuilder {
	u.Email = "admin@example.com"
	u.FullName = "Ops Admin"
	u.Role = "admin"
	return u
}
