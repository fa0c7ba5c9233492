package user

import (
	"strings"

	"github.com/google/uuid"
)

// User is the marketplace account as seen by the booking core. Accounts are managed elsewhere;
// this side only reads them.
type User struct {
	id       uuid.UUID
	email    Email
	fullName string
	phone    Phone
	role     Role
}

func NewUser(id uuid.UUID, email Email, fullName string, phone Phone, role Role) *User {
	if id == uuid.Nil {
		id = uuid.New()
	}
	return &User{
		id:       id,
		email:    email,
		fullName: strings.TrimSpace(fullName),
		phone:    phone,
		role:     role,
	}
}

// HasCashContact reports whether the agency can identify the guest paying a voucher in cash.
func (u *User) HasCashContact() bool {
	return u.fullName != "" && !u.phone.IsZero()
}

func (u *User) ID() uuid.UUID    { return u.id }
func (u *User) Email() Email     { return u.email }
func (u *User) FullName() string { return u.fullName }
func (u *User) Phone() Phone     { return u.phone }
func (u *User) Role() Role       { return u.role }
