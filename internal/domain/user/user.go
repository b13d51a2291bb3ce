// Package user is the read-only view of platform accounts this service needs.
// Accounts are created and edited elsewhere.
package user

import (
	"errors"

	"github.com/assetflow/assetflow/internal/shared/authorization"
)

var ErrUserNotFound = errors.New("user not found")

type User struct {
	id          uint
	email       string
	name        string
	role        authorization.UserRole
	qaPairingID *uint
}

func ReconstructUser(id uint, email, name string, role authorization.UserRole, qaPairingID *uint) *User {
	return &User{
		id:          id,
		email:       email,
		name:        name,
		role:        role,
		qaPairingID: qaPairingID,
	}
}

func (u *User) ID() uint                     { return u.id }
func (u *User) Email() string                { return u.email }
func (u *User) Name() string                 { return u.name }
func (u *User) Role() authorization.UserRole { return u.role }

// QAPairingID is the default QA reviewer for a modeler's work.
func (u *User) QAPairingID() *uint { return u.qaPairingID }

// DisplayName falls back to the email when no name is set.
func (u *User) DisplayName() string {
	if u.name != "" {
		return u.name
	}
	return u.email
}
