package account

import (
	"errors"
	"time"
)

var (
	ErrNotFound         = errors.New("account: not found")
	ErrNameRequired     = errors.New("account: name is required")
	ErrEmailRequired    = errors.New("account: email is required")
	ErrPasswordRequired = errors.New("account: password is required")
	ErrEmailTaken       = errors.New("account: email already registered")
)

type Manufacturer struct {
	ID           string
	Name         string
	Email        string
	Company      string
	RegisteredAt time.Time
}

func NewManufacturer(id, name, email, company string) (*Manufacturer, error) {
	if name == "" {
		return nil, ErrNameRequired
	}
	if email == "" {
		return nil, ErrEmailRequired
	}
	return &Manufacturer{
		ID:           id,
		Name:         name,
		Email:        email,
		Company:      company,
		RegisteredAt: time.Now().UTC(),
	}, nil
}

// User is a storefront login account. Credentials live with the external
// auth service; only the profile record is stored here.
type User struct {
	ID           string
	Name         string
	Email        string
	CredentialID string
	RegisteredAt time.Time
}

func NewUser(id, name, email, credentialID string) (*User, error) {
	if name == "" {
		return nil, ErrNameRequired
	}
	if email == "" {
		return nil, ErrEmailRequired
	}
	return &User{
		ID:           id,
		Name:         name,
		Email:        email,
		CredentialID: credentialID,
		RegisteredAt: time.Now().UTC(),
	}, nil
}
