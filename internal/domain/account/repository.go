package account

import "context"

type ManufacturerRepository interface {
	Insert(ctx context.Context, manufacturer *Manufacturer) error
	FindByID(ctx context.Context, id string) (*Manufacturer, error)
}

type UserRepository interface {
	Insert(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id string) (*User, error)
}

// Authenticator is the boundary to the external auth service. It owns
// credential storage and rejects duplicate emails with ErrEmailTaken.
type Authenticator interface {
	CreateCredential(ctx context.Context, email, password string) (string, error)
}
