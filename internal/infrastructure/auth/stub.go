package auth

import (
	"context"
	"strings"
	"sync"

	domain "github.com/leafcart/storefront/internal/domain/account"
	"github.com/leafcart/storefront/internal/infrastructure/id"
)

// StubAuthenticator stands in for the hosted auth service. It keeps the
// credential index in memory and rejects duplicate emails the way the real
// service does.
type StubAuthenticator struct {
	mu     sync.Mutex
	emails map[string]string // lowercased email -> credential id
	idGen  id.Generator
}

func NewStubAuthenticator(idGen id.Generator) *StubAuthenticator {
	return &StubAuthenticator{
		emails: make(map[string]string),
		idGen:  idGen,
	}
}

func (a *StubAuthenticator) CreateCredential(ctx context.Context, email, password string) (string, error) {
	_ = ctx
	if email == "" {
		return "", domain.ErrEmailRequired
	}
	if password == "" {
		return "", domain.ErrPasswordRequired
	}

	key := strings.ToLower(email)

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.emails[key]; exists {
		return "", domain.ErrEmailTaken
	}
	credentialID := a.idGen.NewID()
	a.emails[key] = credentialID
	return credentialID, nil
}
