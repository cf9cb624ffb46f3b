package id

import "github.com/google/uuid"

// Generator hands out store-side document ids.
type Generator interface {
	NewID() string
}

type uuidGenerator struct{}

func NewUUIDGenerator() Generator { return uuidGenerator{} }

func (uuidGenerator) NewID() string { return uuid.NewString() }
