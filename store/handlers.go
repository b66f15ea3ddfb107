package store

import (
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/thomasdelmas/Ecommerce-sub000/entity"
)

// UserHandlers are the go-repository-bun model handlers for users.
// The identifier column doubles as the uniqueness key.
func UserHandlers() repository.ModelHandlers[*entity.User] {
	return repository.ModelHandlers[*entity.User]{
		NewRecord: func() *entity.User {
			return &entity.User{}
		},
		GetID: func(record *entity.User) uuid.UUID {
			return record.ID
		},
		SetID: func(record *entity.User, id uuid.UUID) {
			record.ID = id
		},
		GetIdentifier: func() string {
			return "username"
		},
	}
}

// ProductHandlers are the go-repository-bun model handlers for products.
func ProductHandlers() repository.ModelHandlers[*entity.Product] {
	return repository.ModelHandlers[*entity.Product]{
		NewRecord: func() *entity.Product {
			return &entity.Product{}
		},
		GetID: func(record *entity.Product) uuid.UUID {
			return record.ID
		},
		SetID: func(record *entity.Product, id uuid.UUID) {
			record.ID = id
		},
		GetIdentifier: func() string {
			return "name"
		},
	}
}
