// Package entity defines the two entity kinds handled by the catalog services,
// users and products, together with their creation inputs and the filter
// constraints used for paginated reads.
//
// Each kind is described by a Kind implementation. The bulk engine and the
// cached reader are generic over that descriptor, so there is exactly one
// concrete implementation per entity kind:
//
//	users := entity.NewUserKind(entity.NewBcryptHasher(0))
//	products := entity.NewProductKind("USD")
//
// Entities are created in batches and removed in batches; nothing in this
// module mutates a stored entity in place.
package entity
