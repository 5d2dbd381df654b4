// Package models holds the persisted entities of the service.
package models

// All returns every entity that has to be migrated, in migration order.
func All() []any {
	return []any{
		&Product{},
	}
}
