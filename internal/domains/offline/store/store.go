package store

import (
	"context"

	"staysync/internal/domains/offline/model"
)

// Store persists the offline pending queue in a namespaced key-value store.
// Entries carry their full state as a JSON document keyed by reservation id.
type Store interface {
	Get(ctx context.Context, id string) (model.OfflineReservation, bool, error)
	Set(ctx context.Context, res model.OfflineReservation) error
	Delete(ctx context.Context, id string) error
	// List returns every entry ordered oldest first by creation time.
	List(ctx context.Context) ([]model.OfflineReservation, error)
}
