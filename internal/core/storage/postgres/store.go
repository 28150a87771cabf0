package postgres

import (
	"github.com/projecteax/mozgnamaxa/internal/core/storage"
)

// Store composes the log/profile adapter and the aggregate adapter over one connection
// pool into a storage.CompletionStore.
type Store struct {
	*Adapter
	*AggregateAdapter
}

var _ storage.CompletionStore = (*Store)(nil)

// NewStore wires an AggregateAdapter onto the adapter's connection.
func NewStore(adapter *Adapter) *Store {
	return &Store{
		Adapter:          adapter,
		AggregateAdapter: NewAggregateAdapter(adapter.DB()),
	}
}
