package supabase

import (
	"encoding/json"

	"github.com/meu-financeiro/core-api/internal/port"

	"github.com/google/uuid"
)

// Store implements port.FinanceStore on top of Supabase PostgREST.
// Tables mirror the domain entities one to one.
type Store struct {
	*Client
}

var _ port.FinanceStore = (*Store)(nil)

// NewStore creates a Supabase-backed finance store.
func NewStore(client *Client) *Store {
	return &Store{Client: client}
}

// newRowID returns id, or a fresh UUID when empty. IDs are assigned
// client-side so inserts never depend on table defaults.
func newRowID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

// rowPatch converts a row struct into a PATCH body, dropping the
// immutable id column.
func rowPatch(row any) (map[string]any, error) {
	raw, err := json.Marshal(row)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	delete(m, "id")
	return m, nil
}
