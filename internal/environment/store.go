package environment

import (
	"strings"

	"github.com/tyemirov/devtasks/internal/envfile"
)

const processAssignmentSeparatorConstant = "="

// Store holds the configuration values visible to tasks for one run.
type Store struct {
	values map[string]string
	order  []string
}

// NewStore constructs an empty Store.
func NewStore() *Store {
	return &Store{values: make(map[string]string)}
}

// LoadStore builds a Store from env file entries and KEY=VALUE process environment assignments.
// Process environment values take precedence over env file values.
func LoadStore(processEnvironment []string, fileEntries []envfile.Entry) *Store {
	store := NewStore()
	for _, entry := range fileEntries {
		store.set(entry.Key, entry.Value)
	}
	for _, assignment := range processEnvironment {
		key, value, found := strings.Cut(assignment, processAssignmentSeparatorConstant)
		if !found || len(key) == 0 {
			continue
		}
		store.set(key, value)
	}
	return store
}

// Lookup returns the stored value for key.
func (store *Store) Lookup(key string) (string, bool) {
	value, found := store.values[key]
	return value, found
}

// Keys returns the stored keys in insertion order.
func (store *Store) Keys() []string {
	keys := make([]string, len(store.order))
	copy(keys, store.order)
	return keys
}

func (store *Store) set(key string, value string) {
	if _, exists := store.values[key]; !exists {
		store.order = append(store.order, key)
	}
	store.values[key] = value
}
