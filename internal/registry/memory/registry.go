package memory

import (
	"context"
	"sync"

	"bd2switch/internal/model"
	"bd2switch/internal/registry"
)

// Registry is an in-memory implementation of the registry interface, used
// in tests and on platforms without a live game registry.
type Registry struct {
	mu sync.RWMutex

	keyPresent bool
	values     map[string]model.CredentialValue
}

// New creates a new in-memory registry with the game key present and empty
func New() *Registry {
	return &Registry{
		keyPresent: true,
		values:     make(map[string]model.CredentialValue),
	}
}

// NewAbsent creates an in-memory registry whose game key does not exist
func NewAbsent() *Registry {
	return &Registry{}
}

// Ensure Registry implements the interface
var _ registry.Registry = (*Registry)(nil)

// SetValue seeds or replaces a single value
func (r *Registry) SetValue(name string, v model.CredentialValue) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keyPresent = true
	r.values[name] = v
}

// Value returns a stored value directly, for assertions in tests
func (r *Registry) Value(name string) (model.CredentialValue, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.values[name]
	return v, ok
}

func (r *Registry) ValueNames(ctx context.Context) (map[string]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.valueNamesLocked()
}

func (r *Registry) valueNamesLocked() (map[string]string, error) {
	if !r.keyPresent {
		return nil, model.ErrRegistryKeyNotFound
	}
	names := make([]string, 0, len(r.values))
	for name := range r.values {
		names = append(names, name)
	}
	matched := registry.MatchNames(names)
	if len(matched) == 0 {
		return nil, model.ErrRegistryKeyNotFound
	}
	return matched, nil
}

func (r *Registry) Read(ctx context.Context) (model.RecordSet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched, err := r.valueNamesLocked()
	if err != nil {
		return nil, err
	}
	records := make(model.RecordSet, len(matched))
	for _, name := range matched {
		v, ok := r.values[name]
		if !ok {
			v = model.CredentialValue{Type: model.TypeBinary}
		}
		records[name] = v
	}
	return records, nil
}

func (r *Registry) Write(ctx context.Context, records model.RecordSet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.keyPresent {
		return model.ErrRegistryKeyNotFound
	}
	names := make([]string, 0, len(r.values))
	for name := range r.values {
		names = append(names, name)
	}
	for name, v := range registry.RemapNames(records, registry.MatchNames(names)) {
		r.values[name] = v
	}
	return nil
}
