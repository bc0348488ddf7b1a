package memory

import (
	"context"
	"sync"

	"bd2switch/internal/model"
	"bd2switch/internal/store"
)

// Store is an in-memory implementation of the store interface
type Store struct {
	mu sync.RWMutex

	config   map[string]string
	names    []string
	accounts map[string]model.RecordSet
}

// New creates a new in-memory store instance
func New() *Store {
	return &Store{
		config:   make(map[string]string),
		accounts: make(map[string]model.RecordSet),
	}
}

// Ensure Store implements the interface
var _ store.Store = (*Store)(nil)

func (s *Store) List(ctx context.Context) ([]model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	accounts := make([]model.Account, 0, len(s.names))
	for _, name := range s.names {
		accounts = append(accounts, model.Account{
			Name:    name,
			Records: s.accounts[name].Clone(),
		})
	}
	return accounts, nil
}

func (s *Store) Get(ctx context.Context, name string) (model.RecordSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records, ok := s.accounts[name]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	return records.Clone(), nil
}

func (s *Store) Put(ctx context.Context, name string, records model.RecordSet) error {
	if err := store.ValidateName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[name]; !exists {
		s.names = append(s.names, name)
	}
	s.accounts[name] = records.Clone()
	return nil
}

func (s *Store) Rename(ctx context.Context, oldName, newName string) error {
	if oldName == newName {
		return nil
	}
	if err := store.ValidateName(newName); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	records, ok := s.accounts[oldName]
	if !ok {
		return model.ErrAccountNotFound
	}
	if _, exists := s.accounts[newName]; exists {
		return model.ErrNameConflict
	}
	delete(s.accounts, oldName)
	s.accounts[newName] = records
	for i, name := range s.names {
		if name == oldName {
			s.names[i] = newName
			break
		}
	}
	return nil
}

func (s *Store) Remove(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[name]; !ok {
		return model.ErrAccountNotFound
	}
	delete(s.accounts, name)
	for i, n := range s.names {
		if n == name {
			s.names = append(s.names[:i], s.names[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) Language(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config["language"], nil
}

func (s *Store) SetLanguage(ctx context.Context, lang string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config["language"] = lang
	return nil
}
