// Package jsonfile persists the account store as a single flat JSON
// document: the reserved _config key plus one key per account, kept in
// insertion order.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"bd2switch/internal/model"
	"bd2switch/internal/store"
)

// Store is a file-backed implementation of the store interface
type Store struct {
	path string

	config   map[string]any
	names    []string
	accounts map[string]model.RecordSet
}

// Ensure Store implements the interface
var _ store.Store = (*Store)(nil)

// Open loads the store from path. A missing, empty or whitespace-only file
// yields an empty store with no error. A file that exists but cannot be
// parsed yields an empty, usable store together with an error wrapping
// model.ErrStoreCorrupted; the unreadable file stays untouched on disk
// until the next mutation persists.
func Open(path string) (*Store, error) {
	s := &Store{
		path:     path,
		config:   make(map[string]any),
		accounts: make(map[string]model.RecordSet),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("%w: %s", model.ErrStoreCorrupted, err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return s, nil
	}

	if err := s.parse(data); err != nil {
		s.config = make(map[string]any)
		s.names = nil
		s.accounts = make(map[string]model.RecordSet)
		return s, fmt.Errorf("%w: %s", model.ErrStoreCorrupted, err)
	}
	return s, nil
}

// parse walks the document's top-level keys in file order, so account
// insertion order survives the round-trip.
func (s *Store) parse(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key := keyTok.(string)

		if key == store.ConfigKey {
			if err := dec.Decode(&s.config); err != nil {
				return err
			}
			continue
		}

		var records model.RecordSet
		if err := dec.Decode(&records); err != nil {
			return err
		}
		s.names = append(s.names, key)
		s.accounts[key] = records
	}

	_, err = dec.Token() // closing brace
	return err
}

// persist writes the whole document back, config section first, accounts in
// insertion order, with the warning banner re-stamped.
func (s *Store) persist() error {
	cfg := make(map[string]any, len(s.config)+1)
	for k, v := range s.config {
		cfg[k] = v
	}
	cfg["_warning"] = store.WarningText

	var buf bytes.Buffer
	buf.WriteString("{\n")
	if err := writeEntry(&buf, store.ConfigKey, cfg, len(s.names) == 0); err != nil {
		return err
	}
	for i, name := range s.names {
		if err := writeEntry(&buf, name, s.accounts[name], i == len(s.names)-1); err != nil {
			return err
		}
	}
	buf.WriteString("}\n")

	return os.WriteFile(s.path, buf.Bytes(), 0o600)
}

func writeEntry(buf *bytes.Buffer, key string, value any, last bool) error {
	kb, err := json.Marshal(key)
	if err != nil {
		return err
	}
	vb, err := json.MarshalIndent(value, "  ", "  ")
	if err != nil {
		return err
	}
	buf.WriteString("  ")
	buf.Write(kb)
	buf.WriteString(": ")
	buf.Write(vb)
	if !last {
		buf.WriteString(",")
	}
	buf.WriteString("\n")
	return nil
}

func (s *Store) List(ctx context.Context) ([]model.Account, error) {
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
	if _, exists := s.accounts[name]; !exists {
		s.names = append(s.names, name)
	}
	s.accounts[name] = records.Clone()
	return s.persist()
}

func (s *Store) Rename(ctx context.Context, oldName, newName string) error {
	if oldName == newName {
		return nil
	}
	if err := store.ValidateName(newName); err != nil {
		return err
	}
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
	return s.persist()
}

func (s *Store) Remove(ctx context.Context, name string) error {
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
	return s.persist()
}

func (s *Store) Language(ctx context.Context) (string, error) {
	lang, _ := s.config["language"].(string)
	return lang, nil
}

func (s *Store) SetLanguage(ctx context.Context, lang string) error {
	s.config["language"] = lang
	return s.persist()
}
