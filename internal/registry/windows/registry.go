//go:build windows

// Package windows implements the registry interface against the real
// Windows registry under HKEY_CURRENT_USER.
package windows

import (
	"context"
	"errors"

	winreg "golang.org/x/sys/windows/registry"

	"bd2switch/internal/model"
	"bd2switch/internal/registry"
)

// Registry reads and writes the game's values under HKEY_CURRENT_USER.
type Registry struct {
	keyPath string
}

// New creates a registry backend for the given key path under
// HKEY_CURRENT_USER. An empty path selects registry.DefaultKeyPath.
func New(keyPath string) *Registry {
	if keyPath == "" {
		keyPath = registry.DefaultKeyPath
	}
	return &Registry{keyPath: keyPath}
}

// Ensure Registry implements the interface
var _ registry.Registry = (*Registry)(nil)

func (r *Registry) open(access uint32) (winreg.Key, error) {
	k, err := winreg.OpenKey(winreg.CURRENT_USER, r.keyPath, access)
	if errors.Is(err, winreg.ErrNotExist) {
		return k, model.ErrRegistryKeyNotFound
	}
	return k, err
}

func (r *Registry) ValueNames(ctx context.Context) (map[string]string, error) {
	k, err := r.open(winreg.QUERY_VALUE)
	if err != nil {
		return nil, err
	}
	defer k.Close()

	names, err := k.ReadValueNames(-1)
	if err != nil {
		return nil, err
	}
	matched := registry.MatchNames(names)
	if len(matched) == 0 {
		return nil, model.ErrRegistryKeyNotFound
	}
	return matched, nil
}

func (r *Registry) Read(ctx context.Context) (model.RecordSet, error) {
	matched, err := r.ValueNames(ctx)
	if err != nil {
		return nil, err
	}

	k, err := r.open(winreg.QUERY_VALUE)
	if err != nil {
		return nil, err
	}
	defer k.Close()

	records := make(model.RecordSet, len(matched))
	for _, name := range matched {
		records[name] = readValue(k, name)
	}
	return records, nil
}

// readValue reads one value with its native type tag. Unreadable values
// degrade to an empty binary value so a partial session still loads.
func readValue(k winreg.Key, name string) model.CredentialValue {
	size, valtype, err := k.GetValue(name, nil)
	if err != nil {
		return model.CredentialValue{Type: model.TypeBinary}
	}
	switch valtype {
	case winreg.SZ, winreg.EXPAND_SZ:
		s, _, err := k.GetStringValue(name)
		if err != nil {
			return model.CredentialValue{Type: model.ValueType(valtype)}
		}
		return model.CredentialValue{Data: s, Type: model.ValueType(valtype)}
	default:
		buf := make([]byte, size)
		if _, _, err := k.GetValue(name, buf); err != nil {
			return model.CredentialValue{Type: model.ValueType(valtype)}
		}
		return model.CredentialValue{Data: string(buf), Type: model.ValueType(valtype)}
	}
}

func (r *Registry) Write(ctx context.Context, records model.RecordSet) error {
	live := map[string]string{}
	if matched, err := r.ValueNames(ctx); err == nil {
		live = matched
	}

	k, err := r.open(winreg.SET_VALUE)
	if err != nil {
		return err
	}
	defer k.Close()

	for name, v := range registry.RemapNames(records, live) {
		var werr error
		switch v.Type {
		case model.TypeString:
			werr = k.SetStringValue(name, v.Data)
		case model.ValueType(winreg.EXPAND_SZ):
			werr = k.SetExpandStringValue(name, v.Data)
		default:
			werr = k.SetBinaryValue(name, []byte(v.Data))
		}
		if werr != nil {
			return werr
		}
	}
	return nil
}
