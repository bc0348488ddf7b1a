// Package store defines the saved-account store and its persistence
// contract. Accounts keep their insertion order; that order is the
// tie-break for all fingerprint scans and for display.
package store

import (
	"context"
	"fmt"

	"bd2switch/internal/model"
)

// ConfigKey is the reserved top-level key of the persisted document that
// holds the config section. An account may never use this name.
const ConfigKey = "_config"

// WarningText is re-stamped into the config section on every save. The
// store keeps credentials in clear text by design.
const WarningText = "This file contains sensitive account data. Do NOT share or upload publicly."

// Store defines the interface for saved-account persistence. Every mutation
// persists before returning, so a crash between operations loses at most the
// one in-flight mutation.
type Store interface {
	// List returns all accounts in insertion order.
	List(ctx context.Context) ([]model.Account, error)

	// Get returns the record set saved under name, or
	// model.ErrAccountNotFound.
	Get(ctx context.Context, name string) (model.RecordSet, error)

	// Put saves records under name, replacing any existing account.
	Put(ctx context.Context, name string, records model.RecordSet) error

	// Rename moves an account to a new name. Renaming onto an existing
	// name fails with model.ErrNameConflict and leaves the store
	// unchanged; renaming to the same name is a no-op.
	Rename(ctx context.Context, oldName, newName string) error

	// Remove deletes an account, or returns model.ErrAccountNotFound.
	Remove(ctx context.Context, name string) error

	// Language returns the persisted language preference, or "" when none
	// has been set.
	Language(ctx context.Context) (string, error)

	// SetLanguage persists the language preference.
	SetLanguage(ctx context.Context, lang string) error
}

// ValidateName rejects names the store cannot hold: the reserved config key
// and the empty string. Shared by all backends.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", model.ErrReservedName)
	}
	if name == ConfigKey {
		return fmt.Errorf("%w: %q", model.ErrReservedName, name)
	}
	return nil
}
