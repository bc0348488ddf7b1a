// Package switcher implements the account-switching operations: inspecting
// the live session, saving and restoring accounts, and matching the live
// token against saved accounts by identity fingerprint.
package switcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"bd2switch/internal/i18n"
	"bd2switch/internal/model"
	"bd2switch/internal/registry"
	"bd2switch/internal/services/accountinfo"
	"bd2switch/internal/store"
)

// SessionStatus classifies the live login session
type SessionStatus int

const (
	// StatusNotLoggedIn means no usable credential values exist.
	StatusNotLoggedIn SessionStatus = iota
	// StatusInvalid means a token exists but is too short to identify.
	StatusInvalid
	// StatusActive means a usable session is present.
	StatusActive
)

// CurrentSession describes the live session for display
type CurrentSession struct {
	Status SessionStatus
	// AccountName is the saved account matching the live fingerprint, or
	// "" when no saved account matches.
	AccountName string
	// MaskedID is the redacted credential id, shown when unmatched.
	MaskedID string
	Info     accountinfo.Info
}

// RefreshMatch is the outcome of matching the live session for a token
// refresh
type RefreshMatch struct {
	Matched bool
	// AccountName is the matched saved account.
	AccountName string
	// MaskedPrefix is the redacted identity prefix, set when unmatched so
	// the caller can report which session had no match.
	MaskedPrefix string
}

// AccountView pairs an account name with its display metadata
type AccountView struct {
	Name string
	Info accountinfo.Info
}

// Controller drives all account-switching operations against the registry
// and the saved-account store
type Controller struct {
	registry registry.Registry
	store    store.Store
	info     *accountinfo.Service
	logger   *slog.Logger
}

// NewController creates a new switcher controller
func NewController(
	reg registry.Registry,
	st store.Store,
	info *accountinfo.Service,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		registry: reg,
		store:    st,
		info:     info,
		logger:   logger,
	}
}

// List returns all saved accounts with display metadata, in store order
func (c *Controller) List(ctx context.Context, lang i18n.Lang) ([]AccountView, error) {
	accounts, err := c.store.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]AccountView, 0, len(accounts))
	for _, a := range accounts {
		views = append(views, AccountView{
			Name: a.Name,
			Info: c.info.Extract(a.Records, lang),
		})
	}
	return views, nil
}

// Current inspects the live session. A missing registry key or missing
// token is not an error; it reports StatusNotLoggedIn.
func (c *Controller) Current(ctx context.Context, lang i18n.Lang) (CurrentSession, error) {
	records, err := c.registry.Read(ctx)
	if errors.Is(err, model.ErrRegistryKeyNotFound) {
		return CurrentSession{Status: StatusNotLoggedIn}, nil
	}
	if err != nil {
		return CurrentSession{}, err
	}

	fp, ok := records.Fingerprint()
	if !ok {
		// Distinguish "no token at all" from "token too short to match".
		if records.MaskedID() == "" {
			return CurrentSession{Status: StatusNotLoggedIn}, nil
		}
		return CurrentSession{Status: StatusInvalid}, nil
	}

	session := CurrentSession{
		Status: StatusActive,
		Info:   c.info.Extract(records, lang),
	}
	name, matched, err := c.findMatch(ctx, fp)
	if err != nil {
		return CurrentSession{}, err
	}
	if matched {
		session.AccountName = name
	} else {
		session.MaskedID = records.MaskedID()
	}
	return session, nil
}

// SaveCurrent snapshots the live session under a new account name. Saving
// onto an existing name fails with model.ErrNameConflict; callers confirm
// and use Overwrite to force.
func (c *Controller) SaveCurrent(ctx context.Context, name string) error {
	if err := store.ValidateName(name); err != nil {
		return err
	}
	if _, err := c.store.Get(ctx, name); err == nil {
		return fmt.Errorf("%w: %q", model.ErrNameConflict, name)
	} else if !errors.Is(err, model.ErrAccountNotFound) {
		return err
	}
	return c.snapshotTo(ctx, name)
}

// Overwrite replaces an existing account's records with the live session
func (c *Controller) Overwrite(ctx context.Context, name string) error {
	if _, err := c.store.Get(ctx, name); err != nil {
		return err
	}
	return c.snapshotTo(ctx, name)
}

func (c *Controller) snapshotTo(ctx context.Context, name string) error {
	records, err := c.registry.Read(ctx)
	if err != nil {
		return err
	}
	if err := c.store.Put(ctx, name, records); err != nil {
		return err
	}
	c.logger.Info("saved live session", slog.String("account", name))
	return nil
}

// Load writes a saved account's records to the registry
func (c *Controller) Load(ctx context.Context, name string) error {
	records, err := c.store.Get(ctx, name)
	if err != nil {
		return err
	}
	if err := c.registry.Write(ctx, records); err != nil {
		return err
	}
	c.logger.Info("loaded account into registry", slog.String("account", name))
	return nil
}

// Rename renames a saved account
func (c *Controller) Rename(ctx context.Context, oldName, newName string) error {
	return c.store.Rename(ctx, oldName, newName)
}

// Delete removes a saved account
func (c *Controller) Delete(ctx context.Context, name string) error {
	return c.store.Remove(ctx, name)
}

// Logout clears the live session by writing empty binary values over every
// live credential value
func (c *Controller) Logout(ctx context.Context) error {
	names, err := c.registry.ValueNames(ctx)
	if err != nil {
		return err
	}
	empty := make(model.RecordSet, len(names))
	for _, name := range names {
		empty[name] = model.CredentialValue{Type: model.TypeBinary}
	}
	if err := c.registry.Write(ctx, empty); err != nil {
		return err
	}
	c.logger.Info("cleared live session")
	return nil
}

// MatchCurrent fingerprints the live session and scans saved accounts for
// it. A match means the live token is a refreshed form of that account's
// token; callers confirm and then Overwrite to accept the update.
func (c *Controller) MatchCurrent(ctx context.Context) (RefreshMatch, error) {
	records, err := c.registry.Read(ctx)
	if err != nil {
		return RefreshMatch{}, err
	}

	v, ok := records.AccessTokenValue()
	if !ok || strings.TrimRight(v.Data, "\x00") == "" {
		return RefreshMatch{}, model.ErrNoActiveSession
	}

	fp, ok := records.Fingerprint()
	if !ok {
		return RefreshMatch{}, model.ErrInvalidToken
	}

	name, matched, err := c.findMatch(ctx, fp)
	if err != nil {
		return RefreshMatch{}, err
	}
	if !matched {
		return RefreshMatch{MaskedPrefix: model.MaskPrefix(fp)}, nil
	}
	return RefreshMatch{Matched: true, AccountName: name}, nil
}

// findMatch returns the first saved account whose fingerprint equals fp,
// scanning in store list order.
func (c *Controller) findMatch(ctx context.Context, fp string) (string, bool, error) {
	accounts, err := c.store.List(ctx)
	if err != nil {
		return "", false, err
	}
	for _, a := range accounts {
		if saved, ok := a.Records.Fingerprint(); ok && saved == fp {
			return a.Name, true, nil
		}
	}
	return "", false, nil
}

// Language returns the effective language preference
func (c *Controller) Language(ctx context.Context) (i18n.Lang, error) {
	lang, err := c.store.Language(ctx)
	if err != nil {
		return i18n.EN, err
	}
	return i18n.Parse(lang), nil
}

// SetLanguage persists a new language preference
func (c *Controller) SetLanguage(ctx context.Context, lang string) error {
	if !i18n.Valid(lang) {
		return fmt.Errorf("unsupported language %q", lang)
	}
	return c.store.SetLanguage(ctx, lang)
}
