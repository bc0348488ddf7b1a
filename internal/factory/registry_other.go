//go:build !windows

package factory

import (
	"log/slog"

	"bd2switch/internal/registry"
	registrymem "bd2switch/internal/registry/memory"
)

// platformRegistry falls back to an in-memory registry on platforms without
// a live game registry. Useful for development; the real data lives on
// Windows.
func platformRegistry(_ string, logger *slog.Logger) registry.Registry {
	logger.Warn("no live game registry on this platform, using in-memory registry")
	return registrymem.New()
}
