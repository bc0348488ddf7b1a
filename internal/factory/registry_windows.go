//go:build windows

package factory

import (
	"log/slog"

	"bd2switch/internal/registry"
	winregistry "bd2switch/internal/registry/windows"
)

// platformRegistry returns the live Windows registry backend.
func platformRegistry(keyPath string, _ *slog.Logger) registry.Registry {
	return winregistry.New(keyPath)
}
