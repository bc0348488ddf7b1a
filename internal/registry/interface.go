// Package registry abstracts the per-user configuration store the game
// client keeps its login session in (on Windows, the registry).
package registry

import (
	"context"
	"strings"

	"bd2switch/internal/model"
)

// DefaultKeyPath is the game client's key under the per-user hive.
const DefaultKeyPath = `SOFTWARE\Gamfs\BrownDust II`

// Registry defines the interface to the game's credential value store
type Registry interface {
	// ValueNames enumerates the value names under the game's key and maps
	// each known prefix to the first matching live name. Returns
	// model.ErrRegistryKeyNotFound when the parent key is missing or no
	// name matches any prefix.
	ValueNames(ctx context.Context) (map[string]string, error)

	// Read returns the live credential record set, keyed by live value
	// name. A matched name whose value cannot be read degrades to an empty
	// binary value rather than failing the whole read.
	Read(ctx context.Context) (model.RecordSet, error)

	// Write stores the record set, remapping record names onto the live
	// value names by prefix and preserving each value's type tag.
	Write(ctx context.Context, records model.RecordSet) error
}

// RemapNames rewrites record-set keys onto the live value names, so a set
// saved under an older name generation is written back to the names the
// client currently uses. Records with no live counterpart keep their name.
func RemapNames(records model.RecordSet, live map[string]string) model.RecordSet {
	out := make(model.RecordSet, len(records))
	for name, v := range records {
		target := name
		for _, prefix := range model.ValuePrefixes {
			if strings.HasPrefix(name, prefix) {
				if liveName, ok := live[prefix]; ok {
					target = liveName
				}
				break
			}
		}
		out[target] = v
	}
	return out
}

// MatchNames maps each known prefix to the first matching name in sorted
// order. Shared by registry backends so the tie-break stays consistent.
func MatchNames(names []string) map[string]string {
	matched := make(map[string]string)
	for _, prefix := range model.ValuePrefixes {
		var candidates []string
		for _, name := range names {
			if strings.HasPrefix(name, prefix) {
				candidates = append(candidates, name)
			}
		}
		if len(candidates) == 0 {
			continue
		}
		best := candidates[0]
		for _, c := range candidates[1:] {
			if c < best {
				best = c
			}
		}
		matched[prefix] = best
	}
	return matched
}
