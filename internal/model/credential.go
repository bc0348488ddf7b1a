package model

import (
	"sort"
	"strings"
)

// Value-name prefixes the game client uses under its registry key. The
// client may suffix the actual names, so all lookups match on prefix.
const (
	AccessTokenPrefix = "neon_access_token_h"
	AuthMemberPrefix  = "neon_auth_member_h"
)

// ValuePrefixes lists the prefixes that together identify one login session.
var ValuePrefixes = []string{AccessTokenPrefix, AuthMemberPrefix}

// ValueType mirrors the registry type code of a stored value. Codes other
// than the two known ones are carried through untouched.
type ValueType int

const (
	TypeString ValueType = 1
	TypeBinary ValueType = 3
)

// CredentialValue is one registry value as read from the store. Data keeps
// any trailing NUL padding so the value round-trips to the registry intact;
// padding is stripped only when the value is interpreted.
type CredentialValue struct {
	Data string    `json:"data"`
	Type ValueType `json:"type"`
}

// RecordSet maps registry value names to their values. One record set is the
// bundle of values that together constitute one login session.
type RecordSet map[string]CredentialValue

// Clone returns an independent copy of the record set.
func (rs RecordSet) Clone() RecordSet {
	if rs == nil {
		return nil
	}
	out := make(RecordSet, len(rs))
	for name, v := range rs {
		out[name] = v
	}
	return out
}

// valueWithPrefix returns the first value whose name starts with prefix.
// Names are scanned in sorted order so the tie-break is deterministic when
// the registry holds several generations of the same value.
func (rs RecordSet) valueWithPrefix(prefix string) (CredentialValue, bool) {
	var names []string
	for name := range rs {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return CredentialValue{}, false
	}
	sort.Strings(names)
	return rs[names[0]], true
}

// AccessTokenValue returns the set's access-token value, if present.
func (rs RecordSet) AccessTokenValue() (CredentialValue, bool) {
	return rs.valueWithPrefix(AccessTokenPrefix)
}

// AuthMemberValue returns the set's auth-member value, if present.
func (rs RecordSet) AuthMemberValue() (CredentialValue, bool) {
	return rs.valueWithPrefix(AuthMemberPrefix)
}

// Fingerprint computes the identity prefix of the set's access token: the
// first four pipe-delimited fields joined back with "|". The trailing fields
// rotate on token refresh, but the leading four identify the same session
// across refreshes. Returns false when the set has no usable token.
func (rs RecordSet) Fingerprint() (string, bool) {
	v, ok := rs.AccessTokenValue()
	if !ok {
		return "", false
	}
	tok, ok := ParseAccessToken(v.Data)
	if !ok {
		return "", false
	}
	return tok.Fingerprint(), true
}

// MaskedID returns a partially redacted rendering of the set's credential
// id (the first token field), or "" when the set has no token id. Shown
// whenever a full account match cannot be established, so raw ids never
// reach the display.
func (rs RecordSet) MaskedID() string {
	v, ok := rs.AccessTokenValue()
	if !ok {
		return ""
	}
	parts := strings.Split(trimNUL(v.Data), "|")
	if parts[0] == "" {
		return ""
	}
	return MaskID(parts[0])
}

// MaskID redacts the middle of a credential id. Ids of six characters or
// fewer carry too little material to partially reveal and are returned
// verbatim.
func MaskID(id string) string {
	if len(id) > 6 {
		return id[:4] + "***" + id[len(id)-2:]
	}
	return id
}

// MaskPrefix masks the id field of a full identity prefix, leaving the
// remaining fields intact.
func MaskPrefix(prefix string) string {
	parts := strings.Split(prefix, "|")
	if parts[0] == "" {
		return prefix
	}
	parts[0] = MaskID(parts[0])
	return strings.Join(parts, "|")
}

// trimNUL strips the trailing NUL padding the registry adds to fixed-size
// binary values.
func trimNUL(s string) string {
	return strings.TrimRight(s, "\x00")
}
