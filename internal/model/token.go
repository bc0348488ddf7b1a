package model

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

const (
	// identityPartCount is the number of leading token fields that form the
	// identity prefix.
	identityPartCount = 4

	// issuedAtIndex is the token field holding the issue timestamp in Unix
	// milliseconds.
	issuedAtIndex = 5
)

// AccessToken is the decoded form of the game's pipe-delimited access token.
type AccessToken struct {
	// Parts are the raw pipe-delimited fields, at least four of them.
	Parts []string
	// IssuedAt is the token issue time, or the zero time when the token
	// carries no parseable timestamp field.
	IssuedAt time.Time
}

// ParseAccessToken decodes a raw access-token value. Trailing NUL padding is
// stripped before splitting on "|". Tokens with fewer than four fields are
// unusable for display or matching and yield false; a missing or malformed
// timestamp field is not an error, the timestamp is simply absent.
func ParseAccessToken(raw string) (AccessToken, bool) {
	parts := strings.Split(trimNUL(raw), "|")
	if len(parts) < identityPartCount {
		return AccessToken{}, false
	}
	tok := AccessToken{Parts: parts}
	if len(parts) > issuedAtIndex {
		if ms, err := strconv.ParseInt(parts[issuedAtIndex], 10, 64); err == nil {
			tok.IssuedAt = time.UnixMilli(ms)
		}
	}
	return tok, true
}

// Fingerprint returns the token's identity prefix.
func (t AccessToken) Fingerprint() string {
	return strings.Join(t.Parts[:identityPartCount], "|")
}

// AuthMember is the decoded auth-member blob. Every field is optional; the
// zero value means the blob was missing or unreadable.
type AuthMember struct {
	RegPath   string
	RegNation string
	// CreatedAt is the registration time, or the zero time when absent.
	CreatedAt time.Time
}

// authMemberWire decodes crt_dt loosely so a malformed timestamp does not
// discard the other fields.
type authMemberWire struct {
	RegPath   string          `json:"reg_path"`
	RegNation string          `json:"reg_nation"`
	CreatedDT json.RawMessage `json:"crt_dt"`
}

// ParseAuthMember decodes a raw auth-member value. Trailing NUL padding is
// stripped before JSON decoding. Any decode failure yields the zero
// AuthMember; this never surfaces an error.
func ParseAuthMember(raw string) AuthMember {
	var wire authMemberWire
	if err := json.Unmarshal([]byte(trimNUL(raw)), &wire); err != nil {
		return AuthMember{}
	}
	m := AuthMember{
		RegPath:   wire.RegPath,
		RegNation: wire.RegNation,
	}
	if ms, err := strconv.ParseInt(string(wire.CreatedDT), 10, 64); err == nil && ms != 0 {
		m.CreatedAt = time.UnixMilli(ms)
	}
	return m
}

// Platform derives the display platform name from reg_path. Firebase-routed
// registrations are prefixed FIREBASE_; the platform is everything after
// that prefix. Other paths are the platform name as-is.
func (m AuthMember) Platform() string {
	if rest, ok := strings.CutPrefix(m.RegPath, "FIREBASE_"); ok {
		return rest
	}
	return m.RegPath
}
