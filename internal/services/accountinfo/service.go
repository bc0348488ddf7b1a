// Package accountinfo derives human-readable metadata from a credential
// record set: platform, registration country, registration date and the age
// of the access token.
package accountinfo

import (
	"fmt"
	"time"

	"bd2switch/internal/dependencies/clock"
	"bd2switch/internal/i18n"
	"bd2switch/internal/model"
)

// Info is the display metadata for one record set. Every field is
// independently optional; an empty field means the source data was missing
// or unreadable.
type Info struct {
	Platform   string
	RegNation  string
	CreateDate string
	TokenAge   string
}

// Service extracts display metadata from credential record sets
type Service struct {
	clock clock.Clock
}

// New creates a new accountinfo service
func New(clock clock.Clock) *Service {
	return &Service{clock: clock}
}

// Extract derives display metadata from records. It never fails; worst case
// every field of the result is empty.
func (s *Service) Extract(records model.RecordSet, lang i18n.Lang) Info {
	var info Info

	if v, ok := records.AuthMemberValue(); ok {
		member := model.ParseAuthMember(v.Data)
		info.Platform = member.Platform()
		info.RegNation = member.RegNation
		if !member.CreatedAt.IsZero() {
			info.CreateDate = member.CreatedAt.Local().Format("2006-01-02")
		}
	}

	if v, ok := records.AccessTokenValue(); ok {
		if tok, ok := model.ParseAccessToken(v.Data); ok && !tok.IssuedAt.IsZero() {
			info.TokenAge = formatAge(s.clock.Now().Sub(tok.IssuedAt), lang)
		}
	}

	return info
}

// formatAge buckets a token age: whole minutes under an hour, whole hours
// under a day, then days plus remaining hours. Negative ages (future issue
// timestamps from clock skew) clamp to zero.
func formatAge(age time.Duration, lang i18n.Lang) string {
	if age < 0 {
		age = 0
	}

	total := int64(age / time.Second)
	days := total / 86400
	hours := (total % 86400) / 3600
	minutes := (total % 3600) / 60

	switch {
	case total < 3600:
		if lang == i18n.ZH {
			return fmt.Sprintf("%d分钟前", minutes)
		}
		return fmt.Sprintf("%dm ago", minutes)
	case total < 86400:
		if lang == i18n.ZH {
			return fmt.Sprintf("%d小时前", hours)
		}
		return fmt.Sprintf("%dh ago", hours)
	default:
		if lang == i18n.ZH {
			return fmt.Sprintf("%d天%d小时前", days, hours)
		}
		return fmt.Sprintf("%dd %dh ago", days, hours)
	}
}
