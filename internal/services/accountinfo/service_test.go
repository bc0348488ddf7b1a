package accountinfo

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"bd2switch/internal/dependencies/mocks"
	"bd2switch/internal/i18n"
	"bd2switch/internal/model"
)

type ServiceSuite struct {
	suite.Suite
	clock   *mocks.MockClock
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC))
	s.service = New(s.clock)
}

func (s *ServiceSuite) recordsWithIssue(issued time.Time) model.RecordSet {
	return model.RecordSet{
		"neon_access_token_h1": {
			Data: fmt.Sprintf("id|a|b|c|secret|%d", issued.UnixMilli()),
			Type: model.TypeBinary,
		},
	}
}

func (s *ServiceSuite) TestExtractFullRecordSet() {
	created := time.Date(2023, 6, 15, 3, 0, 0, 0, time.UTC)
	records := s.recordsWithIssue(s.clock.CurrentTime.Add(-30 * time.Minute))
	records["neon_auth_member_h1"] = model.CredentialValue{
		Data: fmt.Sprintf(`{"reg_path":"FIREBASE_GOOGLE","reg_nation":"KR","crt_dt":%d}`, created.UnixMilli()),
		Type: model.TypeBinary,
	}

	info := s.service.Extract(records, i18n.EN)
	s.Equal("GOOGLE", info.Platform)
	s.Equal("KR", info.RegNation)
	s.Equal(created.Local().Format("2006-01-02"), info.CreateDate)
	s.Equal("30m ago", info.TokenAge)
}

func (s *ServiceSuite) TestExtractEmptyRecordSet() {
	info := s.service.Extract(model.RecordSet{}, i18n.EN)
	s.Equal(Info{}, info)
}

func (s *ServiceSuite) TestExtractMalformedBlobsDegradeToEmptyFields() {
	records := model.RecordSet{
		"neon_access_token_h1": {Data: "too|short", Type: model.TypeBinary},
		"neon_auth_member_h1":  {Data: "not json", Type: model.TypeBinary},
	}

	info := s.service.Extract(records, i18n.EN)
	s.Equal(Info{}, info)
}

func (s *ServiceSuite) TestTokenAgeOmittedWhenTimestampMissing() {
	records := model.RecordSet{
		"neon_access_token_h1": {Data: "id|a|b|c", Type: model.TypeBinary},
	}

	info := s.service.Extract(records, i18n.EN)
	s.Equal("", info.TokenAge)
}

// Bucket boundary tests: minutes under an hour, hours under a day, then
// days plus remaining hours.

func (s *ServiceSuite) tokenAge(age time.Duration, lang i18n.Lang) string {
	records := s.recordsWithIssue(s.clock.CurrentTime.Add(-age))
	return s.service.Extract(records, lang).TokenAge
}

func (s *ServiceSuite) TestTokenAgeBuckets() {
	s.Equal("0m ago", s.tokenAge(0, i18n.EN))
	s.Equal("59m ago", s.tokenAge(59*time.Minute, i18n.EN))
	s.Equal("1h ago", s.tokenAge(61*time.Minute, i18n.EN))
	s.Equal("23h ago", s.tokenAge(23*time.Hour+59*time.Minute, i18n.EN))
	s.Equal("1d 0h ago", s.tokenAge(24*time.Hour+1*time.Minute, i18n.EN))
	s.Equal("3d 4h ago", s.tokenAge(3*24*time.Hour+4*time.Hour+30*time.Minute, i18n.EN))
}

func (s *ServiceSuite) TestTokenAgeChineseRendering() {
	s.Equal("23分钟前", s.tokenAge(23*time.Minute, i18n.ZH))
	s.Equal("5小时前", s.tokenAge(5*time.Hour, i18n.ZH))
	s.Equal("3天4小时前", s.tokenAge(3*24*time.Hour+4*time.Hour, i18n.ZH))
}

func (s *ServiceSuite) TestFutureIssueTimestampClampsToZero() {
	s.Equal("0m ago", s.tokenAge(-10*time.Minute, i18n.EN))
}
