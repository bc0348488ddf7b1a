package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"bd2switch/internal/i18n"
	"bd2switch/internal/services/accountinfo"
)

// CLISuite drives the commands that operate purely on the account store, so
// the tests behave the same with or without a live game registry.
type CLISuite struct {
	suite.Suite
	dataPath string
}

func TestCLISuite(t *testing.T) {
	suite.Run(t, new(CLISuite))
}

func (s *CLISuite) SetupTest() {
	s.dataPath = filepath.Join(s.T().TempDir(), "accounts.json")
}

func (s *CLISuite) run(stdin string, args ...string) (string, error) {
	root := NewRootCmd()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--data", s.dataPath}, args...))
	err := root.Execute()
	return out.String(), err
}

func (s *CLISuite) seed(names ...string) {
	doc := "{\n"
	for i, name := range names {
		if i > 0 {
			doc += ",\n"
		}
		doc += `"` + name + `": {"neon_access_token_h7": {"data": "` +
			name + `9999|p1|p2|p3|secret|1700000000000", "type": 3}}`
	}
	doc += "\n}"
	s.Require().NoError(os.WriteFile(s.dataPath, []byte(doc), 0o600))
}

func (s *CLISuite) TestListEmpty() {
	out, err := s.run("", "list")
	s.Require().NoError(err)
	s.Contains(out, i18n.T(i18n.EN, "no_accounts"))
}

func (s *CLISuite) TestListShowsAccountsInOrder() {
	s.seed("main", "alt")
	out, err := s.run("", "list")
	s.Require().NoError(err)
	s.Less(strings.Index(out, "main"), strings.Index(out, "alt"))
}

func (s *CLISuite) TestRenameConflict() {
	s.seed("main", "alt")
	_, err := s.run("", "rename", "main", "alt")
	s.Require().Error(err)
	s.Contains(err.Error(), i18n.T(i18n.EN, "name_exists", "alt"))
}

func (s *CLISuite) TestRename() {
	s.seed("main")
	out, err := s.run("", "rename", "main", "primary")
	s.Require().NoError(err)
	s.Contains(out, i18n.T(i18n.EN, "renamed", "primary"))

	out, err = s.run("", "list")
	s.Require().NoError(err)
	s.Contains(out, "primary")
	s.NotContains(out, "main")
}

func (s *CLISuite) TestDeleteDeclined() {
	s.seed("main")
	out, err := s.run("n\n", "delete", "main")
	s.Require().NoError(err)
	s.Contains(out, i18n.T(i18n.EN, "aborted"))

	out, err = s.run("", "list")
	s.Require().NoError(err)
	s.Contains(out, "main")
}

func (s *CLISuite) TestDeleteWithYes() {
	s.seed("main")
	out, err := s.run("", "--yes", "delete", "main")
	s.Require().NoError(err)
	s.Contains(out, i18n.T(i18n.EN, "account_deleted", "main"))

	out, err = s.run("", "list")
	s.Require().NoError(err)
	s.Contains(out, i18n.T(i18n.EN, "no_accounts"))
}

func (s *CLISuite) TestDeleteMissing() {
	_, err := s.run("", "--yes", "delete", "ghost")
	s.Error(err)
}

func (s *CLISuite) TestLanguagePersistsAcrossRuns() {
	out, err := s.run("", "lang", "zh")
	s.Require().NoError(err)
	s.Contains(out, i18n.T(i18n.ZH, "language_set", "zh"))

	out, err = s.run("", "list")
	s.Require().NoError(err)
	s.Contains(out, i18n.T(i18n.ZH, "no_accounts"))
}

func (s *CLISuite) TestLanguageFlagOverridesPersisted() {
	_, err := s.run("", "lang", "zh")
	s.Require().NoError(err)

	out, err := s.run("", "--lang", "en", "list")
	s.Require().NoError(err)
	s.Contains(out, i18n.T(i18n.EN, "no_accounts"))
}

func (s *CLISuite) TestUnsupportedLanguageRejected() {
	_, err := s.run("", "lang", "fr")
	s.Error(err)
}

func (s *CLISuite) TestCorruptedFileWarnsAndStillRuns() {
	s.Require().NoError(os.WriteFile(s.dataPath, []byte("{not json"), 0o600))
	out, err := s.run("", "list")
	s.Require().NoError(err)
	s.Contains(out, "corrupted")
	s.Contains(out, i18n.T(i18n.EN, "no_accounts"))
}

func TestDisplayLine(t *testing.T) {
	info := accountinfo.Info{
		Platform:   "GOOGLE",
		RegNation:  "KR",
		CreateDate: "2020-09-13",
		TokenAge:   "2h ago",
	}
	got := displayLine("main", info, i18n.EN)
	want := "main  |  GOOGLE  |  KR  |  Registered: 2020-09-13  |  Token: 2h ago"
	if got != want {
		t.Errorf("displayLine() = %q, want %q", got, want)
	}

	got = displayLine("bare", accountinfo.Info{}, i18n.EN)
	if got != "bare" {
		t.Errorf("displayLine() = %q, want %q", got, "bare")
	}
}
