package switcher

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"bd2switch/internal/dependencies/mocks"
	"bd2switch/internal/i18n"
	"bd2switch/internal/model"
	registrymem "bd2switch/internal/registry/memory"
	"bd2switch/internal/services/accountinfo"
	storemem "bd2switch/internal/store/memory"
	"bd2switch/internal/testutil"
)

type ControllerSuite struct {
	suite.Suite
	registry   *registrymem.Registry
	store      *storemem.Store
	clock      *mocks.MockClock
	controller *Controller
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.registry = registrymem.New()
	s.store = storemem.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC))
	s.controller = NewController(s.registry, s.store, accountinfo.New(s.clock), testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ControllerSuite) seedLive(token string) {
	s.registry.SetValue("neon_access_token_h1", model.CredentialValue{Data: token, Type: model.TypeBinary})
	s.registry.SetValue("neon_auth_member_h1", model.CredentialValue{
		Data: `{"reg_path":"FIREBASE_APPLE","reg_nation":"JP"}`,
		Type: model.TypeBinary,
	})
}

// Current tests

func (s *ControllerSuite) TestCurrentWithMissingRegistryKey() {
	s.controller = NewController(registrymem.NewAbsent(), s.store, accountinfo.New(s.clock), testutil.NopLogger())

	session, err := s.controller.Current(s.ctx, i18n.EN)
	s.Require().NoError(err)
	s.Equal(StatusNotLoggedIn, session.Status)
}

func (s *ControllerSuite) TestCurrentWithEmptyToken() {
	s.registry.SetValue("neon_access_token_h1", model.CredentialValue{Data: "\x00\x00", Type: model.TypeBinary})

	session, err := s.controller.Current(s.ctx, i18n.EN)
	s.Require().NoError(err)
	s.Equal(StatusNotLoggedIn, session.Status)
}

func (s *ControllerSuite) TestCurrentWithShortToken() {
	s.registry.SetValue("neon_access_token_h1", model.CredentialValue{Data: "id|only|two", Type: model.TypeBinary})

	session, err := s.controller.Current(s.ctx, i18n.EN)
	s.Require().NoError(err)
	s.Equal(StatusInvalid, session.Status)
}

func (s *ControllerSuite) TestCurrentUnmatchedShowsMaskedID() {
	s.seedLive("AB12wxyz|a|b|c|secret|1700000000000")

	session, err := s.controller.Current(s.ctx, i18n.EN)
	s.Require().NoError(err)
	s.Equal(StatusActive, session.Status)
	s.Empty(session.AccountName)
	s.Equal("AB12***yz", session.MaskedID)
	s.Equal("APPLE", session.Info.Platform)
	s.Equal("JP", session.Info.RegNation)
}

func (s *ControllerSuite) TestCurrentMatchesSavedAccount() {
	s.seedLive("AB12wxyz|a|b|c|secret|1700000000000")
	s.Require().NoError(s.controller.SaveCurrent(s.ctx, "main"))

	session, err := s.controller.Current(s.ctx, i18n.EN)
	s.Require().NoError(err)
	s.Equal("main", session.AccountName)
	s.Empty(session.MaskedID)
}

// Save / overwrite tests

func (s *ControllerSuite) TestSaveCurrentConflicts() {
	s.seedLive("id|a|b|c")
	s.Require().NoError(s.controller.SaveCurrent(s.ctx, "main"))

	err := s.controller.SaveCurrent(s.ctx, "main")
	s.ErrorIs(err, model.ErrNameConflict)
}

func (s *ControllerSuite) TestSaveCurrentRejectsReservedName() {
	s.seedLive("id|a|b|c")
	s.ErrorIs(s.controller.SaveCurrent(s.ctx, "_config"), model.ErrReservedName)
}

func (s *ControllerSuite) TestSaveCurrentWithoutRegistryKey() {
	s.controller = NewController(registrymem.NewAbsent(), s.store, accountinfo.New(s.clock), testutil.NopLogger())
	s.ErrorIs(s.controller.SaveCurrent(s.ctx, "main"), model.ErrRegistryKeyNotFound)
}

func (s *ControllerSuite) TestOverwriteMissingAccount() {
	s.seedLive("id|a|b|c")
	s.ErrorIs(s.controller.Overwrite(s.ctx, "ghost"), model.ErrAccountNotFound)
}

func (s *ControllerSuite) TestOverwriteReplacesRecords() {
	s.seedLive("id|a|b|c|old|1")
	s.Require().NoError(s.controller.SaveCurrent(s.ctx, "main"))

	s.seedLive("id|a|b|c|new|2")
	s.Require().NoError(s.controller.Overwrite(s.ctx, "main"))

	records, err := s.store.Get(s.ctx, "main")
	s.Require().NoError(err)
	s.Equal("id|a|b|c|new|2", records["neon_access_token_h1"].Data)
}

// Load / logout tests

func (s *ControllerSuite) TestLoadWritesSavedRecords() {
	s.seedLive("live|a|b|c")
	s.Require().NoError(s.store.Put(s.ctx, "saved", model.RecordSet{
		"neon_access_token_h1": {Data: "saved|a|b|c", Type: model.TypeBinary},
	}))

	s.Require().NoError(s.controller.Load(s.ctx, "saved"))

	v, ok := s.registry.Value("neon_access_token_h1")
	s.Require().True(ok)
	s.Equal("saved|a|b|c", v.Data)
}

func (s *ControllerSuite) TestLoadMissingAccount() {
	s.ErrorIs(s.controller.Load(s.ctx, "ghost"), model.ErrAccountNotFound)
}

func (s *ControllerSuite) TestLogoutClearsLiveValues() {
	s.seedLive("id|a|b|c")

	s.Require().NoError(s.controller.Logout(s.ctx))

	v, ok := s.registry.Value("neon_access_token_h1")
	s.Require().True(ok)
	s.Equal("", v.Data)
	s.Equal(model.TypeBinary, v.Type)

	session, err := s.controller.Current(s.ctx, i18n.EN)
	s.Require().NoError(err)
	s.Equal(StatusNotLoggedIn, session.Status)
}

// Refresh-token matching tests

func (s *ControllerSuite) TestMatchCurrentFindsRefreshedToken() {
	s.seedLive("id|a|b|c|old-secret|1700000000000")
	s.Require().NoError(s.controller.SaveCurrent(s.ctx, "main"))

	// Simulate a client-side token refresh: identity prefix unchanged,
	// trailing fields rotated.
	s.seedLive("id|a|b|c|new-secret|1700009999999")

	match, err := s.controller.MatchCurrent(s.ctx)
	s.Require().NoError(err)
	s.True(match.Matched)
	s.Equal("main", match.AccountName)

	// Accepting the refresh replaces the stored token with the live one.
	s.Require().NoError(s.controller.Overwrite(s.ctx, "main"))
	records, _ := s.store.Get(s.ctx, "main")
	s.Equal("id|a|b|c|new-secret|1700009999999", records["neon_access_token_h1"].Data)
}

func (s *ControllerSuite) TestMatchCurrentFirstMatchWins() {
	s.seedLive("id|a|b|c|s|1")
	s.Require().NoError(s.controller.SaveCurrent(s.ctx, "older"))
	s.Require().NoError(s.store.Put(s.ctx, "newer", model.RecordSet{
		"neon_access_token_h1": {Data: "id|a|b|c|other|2", Type: model.TypeBinary},
	}))

	match, err := s.controller.MatchCurrent(s.ctx)
	s.Require().NoError(err)
	s.True(match.Matched)
	s.Equal("older", match.AccountName)
}

func (s *ControllerSuite) TestMatchCurrentNoMatchMasksPrefix() {
	s.seedLive("AB12wxyz|a|b|c|s|1")

	match, err := s.controller.MatchCurrent(s.ctx)
	s.Require().NoError(err)
	s.False(match.Matched)
	s.Equal("AB12***yz|a|b|c", match.MaskedPrefix)
}

func (s *ControllerSuite) TestMatchCurrentWithoutToken() {
	s.registry.SetValue("neon_auth_member_h1", model.CredentialValue{Data: "{}", Type: model.TypeBinary})

	_, err := s.controller.MatchCurrent(s.ctx)
	s.ErrorIs(err, model.ErrNoActiveSession)
}

func (s *ControllerSuite) TestMatchCurrentWithInvalidToken() {
	s.registry.SetValue("neon_access_token_h1", model.CredentialValue{Data: "id|short", Type: model.TypeBinary})

	_, err := s.controller.MatchCurrent(s.ctx)
	s.ErrorIs(err, model.ErrInvalidToken)
}

// Language tests

func (s *ControllerSuite) TestLanguageDefaultsToEnglish() {
	lang, err := s.controller.Language(s.ctx)
	s.Require().NoError(err)
	s.Equal(i18n.EN, lang)
}

func (s *ControllerSuite) TestSetLanguagePersists() {
	s.Require().NoError(s.controller.SetLanguage(s.ctx, "zh"))

	lang, err := s.controller.Language(s.ctx)
	s.Require().NoError(err)
	s.Equal(i18n.ZH, lang)
}

func (s *ControllerSuite) TestSetLanguageRejectsUnknown() {
	s.Error(s.controller.SetLanguage(s.ctx, "fr"))
}

// List tests

func (s *ControllerSuite) TestListReturnsViewsInStoreOrder() {
	s.seedLive("one|a|b|c")
	s.Require().NoError(s.controller.SaveCurrent(s.ctx, "zeta"))
	s.seedLive("two|a|b|c")
	s.Require().NoError(s.controller.SaveCurrent(s.ctx, "alpha"))

	views, err := s.controller.List(s.ctx, i18n.EN)
	s.Require().NoError(err)
	s.Require().Len(views, 2)
	s.Equal("zeta", views[0].Name)
	s.Equal("alpha", views[1].Name)
	s.Equal("APPLE", views[0].Info.Platform)
}
