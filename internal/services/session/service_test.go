package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/huddle/internal/models"
	sessionRepo "github.com/KirkDiggler/huddle/internal/repositories/session"
	repoMocks "github.com/KirkDiggler/huddle/internal/repositories/session/mocks"
	"github.com/KirkDiggler/huddle/internal/services/render"
	. "github.com/KirkDiggler/huddle/internal/services/session"
	refresherMocks "github.com/KirkDiggler/huddle/internal/services/session/mocks"
	settingsMocks "github.com/KirkDiggler/huddle/internal/services/settings/mocks"
	timingMocks "github.com/KirkDiggler/huddle/internal/services/timing/mocks"
)

type SessionServiceTestSuite struct {
	suite.Suite
	mockCtrl      *gomock.Controller
	mockRepo      *repoMocks.MockRepository
	mockSettings  *settingsMocks.MockService
	mockTiming    *timingMocks.MockService
	mockRefresher *refresherMocks.MockRefresher
	service       Service
	ctx           context.Context

	// Test data
	testServerID  string
	testCreatorID string
	testMemberID  string
	testTimezone  string
	testLocalNow  time.Time
	testSchedule  time.Time
	testConfig    *models.ServerConfig

	// Reusable fixtures
	expectedSession *models.Session
}

func (s *SessionServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockRepo = repoMocks.NewMockRepository(s.mockCtrl)
	s.mockSettings = settingsMocks.NewMockService(s.mockCtrl)
	s.mockTiming = timingMocks.NewMockService(s.mockCtrl)
	s.mockRefresher = refresherMocks.NewMockRefresher(s.mockCtrl)
	s.ctx = context.Background()

	s.testServerID = "111"
	s.testCreatorID = "222"
	s.testMemberID = "333"
	s.testTimezone = "Europe/Madrid"
	s.testLocalNow = time.Date(2025, 4, 5, 20, 30, 0, 0, time.UTC)
	s.testSchedule = time.Date(2025, 4, 5, 21, 0, 0, 0, time.UTC)
	s.testConfig = &models.ServerConfig{
		ServerID:         s.testServerID,
		Timezone:         s.testTimezone,
		Language:         "es",
		AlertLeadMinutes: 60,
	}

	s.expectedSession = &models.Session{
		ID:              "111_raid",
		ServerID:        s.testServerID,
		Name:            "Raid",
		ScheduledAt:     s.testSchedule,
		DurationMinutes: 120,
		GroupID:         "444",
		ChannelID:       "555",
		CreatorID:       s.testCreatorID,
		CreatedAt:       s.testLocalNow,
		Participants: models.Participants{
			Ready:    []string{},
			NotReady: []string{},
		},
	}

	svc, err := New(&Config{
		SessionRepo: s.mockRepo,
		Settings:    s.mockSettings,
		Timing:      s.mockTiming,
		Refresher:   s.mockRefresher,
	})
	s.Require().NoError(err)
	s.service = svc
}

func (s *SessionServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSessionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SessionServiceTestSuite))
}

func (s *SessionServiceTestSuite) stored(mutate func(session *models.Session)) *models.Session {
	session := s.expectedSession.Clone()
	if mutate != nil {
		mutate(session)
	}
	return session
}

func (s *SessionServiceTestSuite) expectGet(session *models.Session) {
	s.mockRepo.EXPECT().
		GetSession(s.ctx, &sessionRepo.GetSessionInput{SessionID: session.ID}).
		Return(session, nil)
}

func (s *SessionServiceTestSuite) validCreateInput() *CreateSessionInput {
	return &CreateSessionInput{
		ServerID:    s.testServerID,
		Name:        "Raid",
		CreatorID:   s.testCreatorID,
		ScheduledAt: "05-04-2025 21:00",
		GroupID:     "<@&444>",
		ChannelID:   "<#555>",
	}
}

func (s *SessionServiceTestSuite) TestNewValidatesConfig() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{})
	s.ErrorIs(err, ErrNilSessionRepo)

	_, err = New(&Config{SessionRepo: s.mockRepo})
	s.ErrorIs(err, ErrNilSettings)

	_, err = New(&Config{SessionRepo: s.mockRepo, Settings: s.mockSettings})
	s.ErrorIs(err, ErrNilTiming)
}

func (s *SessionServiceTestSuite) TestCreateSession() {
	s.mockSettings.EXPECT().Get(s.ctx, s.testServerID).Return(s.testConfig)
	s.mockTiming.EXPECT().MinutesUntil(s.testSchedule, s.testTimezone).Return(30.0)
	s.mockTiming.EXPECT().LocalNow(s.testTimezone).Return(s.testLocalNow)
	s.mockRepo.EXPECT().
		GetSession(s.ctx, &sessionRepo.GetSessionInput{SessionID: "111_raid"}).
		Return(nil, sessionRepo.ErrSessionNotFound)
	s.mockRepo.EXPECT().
		SaveSession(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *sessionRepo.SaveSessionInput) error {
			input.Session.ID = models.SessionID(input.Session.ServerID, input.Session.Name)
			s.Equal(s.expectedSession, input.Session)
			return nil
		})

	output, err := s.service.CreateSession(s.ctx, s.validCreateInput())
	s.Require().NoError(err)
	s.Equal("111_raid", output.Session.ID)
	s.False(output.Replaced)
	s.Equal(30.0, output.MinutesRemaining)
	s.Equal("444", output.Session.GroupID)
	s.Equal("555", output.Session.ChannelID)
	s.False(output.Session.Notified)
	s.Nil(output.Session.MessageRef)
}

func (s *SessionServiceTestSuite) TestCreateSessionAcceptsSlashLayoutAndDuration() {
	input := s.validCreateInput()
	input.ScheduledAt = "05/04/2025 21:00"
	input.DurationMinutes = 45

	s.mockSettings.EXPECT().Get(s.ctx, s.testServerID).Return(s.testConfig)
	s.mockTiming.EXPECT().MinutesUntil(s.testSchedule, s.testTimezone).Return(30.0)
	s.mockTiming.EXPECT().LocalNow(s.testTimezone).Return(s.testLocalNow)
	s.mockRepo.EXPECT().GetSession(s.ctx, gomock.Any()).Return(s.stored(nil), nil)
	s.mockRepo.EXPECT().SaveSession(s.ctx, gomock.Any()).Return(nil)

	output, err := s.service.CreateSession(s.ctx, input)
	s.Require().NoError(err)
	s.Equal(45, output.Session.DurationMinutes)
	s.True(output.Replaced)
}

func (s *SessionServiceTestSuite) TestCreateSessionRejectsPastDate() {
	s.mockSettings.EXPECT().Get(s.ctx, s.testServerID).Return(s.testConfig)
	s.mockTiming.EXPECT().MinutesUntil(s.testSchedule, s.testTimezone).Return(-5.0)

	_, err := s.service.CreateSession(s.ctx, s.validCreateInput())

	var validationErr *ValidationError
	s.Require().ErrorAs(err, &validationErr)
	s.Equal("date", validationErr.Field)
}

func (s *SessionServiceTestSuite) TestCreateSessionRejectsStartingNow() {
	s.mockSettings.EXPECT().Get(s.ctx, s.testServerID).Return(s.testConfig)
	s.mockTiming.EXPECT().MinutesUntil(s.testSchedule, s.testTimezone).Return(0.0)

	_, err := s.service.CreateSession(s.ctx, s.validCreateInput())

	var validationErr *ValidationError
	s.ErrorAs(err, &validationErr)
}

func (s *SessionServiceTestSuite) TestCreateSessionRejectsBadDateFormat() {
	input := s.validCreateInput()
	input.ScheduledAt = "2025-04-05 21:00"

	s.mockSettings.EXPECT().Get(s.ctx, s.testServerID).Return(s.testConfig)

	_, err := s.service.CreateSession(s.ctx, input)

	var validationErr *ValidationError
	s.Require().ErrorAs(err, &validationErr)
	s.Equal("date", validationErr.Field)
}

func (s *SessionServiceTestSuite) TestCreateSessionValidatesFields() {
	tests := []struct {
		name   string
		mutate func(input *CreateSessionInput)
		field  string
	}{
		{"missing server", func(in *CreateSessionInput) { in.ServerID = "" }, "server"},
		{"blank name", func(in *CreateSessionInput) { in.Name = "   " }, "name"},
		{"missing creator", func(in *CreateSessionInput) { in.CreatorID = "" }, "creator"},
		{"missing channel", func(in *CreateSessionInput) { in.ChannelID = "" }, "channel"},
		{"negative duration", func(in *CreateSessionInput) { in.DurationMinutes = -10 }, "duration"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			input := s.validCreateInput()
			tt.mutate(input)

			_, err := s.service.CreateSession(s.ctx, input)

			var validationErr *ValidationError
			s.Require().ErrorAs(err, &validationErr)
			s.Equal(tt.field, validationErr.Field)
		})
	}
}

func (s *SessionServiceTestSuite) TestCreateSessionSurfacesStoreFailure() {
	s.mockSettings.EXPECT().Get(s.ctx, s.testServerID).Return(s.testConfig)
	s.mockTiming.EXPECT().MinutesUntil(s.testSchedule, s.testTimezone).Return(30.0)
	s.mockTiming.EXPECT().LocalNow(s.testTimezone).Return(s.testLocalNow)
	s.mockRepo.EXPECT().GetSession(s.ctx, gomock.Any()).Return(nil, sessionRepo.ErrSessionNotFound)
	s.mockRepo.EXPECT().SaveSession(s.ctx, gomock.Any()).Return(errors.New("connection reset"))

	_, err := s.service.CreateSession(s.ctx, s.validCreateInput())
	s.Error(err)
}

func (s *SessionServiceTestSuite) TestEditSessionRequiresCreator() {
	s.expectGet(s.stored(nil))

	duration := 60
	_, err := s.service.EditSession(s.ctx, &EditSessionInput{
		SessionID:       "111_raid",
		RequesterID:     "someone-else",
		DurationMinutes: &duration,
	})
	s.ErrorIs(err, ErrNotCreator)
}

func (s *SessionServiceTestSuite) TestEditSessionNotFound() {
	s.mockRepo.EXPECT().
		GetSession(s.ctx, gomock.Any()).
		Return(nil, sessionRepo.ErrSessionNotFound)

	_, err := s.service.EditSession(s.ctx, &EditSessionInput{SessionID: "111_nothing", RequesterID: s.testCreatorID})
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *SessionServiceTestSuite) TestEditScheduleResetsNotification() {
	s.expectGet(s.stored(func(session *models.Session) {
		session.Notified = true
		session.MessageRef = models.StringRef("message-1")
		session.Participants.Ready = []string{s.testMemberID}
	}))

	newSchedule := time.Date(2025, 4, 6, 18, 0, 0, 0, time.UTC)
	s.mockSettings.EXPECT().Get(s.ctx, s.testServerID).Return(s.testConfig)
	s.mockTiming.EXPECT().MinutesUntil(newSchedule, s.testTimezone).Return(1290.0)
	s.mockRepo.EXPECT().
		SaveSession(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *sessionRepo.SaveSessionInput) error {
			s.True(input.Session.ScheduledAt.Equal(newSchedule))
			s.False(input.Session.Notified)
			s.False(input.Session.EndNotified)
			s.Nil(input.Session.MessageRef)
			s.Equal([]string{s.testMemberID}, input.Session.Participants.Ready)
			return nil
		})
	s.mockRefresher.EXPECT().Withdraw(s.ctx, "555", "message-1").Return(nil)

	value := "06-04-2025 18:00"
	output, err := s.service.EditSession(s.ctx, &EditSessionInput{
		SessionID:   "111_raid",
		RequesterID: s.testCreatorID,
		ScheduledAt: &value,
	})
	s.Require().NoError(err)
	s.True(output.Rescheduled)
}

func (s *SessionServiceTestSuite) TestEditDurationRefreshesLiveReminder() {
	s.expectGet(s.stored(func(session *models.Session) {
		session.Notified = true
		session.MessageRef = models.StringRef("message-1")
	}))
	s.mockRepo.EXPECT().SaveSession(s.ctx, gomock.Any()).Return(nil)
	s.mockRefresher.EXPECT().Refresh(s.ctx, "111_raid").Return(nil)

	duration := 90
	output, err := s.service.EditSession(s.ctx, &EditSessionInput{
		SessionID:       "111_raid",
		RequesterID:     s.testCreatorID,
		DurationMinutes: &duration,
	})
	s.Require().NoError(err)
	s.False(output.Rescheduled)
	s.Equal(90, output.Session.DurationMinutes)
	s.True(output.Session.Notified)
}

func (s *SessionServiceTestSuite) TestEditChannelResetsMessage() {
	s.expectGet(s.stored(func(session *models.Session) {
		session.Notified = true
		session.MessageRef = models.StringRef("message-1")
	}))
	s.mockRepo.EXPECT().SaveSession(s.ctx, gomock.Any()).Return(nil)
	s.mockRefresher.EXPECT().Withdraw(s.ctx, "555", "message-1").Return(nil)

	channel := "<#999>"
	output, err := s.service.EditSession(s.ctx, &EditSessionInput{
		SessionID:   "111_raid",
		RequesterID: s.testCreatorID,
		ChannelID:   &channel,
	})
	s.Require().NoError(err)
	s.True(output.Rescheduled)
	s.Equal("999", output.Session.ChannelID)
	s.Nil(output.Session.MessageRef)
}

func (s *SessionServiceTestSuite) TestEditScheduleWithoutReminderWithdrawsNothing() {
	s.expectGet(s.stored(nil))

	newSchedule := time.Date(2025, 4, 6, 18, 0, 0, 0, time.UTC)
	s.mockSettings.EXPECT().Get(s.ctx, s.testServerID).Return(s.testConfig)
	s.mockTiming.EXPECT().MinutesUntil(newSchedule, s.testTimezone).Return(1290.0)
	s.mockRepo.EXPECT().SaveSession(s.ctx, gomock.Any()).Return(nil)

	value := "06-04-2025 18:00"
	output, err := s.service.EditSession(s.ctx, &EditSessionInput{
		SessionID:   "111_raid",
		RequesterID: s.testCreatorID,
		ScheduledAt: &value,
	})
	s.Require().NoError(err)
	s.True(output.Rescheduled)
}

func (s *SessionServiceTestSuite) TestEditWithdrawFailureDoesNotFailEdit() {
	s.expectGet(s.stored(func(session *models.Session) {
		session.Notified = true
		session.MessageRef = models.StringRef("message-1")
	}))
	s.mockRepo.EXPECT().SaveSession(s.ctx, gomock.Any()).Return(nil)
	s.mockRefresher.EXPECT().
		Withdraw(s.ctx, "555", "message-1").
		Return(errors.New("missing permissions"))

	channel := "<#999>"
	output, err := s.service.EditSession(s.ctx, &EditSessionInput{
		SessionID:   "111_raid",
		RequesterID: s.testCreatorID,
		ChannelID:   &channel,
	})
	s.Require().NoError(err)
	s.True(output.Rescheduled)
	s.Nil(output.Session.MessageRef)
}

func (s *SessionServiceTestSuite) TestEditRejectsNonPositiveDuration() {
	s.expectGet(s.stored(nil))

	duration := 0
	_, err := s.service.EditSession(s.ctx, &EditSessionInput{
		SessionID:       "111_raid",
		RequesterID:     s.testCreatorID,
		DurationMinutes: &duration,
	})

	var validationErr *ValidationError
	s.ErrorAs(err, &validationErr)
}

func (s *SessionServiceTestSuite) TestDeleteSession() {
	s.expectGet(s.stored(nil))
	s.mockRepo.EXPECT().
		DeleteSession(s.ctx, &sessionRepo.DeleteSessionInput{SessionID: "111_raid"}).
		Return(&sessionRepo.DeleteSessionOutput{Deleted: true}, nil)

	output, err := s.service.DeleteSession(s.ctx, &DeleteSessionInput{
		SessionID:   "111_raid",
		RequesterID: s.testCreatorID,
	})
	s.Require().NoError(err)
	s.True(output.Deleted)
}

func (s *SessionServiceTestSuite) TestDeleteSessionRequiresCreator() {
	s.expectGet(s.stored(nil))

	_, err := s.service.DeleteSession(s.ctx, &DeleteSessionInput{
		SessionID:   "111_raid",
		RequesterID: s.testMemberID,
	})
	s.ErrorIs(err, ErrNotCreator)
}

func (s *SessionServiceTestSuite) TestListSessionsOrderedByStart() {
	later := s.stored(func(session *models.Session) {
		session.ID = "111_alpha"
		session.Name = "Alpha"
		session.ScheduledAt = s.testSchedule.Add(24 * time.Hour)
	})
	sooner := s.stored(nil)

	s.mockRepo.EXPECT().
		ListSessionsByServer(s.ctx, &sessionRepo.ListSessionsByServerInput{ServerID: s.testServerID}).
		Return(&sessionRepo.ListSessionsOutput{Sessions: []*models.Session{later, sooner}}, nil)
	s.mockSettings.EXPECT().Get(s.ctx, s.testServerID).Return(s.testConfig)
	s.mockTiming.EXPECT().MinutesUntil(later.ScheduledAt, s.testTimezone).Return(1470.0)
	s.mockTiming.EXPECT().MinutesUntil(sooner.ScheduledAt, s.testTimezone).Return(10.0)

	output, err := s.service.ListSessions(s.ctx, &ListSessionsInput{ServerID: s.testServerID})
	s.Require().NoError(err)
	s.Require().Len(output.Sessions, 2)
	s.Equal("111_raid", output.Sessions[0].Session.ID)
	s.Equal(render.StateImminent, output.Sessions[0].State)
	s.Equal("111_alpha", output.Sessions[1].Session.ID)
	s.Equal(render.StateScheduled, output.Sessions[1].State)
}

func (s *SessionServiceTestSuite) TestGetSession() {
	s.expectGet(s.stored(nil))
	s.mockSettings.EXPECT().Get(s.ctx, s.testServerID).Return(s.testConfig)
	s.mockTiming.EXPECT().MinutesUntil(s.testSchedule, s.testTimezone).Return(-30.0)

	output, err := s.service.GetSession(s.ctx, &GetSessionInput{SessionID: "111_raid"})
	s.Require().NoError(err)
	s.Equal(render.StateInProgress, output.Session.State)
}

func (s *SessionServiceTestSuite) TestPurgeSessionsUsesRetention() {
	s.mockSettings.EXPECT().Get(s.ctx, s.testServerID).Return(s.testConfig)
	s.mockTiming.EXPECT().LocalNow(s.testTimezone).Return(s.testLocalNow)
	s.mockRepo.EXPECT().
		PurgeExpired(s.ctx, &sessionRepo.PurgeExpiredInput{
			Cutoff:   s.testLocalNow.Add(-24 * time.Hour),
			ServerID: s.testServerID,
		}).
		Return(&sessionRepo.PurgeExpiredOutput{Removed: 2}, nil)

	output, err := s.service.PurgeSessions(s.ctx, &PurgeSessionsInput{ServerID: s.testServerID})
	s.Require().NoError(err)
	s.Equal(2, output.Removed)
}

func (s *SessionServiceTestSuite) TestSetAvailabilityReady() {
	s.expectGet(s.stored(nil))
	s.mockRepo.EXPECT().
		SaveSession(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *sessionRepo.SaveSessionInput) error {
			s.Equal([]string{s.testMemberID}, input.Session.Participants.Ready)
			s.Empty(input.Session.Participants.NotReady)
			return nil
		})

	output, err := s.service.SetAvailability(s.ctx, &SetAvailabilityInput{
		SessionID: "111_raid",
		MemberID:  s.testMemberID,
		Status:    models.AvailabilityReady,
	})
	s.Require().NoError(err)
	s.True(output.Updated)
}

func (s *SessionServiceTestSuite) TestSetAvailabilityIsIdempotent() {
	s.expectGet(s.stored(func(session *models.Session) {
		session.Participants.Ready = []string{s.testMemberID}
	}))

	output, err := s.service.SetAvailability(s.ctx, &SetAvailabilityInput{
		SessionID: "111_raid",
		MemberID:  s.testMemberID,
		Status:    models.AvailabilityReady,
	})
	s.Require().NoError(err)
	s.False(output.Updated)
	s.Equal([]string{s.testMemberID}, output.Session.Participants.Ready)
}

func (s *SessionServiceTestSuite) TestSetAvailabilityMovesBetweenSetsAndRefreshes() {
	s.expectGet(s.stored(func(session *models.Session) {
		session.Notified = true
		session.MessageRef = models.StringRef("message-1")
		session.Participants.Ready = []string{"other", s.testMemberID}
	}))
	s.mockRepo.EXPECT().SaveSession(s.ctx, gomock.Any()).Return(nil)
	s.mockRefresher.EXPECT().Refresh(s.ctx, "111_raid").Return(nil)

	output, err := s.service.SetAvailability(s.ctx, &SetAvailabilityInput{
		SessionID: "111_raid",
		MemberID:  s.testMemberID,
		Status:    models.AvailabilityNotReady,
	})
	s.Require().NoError(err)
	s.True(output.Updated)
	s.Equal([]string{"other"}, output.Session.Participants.Ready)
	s.Equal([]string{s.testMemberID}, output.Session.Participants.NotReady)
}

func (s *SessionServiceTestSuite) TestSetAvailabilityRepairsOverlap() {
	s.expectGet(s.stored(func(session *models.Session) {
		session.Participants.Ready = []string{s.testMemberID}
		session.Participants.NotReady = []string{s.testMemberID}
	}))
	s.mockRepo.EXPECT().SaveSession(s.ctx, gomock.Any()).Return(nil)

	output, err := s.service.SetAvailability(s.ctx, &SetAvailabilityInput{
		SessionID: "111_raid",
		MemberID:  s.testMemberID,
		Status:    models.AvailabilityReady,
	})
	s.Require().NoError(err)
	s.True(output.Updated)
	s.Equal([]string{s.testMemberID}, output.Session.Participants.Ready)
	s.Empty(output.Session.Participants.NotReady)
}

func (s *SessionServiceTestSuite) TestSetAvailabilityRefreshFailureIsNotReturned() {
	s.expectGet(s.stored(func(session *models.Session) {
		session.MessageRef = models.StringRef("message-1")
	}))
	s.mockRepo.EXPECT().SaveSession(s.ctx, gomock.Any()).Return(nil)
	s.mockRefresher.EXPECT().Refresh(s.ctx, "111_raid").Return(errors.New("discord unavailable"))

	output, err := s.service.SetAvailability(s.ctx, &SetAvailabilityInput{
		SessionID: "111_raid",
		MemberID:  s.testMemberID,
		Status:    models.AvailabilityReady,
	})
	s.Require().NoError(err)
	s.True(output.Updated)
}

func (s *SessionServiceTestSuite) TestSetAvailabilityRejectsUnknownStatus() {
	_, err := s.service.SetAvailability(s.ctx, &SetAvailabilityInput{
		SessionID: "111_raid",
		MemberID:  s.testMemberID,
		Status:    "maybe",
	})

	var validationErr *ValidationError
	s.ErrorAs(err, &validationErr)
}

func (s *SessionServiceTestSuite) TestSetAvailabilityUnknownSession() {
	s.mockRepo.EXPECT().GetSession(s.ctx, gomock.Any()).Return(nil, sessionRepo.ErrSessionNotFound)

	_, err := s.service.SetAvailability(s.ctx, &SetAvailabilityInput{
		SessionID: "111_nothing",
		MemberID:  s.testMemberID,
		Status:    models.AvailabilityReady,
	})
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *SessionServiceTestSuite) TestClearAvailability() {
	s.expectGet(s.stored(func(session *models.Session) {
		session.Participants.NotReady = []string{s.testMemberID}
	}))
	s.mockRepo.EXPECT().SaveSession(s.ctx, gomock.Any()).Return(nil)

	output, err := s.service.ClearAvailability(s.ctx, &ClearAvailabilityInput{
		SessionID: "111_raid",
		MemberID:  s.testMemberID,
	})
	s.Require().NoError(err)
	s.True(output.Updated)
	s.Empty(output.Session.Participants.NotReady)
}

func (s *SessionServiceTestSuite) TestClearAvailabilityWithoutAnswer() {
	s.expectGet(s.stored(nil))

	output, err := s.service.ClearAvailability(s.ctx, &ClearAvailabilityInput{
		SessionID: "111_raid",
		MemberID:  s.testMemberID,
	})
	s.Require().NoError(err)
	s.False(output.Updated)
}

func (s *SessionServiceTestSuite) TestRequestFollowUp() {
	s.expectGet(s.stored(nil))
	s.mockRefresher.EXPECT().FollowUp(s.ctx, "111_raid").Return(nil)

	err := s.service.RequestFollowUp(s.ctx, &RequestFollowUpInput{
		SessionID:   "111_raid",
		RequesterID: s.testCreatorID,
	})
	s.NoError(err)
}

func (s *SessionServiceTestSuite) TestRequestFollowUpRequiresCreator() {
	s.expectGet(s.stored(nil))

	err := s.service.RequestFollowUp(s.ctx, &RequestFollowUpInput{
		SessionID:   "111_raid",
		RequesterID: s.testMemberID,
	})
	s.ErrorIs(err, ErrNotCreator)
}

func (s *SessionServiceTestSuite) TestRequestFollowUpWithoutRefresher() {
	svc, err := New(&Config{
		SessionRepo: s.mockRepo,
		Settings:    s.mockSettings,
		Timing:      s.mockTiming,
	})
	s.Require().NoError(err)

	s.expectGet(s.stored(nil))

	err = svc.RequestFollowUp(s.ctx, &RequestFollowUpInput{
		SessionID:   "111_raid",
		RequesterID: s.testCreatorID,
	})
	s.ErrorIs(err, ErrFollowUpUnavailable)
}
