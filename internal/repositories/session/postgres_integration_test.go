package session

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/huddle/internal/database"
	"github.com/KirkDiggler/huddle/internal/models"
)

// testDatabaseURLEnv points the Postgres suite at a disposable database
const testDatabaseURLEnv = "HUDDLE_TEST_DATABASE_URL"

type PostgresRepositoryTestSuite struct {
	suite.Suite
	db      *database.DB
	repo    *postgresRepository
	ctx     context.Context
	testNow time.Time
}

func (s *PostgresRepositoryTestSuite) SetupSuite() {
	databaseURL := os.Getenv(testDatabaseURLEnv)
	if databaseURL == "" {
		s.T().Skipf("%s not set", testDatabaseURLEnv)
	}

	s.Require().NoError(database.RunMigrations(databaseURL))

	db, err := database.Connect(databaseURL)
	s.Require().NoError(err)
	s.db = db

	repo, err := NewPostgres(&PostgresConfig{DB: db.DB})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *PostgresRepositoryTestSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
}

func (s *PostgresRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.testNow = time.Date(2025, 4, 5, 20, 30, 0, 0, time.UTC)

	_, err := s.db.ExecContext(s.ctx, `TRUNCATE sessions`)
	s.Require().NoError(err)
}

func TestPostgresRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(PostgresRepositoryTestSuite))
}

func (s *PostgresRepositoryTestSuite) save(serverID, name string, scheduledAt time.Time) *models.Session {
	session := &models.Session{
		ServerID:        serverID,
		Name:            name,
		ScheduledAt:     scheduledAt,
		DurationMinutes: 120,
		GroupID:         "role-1",
		ChannelID:       "channel-1",
		CreatorID:       "creator-1",
		CreatedAt:       s.testNow,
		Participants: models.Participants{
			Ready:    []string{},
			NotReady: []string{},
		},
	}
	s.Require().NoError(s.repo.SaveSession(s.ctx, &SaveSessionInput{Session: session}))
	return session
}

func (s *PostgresRepositoryTestSuite) TestSaveAndGetSession() {
	session := s.save("guild-1", "Raid Night", s.testNow.Add(time.Hour))
	s.Equal("guild-1_raid_night", session.ID)

	session.Notified = true
	session.MessageRef = models.StringRef("message-1")
	session.Participants.Ready = []string{"member-1"}
	s.Require().NoError(s.repo.SaveSession(s.ctx, &SaveSessionInput{Session: session}))

	stored, err := s.repo.GetSession(s.ctx, &GetSessionInput{SessionID: session.ID})
	s.Require().NoError(err)
	s.True(stored.ScheduledAt.Equal(session.ScheduledAt))
	s.True(stored.Notified)
	s.Require().NotNil(stored.MessageRef)
	s.Equal("message-1", *stored.MessageRef)
	s.Equal([]string{"member-1"}, stored.Participants.Ready)
	s.Empty(stored.Participants.NotReady)
}

func (s *PostgresRepositoryTestSuite) TestGetMissingSession() {
	_, err := s.repo.GetSession(s.ctx, &GetSessionInput{SessionID: "guild-1_nothing"})
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *PostgresRepositoryTestSuite) TestListAndDelete() {
	s.save("guild-1", "Raid", s.testNow)
	s.save("guild-2", "Quiz", s.testNow)

	all, err := s.repo.ListSessions(s.ctx, &ListSessionsInput{})
	s.Require().NoError(err)
	s.Len(all.Sessions, 2)

	byServer, err := s.repo.ListSessionsByServer(s.ctx, &ListSessionsByServerInput{ServerID: "guild-2"})
	s.Require().NoError(err)
	s.Require().Len(byServer.Sessions, 1)
	s.Equal("guild-2_quiz", byServer.Sessions[0].ID)

	deleted, err := s.repo.DeleteSession(s.ctx, &DeleteSessionInput{SessionID: "guild-2_quiz"})
	s.Require().NoError(err)
	s.True(deleted.Deleted)

	deleted, err = s.repo.DeleteSession(s.ctx, &DeleteSessionInput{SessionID: "guild-2_quiz"})
	s.Require().NoError(err)
	s.False(deleted.Deleted)
}

func (s *PostgresRepositoryTestSuite) TestPurgeExpiredKeepsSessionAtCutoff() {
	cutoff := s.testNow.Add(-24 * time.Hour)
	edge := s.save("guild-1", "Edge", cutoff)
	recent := s.save("guild-1", "Recent", s.testNow.Add(-23*time.Hour))
	old := s.save("guild-1", "Old", cutoff.Add(-time.Minute))

	output, err := s.repo.PurgeExpired(s.ctx, &PurgeExpiredInput{Cutoff: cutoff})
	s.Require().NoError(err)
	s.Equal(1, output.Removed)

	_, err = s.repo.GetSession(s.ctx, &GetSessionInput{SessionID: old.ID})
	s.ErrorIs(err, ErrSessionNotFound)
	for _, id := range []string{edge.ID, recent.ID} {
		_, err = s.repo.GetSession(s.ctx, &GetSessionInput{SessionID: id})
		s.NoError(err)
	}
}

func (s *PostgresRepositoryTestSuite) TestPurgeExpiredScopedToServer() {
	cutoff := s.testNow.Add(-24 * time.Hour)
	s.save("guild-1", "Old", cutoff.Add(-time.Hour))
	other := s.save("guild-2", "Old", cutoff.Add(-time.Hour))

	output, err := s.repo.PurgeExpired(s.ctx, &PurgeExpiredInput{Cutoff: cutoff, ServerID: "guild-1"})
	s.Require().NoError(err)
	s.Equal(1, output.Removed)

	_, err = s.repo.GetSession(s.ctx, &GetSessionInput{SessionID: other.ID})
	s.NoError(err)
}
