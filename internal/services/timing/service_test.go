package timing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/huddle/internal/common/clock/mocks"
)

type TimingServiceTestSuite struct {
	suite.Suite
	mockCtrl  *gomock.Controller
	mockClock *mocks.MockClock
	service   *service
	now       time.Time
	madrid    *time.Location
}

func (s *TimingServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockClock = mocks.NewMockClock(s.mockCtrl)

	var err error
	s.madrid, err = time.LoadLocation("Europe/Madrid")
	s.Require().NoError(err)

	// 18:00 in Madrid (CEST, UTC+2)
	s.now = time.Date(2025, 6, 10, 16, 0, 0, 0, time.UTC)
	s.mockClock.EXPECT().Now().DoAndReturn(func() time.Time { return s.now }).AnyTimes()

	svc, err := New(&Config{
		Clock:           s.mockClock,
		DefaultTimezone: "Europe/Madrid",
	})
	s.Require().NoError(err)
	s.service = svc
}

func (s *TimingServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestTimingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TimingServiceTestSuite))
}

func (s *TimingServiceTestSuite) TestNewRejectsBadConfig() {
	_, err := New(nil)
	s.Error(err)

	_, err = New(&Config{DefaultTimezone: "Europe/Madrid"})
	s.Error(err)

	_, err = New(&Config{Clock: s.mockClock, DefaultTimezone: "Mars/Olympus"})
	s.Error(err)
}

func (s *TimingServiceTestSuite) TestMinutesUntilFuture() {
	scheduled := time.Date(2025, 6, 10, 18, 30, 0, 0, time.UTC)

	s.InDelta(30.0, s.service.MinutesUntil(scheduled, "Europe/Madrid"), 0.0001)
}

func (s *TimingServiceTestSuite) TestMinutesUntilPast() {
	scheduled := time.Date(2025, 6, 10, 17, 0, 0, 0, time.UTC)

	s.InDelta(-60.0, s.service.MinutesUntil(scheduled, "Europe/Madrid"), 0.0001)
}

func (s *TimingServiceTestSuite) TestMinutesUntilOtherZone() {
	// 12:00 in New York (EDT, UTC-4) is 16:00 UTC
	scheduled := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	s.InDelta(0.0, s.service.MinutesUntil(scheduled, "America/New_York"), 0.0001)
}

func (s *TimingServiceTestSuite) TestUnknownTimezoneFallsBackToDefault() {
	scheduled := time.Date(2025, 6, 10, 18, 30, 0, 0, time.UTC)

	s.InDelta(30.0, s.service.MinutesUntil(scheduled, "Not/AZone"), 0.0001)
	s.Equal(s.madrid.String(), s.service.Location("Not/AZone").String())

	// Second lookup hits the cache and still falls back
	s.InDelta(30.0, s.service.MinutesUntil(scheduled, "Not/AZone"), 0.0001)
}

func (s *TimingServiceTestSuite) TestEmptyTimezoneUsesDefault() {
	s.Equal("Europe/Madrid", s.service.Location("").String())
}

func (s *TimingServiceTestSuite) TestSignFlipsAtScheduledInstant() {
	scheduled := time.Date(2025, 6, 10, 18, 0, 0, 0, time.UTC)

	s.now = time.Date(2025, 6, 10, 15, 59, 59, 0, time.UTC)
	s.Greater(s.service.MinutesUntil(scheduled, "Europe/Madrid"), 0.0)

	s.now = time.Date(2025, 6, 10, 16, 0, 0, 0, time.UTC)
	s.Equal(0.0, s.service.MinutesUntil(scheduled, "Europe/Madrid"))

	s.now = time.Date(2025, 6, 10, 16, 0, 1, 0, time.UTC)
	s.Less(s.service.MinutesUntil(scheduled, "Europe/Madrid"), 0.0)
}

func (s *TimingServiceTestSuite) TestMinutesUntilDecreasesOverTime() {
	scheduled := time.Date(2025, 6, 10, 20, 0, 0, 0, time.UTC)

	previous := s.service.MinutesUntil(scheduled, "Europe/Madrid")
	for i := 0; i < 5; i++ {
		s.now = s.now.Add(7 * time.Minute)
		current := s.service.MinutesUntil(scheduled, "Europe/Madrid")
		s.Less(current, previous)
		previous = current
	}
}

func (s *TimingServiceTestSuite) TestLocalNow() {
	local := s.service.LocalNow("Europe/Madrid")

	s.Equal(time.Date(2025, 6, 10, 18, 0, 0, 0, time.UTC), local)
}

func TestParseSchedule(t *testing.T) {
	want := time.Date(2025, 12, 24, 21, 15, 0, 0, time.UTC)

	for _, input := range []string{"24-12-2025 21:15", "24/12/2025 21:15", "  24-12-2025 21:15 "} {
		got, err := ParseSchedule(input)
		if err != nil {
			t.Fatalf("ParseSchedule(%q) returned error: %v", input, err)
		}
		if !got.Equal(want) {
			t.Errorf("ParseSchedule(%q) = %v, want %v", input, got, want)
		}
	}

	for _, input := range []string{"", "2025-12-24 21:15", "24-12-2025", "32-12-2025 21:15"} {
		if _, err := ParseSchedule(input); err == nil {
			t.Errorf("ParseSchedule(%q) expected error", input)
		}
	}
}

func TestValidTimezone(t *testing.T) {
	if !ValidTimezone("Asia/Tokyo") {
		t.Error("Asia/Tokyo should be valid")
	}
	if ValidTimezone("Nowhere/Special") {
		t.Error("Nowhere/Special should be invalid")
	}
	if ValidTimezone("") {
		t.Error("empty timezone should be invalid")
	}
}
