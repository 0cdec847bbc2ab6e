package session

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/rs/zerolog/log"

	"github.com/KirkDiggler/huddle/internal/models"
	sessionRepo "github.com/KirkDiggler/huddle/internal/repositories/session"
	"github.com/KirkDiggler/huddle/internal/services/render"
	"github.com/KirkDiggler/huddle/internal/services/settings"
	"github.com/KirkDiggler/huddle/internal/services/timing"
)

// DefaultRetention is used when the config leaves Retention unset
const DefaultRetention = 24 * time.Hour

// service implements the Service interface
type service struct {
	sessionRepo sessionRepo.Repository
	settings    settings.Service
	timing      timing.Service
	refresher   Refresher
	retention   time.Duration
}

// New creates a new session service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.SessionRepo == nil {
		return nil, ErrNilSessionRepo
	}

	if cfg.Settings == nil {
		return nil, ErrNilSettings
	}

	if cfg.Timing == nil {
		return nil, ErrNilTiming
	}

	retention := cfg.Retention
	if retention <= 0 {
		retention = DefaultRetention
	}

	return &service{
		sessionRepo: cfg.SessionRepo,
		settings:    cfg.Settings,
		timing:      cfg.Timing,
		refresher:   cfg.Refresher,
		retention:   retention,
	}, nil
}

// CreateSession implements Service
func (s *service) CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error) {
	if input == nil {
		return nil, &ValidationError{Field: "request", Reason: "cannot be empty"}
	}

	if input.ServerID == "" {
		return nil, &ValidationError{Field: "server", Reason: "sessions can only be created inside a server"}
	}

	if models.NormalizeName(input.Name) == "" {
		return nil, &ValidationError{Field: "name", Reason: "cannot be empty"}
	}

	if input.CreatorID == "" {
		return nil, &ValidationError{Field: "creator", Reason: "cannot be empty"}
	}

	channelID := extractID(input.ChannelID)
	if channelID == "" {
		return nil, &ValidationError{Field: "channel", Reason: "cannot be empty"}
	}

	duration := input.DurationMinutes
	if duration == 0 {
		duration = models.DefaultDurationMinutes
	}
	if duration < 0 {
		return nil, &ValidationError{Field: "duration", Reason: "must be a positive number of minutes"}
	}

	cfg := s.settings.Get(ctx, input.ServerID)

	scheduledAt, minutes, err := s.parseFutureSchedule(input.ScheduledAt, cfg.Timezone)
	if err != nil {
		return nil, err
	}

	session := &models.Session{
		ServerID:        input.ServerID,
		Name:            strings.TrimSpace(input.Name),
		ScheduledAt:     scheduledAt,
		DurationMinutes: duration,
		GroupID:         extractID(input.GroupID),
		ChannelID:       channelID,
		CreatorID:       input.CreatorID,
		CreatedAt:       s.timing.LocalNow(cfg.Timezone),
		Participants: models.Participants{
			Ready:    []string{},
			NotReady: []string{},
		},
	}

	replaced := false
	_, err = s.sessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{
		SessionID: models.SessionID(session.ServerID, session.Name),
	})
	switch {
	case err == nil:
		replaced = true
	case !errors.Is(err, sessionRepo.ErrSessionNotFound):
		log.Warn().Err(err).Str("server_id", session.ServerID).Msg("failed to check for existing session")
	}

	if err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{Session: session}); err != nil {
		log.Error().Err(err).Str("server_id", session.ServerID).Str("name", session.Name).Msg("failed to save session")
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	log.Info().
		Str("session_id", session.ID).
		Str("server_id", session.ServerID).
		Time("scheduled_at", session.ScheduledAt).
		Int("duration_minutes", session.DurationMinutes).
		Bool("replaced", replaced).
		Msg("session created")

	return &CreateSessionOutput{
		Session:          session,
		Replaced:         replaced,
		MinutesRemaining: minutes,
	}, nil
}

// EditSession implements Service
func (s *service) EditSession(ctx context.Context, input *EditSessionInput) (*EditSessionOutput, error) {
	if input == nil {
		return nil, &ValidationError{Field: "request", Reason: "cannot be empty"}
	}

	session, err := s.loadOwned(ctx, input.SessionID, input.RequesterID)
	if err != nil {
		return nil, err
	}

	// The live reminder as it was before the edit
	staleChannel, staleRef := session.ChannelID, session.MessageRef

	rescheduled := false

	if input.ScheduledAt != nil {
		cfg := s.settings.Get(ctx, session.ServerID)
		scheduledAt, _, err := s.parseFutureSchedule(*input.ScheduledAt, cfg.Timezone)
		if err != nil {
			return nil, err
		}
		if !scheduledAt.Equal(session.ScheduledAt) {
			session.ScheduledAt = scheduledAt
			rescheduled = true
		}
	}

	if input.DurationMinutes != nil {
		if *input.DurationMinutes <= 0 {
			return nil, &ValidationError{Field: "duration", Reason: "must be a positive number of minutes"}
		}
		session.DurationMinutes = *input.DurationMinutes
	}

	if input.GroupID != nil {
		session.GroupID = extractID(*input.GroupID)
	}

	if input.ChannelID != nil {
		channelID := extractID(*input.ChannelID)
		if channelID == "" {
			return nil, &ValidationError{Field: "channel", Reason: "cannot be empty"}
		}
		if channelID != session.ChannelID {
			session.ChannelID = channelID
			// The old message lives in the previous channel
			rescheduled = true
		}
	}

	if rescheduled {
		session.Notified = false
		session.EndNotified = false
		session.MessageRef = nil
	}

	if err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{Session: session}); err != nil {
		log.Error().Err(err).Str("session_id", session.ID).Str("server_id", session.ServerID).Msg("failed to save edited session")
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	log.Info().
		Str("session_id", session.ID).
		Str("server_id", session.ServerID).
		Bool("rescheduled", rescheduled).
		Msg("session edited")

	if rescheduled {
		s.withdraw(ctx, session, staleChannel, staleRef)
	} else {
		s.refresh(ctx, session)
	}

	return &EditSessionOutput{
		Session:     session,
		Rescheduled: rescheduled,
	}, nil
}

// DeleteSession implements Service
func (s *service) DeleteSession(ctx context.Context, input *DeleteSessionInput) (*DeleteSessionOutput, error) {
	if input == nil {
		return nil, &ValidationError{Field: "request", Reason: "cannot be empty"}
	}

	session, err := s.loadOwned(ctx, input.SessionID, input.RequesterID)
	if err != nil {
		return nil, err
	}

	output, err := s.sessionRepo.DeleteSession(ctx, &sessionRepo.DeleteSessionInput{SessionID: session.ID})
	if err != nil {
		log.Error().Err(err).Str("session_id", session.ID).Str("server_id", session.ServerID).Msg("failed to delete session")
		return nil, fmt.Errorf("failed to delete session: %w", err)
	}

	log.Info().
		Str("session_id", session.ID).
		Str("server_id", session.ServerID).
		Bool("deleted", output.Deleted).
		Msg("session deleted")

	return &DeleteSessionOutput{Deleted: output.Deleted}, nil
}

// GetSession implements Service
func (s *service) GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error) {
	if input == nil {
		return nil, &ValidationError{Field: "request", Reason: "cannot be empty"}
	}

	session, err := s.load(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	cfg := s.settings.Get(ctx, session.ServerID)

	return &GetSessionOutput{Session: s.status(session, cfg.Timezone)}, nil
}

// ListSessions implements Service
func (s *service) ListSessions(ctx context.Context, input *ListSessionsInput) (*ListSessionsOutput, error) {
	if input == nil || input.ServerID == "" {
		return nil, &ValidationError{Field: "server", Reason: "cannot be empty"}
	}

	output, err := s.sessionRepo.ListSessionsByServer(ctx, &sessionRepo.ListSessionsByServerInput{
		ServerID: input.ServerID,
	})
	if err != nil {
		log.Error().Err(err).Str("server_id", input.ServerID).Msg("failed to list sessions")
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	cfg := s.settings.Get(ctx, input.ServerID)

	statuses := make([]*SessionStatus, 0, len(output.Sessions))
	for _, session := range output.Sessions {
		statuses = append(statuses, s.status(session, cfg.Timezone))
	}

	sort.SliceStable(statuses, func(i, j int) bool {
		return statuses[i].Session.ScheduledAt.Before(statuses[j].Session.ScheduledAt)
	})

	return &ListSessionsOutput{Sessions: statuses}, nil
}

// PurgeSessions implements Service
func (s *service) PurgeSessions(ctx context.Context, input *PurgeSessionsInput) (*PurgeSessionsOutput, error) {
	if input == nil || input.ServerID == "" {
		return nil, &ValidationError{Field: "server", Reason: "cannot be empty"}
	}

	cfg := s.settings.Get(ctx, input.ServerID)
	cutoff := s.timing.LocalNow(cfg.Timezone).Add(-s.retention)

	output, err := s.sessionRepo.PurgeExpired(ctx, &sessionRepo.PurgeExpiredInput{
		Cutoff:   cutoff,
		ServerID: input.ServerID,
	})
	if err != nil {
		log.Error().Err(err).Str("server_id", input.ServerID).Msg("failed to purge sessions")
		return nil, fmt.Errorf("failed to purge sessions: %w", err)
	}

	log.Info().
		Str("server_id", input.ServerID).
		Time("cutoff", cutoff).
		Int("removed", output.Removed).
		Msg("sessions purged")

	return &PurgeSessionsOutput{Removed: output.Removed}, nil
}

// SetAvailability implements Service
func (s *service) SetAvailability(ctx context.Context, input *SetAvailabilityInput) (*SetAvailabilityOutput, error) {
	if input == nil || input.MemberID == "" {
		return nil, &ValidationError{Field: "member", Reason: "cannot be empty"}
	}

	if !input.Status.IsValid() {
		return nil, &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown availability %q", input.Status)}
	}

	session, err := s.load(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	target, opposite := &session.Participants.Ready, &session.Participants.NotReady
	if input.Status == models.AvailabilityNotReady {
		target, opposite = opposite, target
	}

	removed := removeMember(opposite, input.MemberID)
	added := addMember(target, input.MemberID)
	if !removed && !added {
		return &SetAvailabilityOutput{Updated: false, Session: session}, nil
	}

	if err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{Session: session}); err != nil {
		log.Error().Err(err).Str("session_id", session.ID).Str("server_id", session.ServerID).Msg("failed to save availability")
		return nil, fmt.Errorf("failed to save availability: %w", err)
	}

	log.Debug().
		Str("session_id", session.ID).
		Str("server_id", session.ServerID).
		Str("member_id", input.MemberID).
		Str("status", string(input.Status)).
		Msg("availability updated")

	s.refresh(ctx, session)

	return &SetAvailabilityOutput{Updated: true, Session: session}, nil
}

// ClearAvailability implements Service
func (s *service) ClearAvailability(ctx context.Context, input *ClearAvailabilityInput) (*ClearAvailabilityOutput, error) {
	if input == nil || input.MemberID == "" {
		return nil, &ValidationError{Field: "member", Reason: "cannot be empty"}
	}

	session, err := s.load(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	fromReady := removeMember(&session.Participants.Ready, input.MemberID)
	fromNotReady := removeMember(&session.Participants.NotReady, input.MemberID)
	if !fromReady && !fromNotReady {
		return &ClearAvailabilityOutput{Updated: false, Session: session}, nil
	}

	if err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{Session: session}); err != nil {
		log.Error().Err(err).Str("session_id", session.ID).Str("server_id", session.ServerID).Msg("failed to clear availability")
		return nil, fmt.Errorf("failed to save availability: %w", err)
	}

	s.refresh(ctx, session)

	return &ClearAvailabilityOutput{Updated: true, Session: session}, nil
}

// RequestFollowUp implements Service
func (s *service) RequestFollowUp(ctx context.Context, input *RequestFollowUpInput) error {
	if input == nil {
		return &ValidationError{Field: "request", Reason: "cannot be empty"}
	}

	session, err := s.loadOwned(ctx, input.SessionID, input.RequesterID)
	if err != nil {
		return err
	}

	if s.refresher == nil {
		return ErrFollowUpUnavailable
	}

	if err := s.refresher.FollowUp(ctx, session.ID); err != nil {
		log.Error().Err(err).Str("session_id", session.ID).Str("server_id", session.ServerID).Msg("failed to send follow-up")
		return fmt.Errorf("failed to send follow-up: %w", err)
	}

	return nil
}

// load fetches a session and maps the store's not-found error
func (s *service) load(ctx context.Context, sessionID string) (*models.Session, error) {
	if sessionID == "" {
		return nil, ErrSessionNotFound
	}

	session, err := s.sessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{SessionID: sessionID})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		log.Error().Err(err).Str("session_id", sessionID).Msg("failed to load session")
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	return session, nil
}

// loadOwned fetches a session the requester created
func (s *service) loadOwned(ctx context.Context, sessionID, requesterID string) (*models.Session, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if requesterID == "" || session.CreatorID != requesterID {
		log.Warn().
			Str("session_id", session.ID).
			Str("server_id", session.ServerID).
			Str("requester_id", requesterID).
			Msg("rejected request from non-creator")
		return nil, ErrNotCreator
	}

	return session, nil
}

// parseFutureSchedule parses a schedule and requires it to be ahead of now
func (s *service) parseFutureSchedule(value, timezone string) (time.Time, float64, error) {
	scheduledAt, err := timing.ParseSchedule(value)
	if err != nil {
		return time.Time{}, 0, &ValidationError{Field: "date", Reason: err.Error()}
	}

	minutes := s.timing.MinutesUntil(scheduledAt, timezone)
	if minutes <= 0 {
		return time.Time{}, 0, &ValidationError{Field: "date", Reason: "must be in the future"}
	}

	return scheduledAt, minutes, nil
}

func (s *service) status(session *models.Session, timezone string) *SessionStatus {
	minutes := s.timing.MinutesUntil(session.ScheduledAt, timezone)
	return &SessionStatus{
		Session:          session,
		MinutesRemaining: minutes,
		State:            render.Classify(minutes, session.Duration()),
	}
}

// refresh asks for the live reminder to be re-rendered. Failures are logged.
func (s *service) refresh(ctx context.Context, session *models.Session) {
	if s.refresher == nil || !session.HasMessage() {
		return
	}

	if err := s.refresher.Refresh(ctx, session.ID); err != nil {
		log.Warn().Err(err).Str("session_id", session.ID).Str("server_id", session.ServerID).Msg("failed to refresh reminder")
	}
}

// withdraw removes the reminder of a rescheduled session. Failures are logged.
func (s *service) withdraw(ctx context.Context, session *models.Session, channelID string, messageRef *string) {
	if s.refresher == nil || messageRef == nil || *messageRef == "" {
		return
	}

	if err := s.refresher.Withdraw(ctx, channelID, *messageRef); err != nil {
		log.Warn().Err(err).Str("session_id", session.ID).Str("server_id", session.ServerID).Msg("failed to withdraw stale reminder")
	}
}

// extractID accepts a raw ID or a mention such as <@&123> or <#456>
func extractID(value string) string {
	value = strings.TrimSpace(value)
	if !strings.HasPrefix(value, "<") {
		return value
	}

	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, value)
}

func addMember(members *[]string, memberID string) bool {
	for _, m := range *members {
		if m == memberID {
			return false
		}
	}
	*members = append(*members, memberID)
	return true
}

func removeMember(members *[]string, memberID string) bool {
	kept := (*members)[:0]
	removed := false
	for _, m := range *members {
		if m == memberID {
			removed = true
			continue
		}
		kept = append(kept, m)
	}
	*members = kept
	return removed
}
