// Package scheduler drives the reminder lifecycle of every stored session.
//
// Each tick purges sessions past retention, reconciles live reminders after
// start-up, and then moves every session through its states:
//
//	PENDING  -> NOTIFIED  reminder posted when the start is within the notify lead
//	NOTIFIED -> NOTIFIED  reminder re-rendered in place on every tick
//	NOTIFIED -> ENDED     follow-up sent to the creator once the session is over
//
// The notified and end_notified flags are only written after the message they
// describe was delivered, so a failed send is retried on the next tick.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/KirkDiggler/huddle/internal/common/uuid"
	"github.com/KirkDiggler/huddle/internal/models"
	sessionRepo "github.com/KirkDiggler/huddle/internal/repositories/session"
	"github.com/KirkDiggler/huddle/internal/services/messaging"
	"github.com/KirkDiggler/huddle/internal/services/render"
	"github.com/KirkDiggler/huddle/internal/services/settings"
	"github.com/KirkDiggler/huddle/internal/services/timing"
)

// Defaults applied to zero config values
const (
	DefaultInterval       = time.Minute
	DefaultNotifyLead     = 60 * time.Minute
	DefaultEndGrace       = 30 * time.Minute
	DefaultRetention      = 24 * time.Hour
	DefaultSessionTimeout = 30 * time.Second
)

// Config holds configuration for the scheduler
type Config struct {
	SessionRepo sessionRepo.Repository
	Settings    settings.Service
	Timing      timing.Service
	Sink        messaging.Sink
	UUID        uuid.UUID

	// Metrics is optional, a private registry is used when nil
	Metrics *Metrics

	// Interval between ticks
	Interval time.Duration

	// NotifyLead is how long before the start the reminder is posted
	NotifyLead time.Duration

	// EndGrace is how long after the end a follow-up may still be sent
	EndGrace time.Duration

	// Retention is how long past its start a session is kept
	Retention time.Duration

	// SessionTimeout bounds the work done for one session in a tick
	SessionTimeout time.Duration

	// FollowUpEnabled controls the post-session message to the creator
	FollowUpEnabled bool
}

// Scheduler runs the session state machine on a fixed interval
type Scheduler struct {
	sessionRepo sessionRepo.Repository
	settings    settings.Service
	timing      timing.Service
	sink        messaging.Sink
	uuid        uuid.UUID
	metrics     *Metrics

	interval        time.Duration
	notifyLead      float64
	endGrace        float64
	retention       time.Duration
	sessionTimeout  time.Duration
	followUpEnabled bool

	cron    *cron.Cron
	startup sync.WaitGroup

	// reconciled is set once a tick has completed reconciliation
	reconciled atomic.Bool
}

// New creates a scheduler
func New(cfg *Config) (*Scheduler, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.SessionRepo == nil {
		return nil, errors.New("session repository cannot be nil")
	}

	if cfg.Settings == nil {
		return nil, errors.New("settings service cannot be nil")
	}

	if cfg.Timing == nil {
		return nil, errors.New("timing service cannot be nil")
	}

	if cfg.Sink == nil {
		return nil, errors.New("messaging sink cannot be nil")
	}

	if cfg.UUID == nil {
		return nil, errors.New("UUID generator cannot be nil")
	}

	metrics := cfg.Metrics
	if metrics == nil {
		metrics = NewMetrics(prometheus.NewRegistry())
	}

	return &Scheduler{
		sessionRepo:     cfg.SessionRepo,
		settings:        cfg.Settings,
		timing:          cfg.Timing,
		sink:            cfg.Sink,
		uuid:            cfg.UUID,
		metrics:         metrics,
		interval:        orDefault(cfg.Interval, DefaultInterval),
		notifyLead:      orDefault(cfg.NotifyLead, DefaultNotifyLead).Minutes(),
		endGrace:        orDefault(cfg.EndGrace, DefaultEndGrace).Minutes(),
		retention:       orDefault(cfg.Retention, DefaultRetention),
		sessionTimeout:  orDefault(cfg.SessionTimeout, DefaultSessionTimeout),
		followUpEnabled: cfg.FollowUpEnabled,
	}, nil
}

func orDefault(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}

// Start runs a first tick immediately and then one per interval
func (s *Scheduler) Start(ctx context.Context) {
	logger := cronLogger{logger: log.With().Str("component", "scheduler").Logger()}

	// Shared by the first tick and the scheduled ones so they never overlap
	tick := cron.NewChain(
		cron.Recover(logger),
		cron.SkipIfStillRunning(logger),
	).Then(cron.FuncJob(func() {
		s.RunOnce(ctx)
	}))

	s.cron = cron.New(cron.WithLogger(logger))
	s.cron.Schedule(cron.Every(s.interval), tick)
	s.cron.Start()

	// The first tick reconciles reminders left by a previous run
	s.startup.Add(1)
	go func() {
		defer s.startup.Done()
		tick.Run()
	}()

	log.Info().Dur("interval", s.interval).Msg("scheduler started")
}

// Stop halts the schedule and waits for a running tick to finish
func (s *Scheduler) Stop() {
	if s.cron == nil {
		return
	}

	<-s.cron.Stop().Done()
	s.startup.Wait()
	log.Info().Msg("scheduler stopped")
}

// RunOnce performs a single tick
func (s *Scheduler) RunOnce(ctx context.Context) {
	started := time.Now()
	logger := log.With().Str("tick_id", s.uuid.NewUUID()).Logger()

	defer func() {
		if r := recover(); r != nil {
			s.metrics.RecordFailure(stagePanic)
			logger.Error().
				Interface("panic", r).
				Str("stack", string(debug.Stack())).
				Msg("scheduler tick panicked")
		}
		s.metrics.RecordTick(time.Since(started))
	}()

	output, err := s.sessionRepo.ListSessions(ctx, &sessionRepo.ListSessionsInput{})
	if err != nil {
		s.metrics.RecordFailure(stageList)
		logger.Error().Err(err).Msg("failed to list sessions")
		return
	}

	sessions := s.purge(ctx, logger, output.Sessions)

	handled := map[string]bool{}
	if !s.reconciled.Load() {
		handled = s.reconcile(ctx, logger, sessions)
		if ctx.Err() == nil {
			s.reconciled.Store(true)
		}
	}

	for _, session := range sessions {
		if ctx.Err() != nil {
			logger.Warn().Err(ctx.Err()).Msg("tick cancelled")
			return
		}

		if handled[session.ID] {
			continue
		}

		s.guard(ctx, logger, session, s.process)
	}

	logger.Debug().
		Int("sessions", len(sessions)).
		Dur("elapsed", time.Since(started)).
		Msg("scheduler tick finished")
}

// purge removes sessions scheduled before now minus retention and returns
// the ones still stored. The cutoff is the naive wall clock of each server's
// own timezone.
func (s *Scheduler) purge(ctx context.Context, logger zerolog.Logger, sessions []*models.Session) []*models.Session {
	cutoffs := map[string]time.Time{}
	for _, session := range sessions {
		if _, ok := cutoffs[session.ServerID]; ok || session.ServerID == "" {
			continue
		}
		cfg := s.settings.Get(ctx, session.ServerID)
		cutoffs[session.ServerID] = s.timing.LocalNow(cfg.Timezone).Add(-s.retention)
	}

	purged := map[string]bool{}
	for serverID, cutoff := range cutoffs {
		if !anyBefore(sessions, serverID, cutoff) {
			continue
		}

		output, err := s.sessionRepo.PurgeExpired(ctx, &sessionRepo.PurgeExpiredInput{
			ServerID: serverID,
			Cutoff:   cutoff,
		})
		if err != nil {
			s.metrics.RecordFailure(stagePurge)
			logger.Error().Err(err).Str("server_id", serverID).Msg("failed to purge expired sessions")
			continue
		}

		purged[serverID] = true
		if output.Removed > 0 {
			s.metrics.RecordPurged(output.Removed)
			logger.Info().
				Str("server_id", serverID).
				Int("removed", output.Removed).
				Time("cutoff", cutoff).
				Msg("purged expired sessions")
		}
	}

	remaining := make([]*models.Session, 0, len(sessions))
	for _, session := range sessions {
		if purged[session.ServerID] && session.ScheduledAt.Before(cutoffs[session.ServerID]) {
			continue
		}
		remaining = append(remaining, session)
	}

	return remaining
}

func anyBefore(sessions []*models.Session, serverID string, cutoff time.Time) bool {
	for _, session := range sessions {
		if session.ServerID == serverID && session.ScheduledAt.Before(cutoff) {
			return true
		}
	}
	return false
}

// guard runs fn for one session under its own timeout and recovers panics
func (s *Scheduler) guard(ctx context.Context, logger zerolog.Logger, session *models.Session, fn func(context.Context, zerolog.Logger, *models.Session)) {
	ctx, cancel := context.WithTimeout(ctx, s.sessionTimeout)
	defer cancel()

	sessionLogger := logger.With().
		Str("session_id", session.ID).
		Str("server_id", session.ServerID).
		Logger()

	defer func() {
		if r := recover(); r != nil {
			s.metrics.RecordFailure(stagePanic)
			sessionLogger.Error().
				Interface("panic", r).
				Str("stack", string(debug.Stack())).
				Msg("session processing panicked")
		}
	}()

	fn(ctx, sessionLogger, session)
}

// process advances one session through its states
func (s *Scheduler) process(ctx context.Context, logger zerolog.Logger, session *models.Session) {
	minutes := s.minutesUntil(ctx, session)
	duration := durationOf(session)

	switch {
	case !session.Notified:
		if minutes <= s.notifyLead && minutes > -duration {
			s.notify(ctx, logger, session, minutes)
		}
	case !session.EndNotified:
		if minutes <= -duration {
			s.end(ctx, logger, session, minutes)
		} else {
			s.update(ctx, logger, session, minutes)
		}
	}
}

// notify posts the first reminder of a session
func (s *Scheduler) notify(ctx context.Context, logger zerolog.Logger, session *models.Session, minutes float64) {
	messageID, err := s.post(ctx, session, minutes)
	if err != nil {
		s.metrics.RecordFailure(stageNotify)
		logger.Error().Err(err).Str("channel_id", session.ChannelID).Msg("failed to post reminder")
		return
	}

	s.metrics.RecordReminderSent()

	err = s.persist(ctx, session.ID, func(latest *models.Session) {
		latest.Notified = true
		latest.MessageRef = models.StringRef(messageID)
	})
	if err != nil {
		s.metrics.RecordFailure(stagePersist)
		logger.Error().Err(err).Str("message_id", messageID).Msg("failed to record posted reminder")
		return
	}

	logger.Info().
		Str("message_id", messageID).
		Float64("minutes_remaining", minutes).
		Msg("reminder posted")
}

// post sends a fresh reminder, mentioning the audience while the session
// has not started
func (s *Scheduler) post(ctx context.Context, session *models.Session, minutes float64) (string, error) {
	content := messaging.ReminderContent(render.Render(session, minutes))
	if minutes > 0 {
		content.Text = messaging.AudienceMention(session.GroupID)
	}

	output, err := s.sink.Send(ctx, &messaging.SendInput{
		ChannelID: session.ChannelID,
		Content:   content,
	})
	if err != nil {
		return "", err
	}

	return output.MessageID, nil
}

// update re-renders a live reminder in place
func (s *Scheduler) update(ctx context.Context, logger zerolog.Logger, session *models.Session, minutes float64) {
	if !session.HasMessage() {
		logger.Warn().Msg("notified session has no reminder message, skipping update")
		return
	}

	err := s.edit(ctx, session, minutes)
	switch {
	case errors.Is(err, messaging.ErrMessageNotFound):
		logger.Info().Str("message_id", *session.MessageRef).Msg("reminder message is gone, skipping update")
	case err != nil:
		s.metrics.RecordFailure(stageUpdate)
		logger.Error().Err(err).Str("message_id", *session.MessageRef).Msg("failed to update reminder")
	default:
		s.metrics.RecordReminderUpdated()
	}
}

func (s *Scheduler) edit(ctx context.Context, session *models.Session, minutes float64) error {
	return s.sink.Edit(ctx, &messaging.EditInput{
		ChannelID: session.ChannelID,
		MessageID: *session.MessageRef,
		Content:   messaging.ReminderContent(render.Render(session, minutes)),
	})
}

// end closes a session that ran its full duration
func (s *Scheduler) end(ctx context.Context, logger zerolog.Logger, session *models.Session, minutes float64) {
	withinGrace := minutes > -(durationOf(session) + s.endGrace)

	followUp := false
	if withinGrace && s.followUpEnabled && session.CreatorID != "" {
		if err := s.sendFollowUp(ctx, session); err != nil {
			s.metrics.RecordFailure(stageFollowUp)
			logger.Error().Err(err).Str("creator_id", session.CreatorID).Msg("failed to send follow-up")
			return
		}
		followUp = true
	}

	if session.HasMessage() {
		if err := s.edit(ctx, session, minutes); err != nil && !errors.Is(err, messaging.ErrMessageNotFound) {
			logger.Warn().Err(err).Msg("failed to render final reminder state")
		}
	}

	err := s.persist(ctx, session.ID, func(latest *models.Session) {
		latest.EndNotified = true
	})
	if err != nil {
		s.metrics.RecordFailure(stagePersist)
		logger.Error().Err(err).Msg("failed to record session end")
		return
	}

	logger.Info().
		Bool("follow_up", followUp).
		Bool("within_grace", withinGrace).
		Float64("minutes_remaining", minutes).
		Msg("session ended")
}

func (s *Scheduler) sendFollowUp(ctx context.Context, session *models.Session) error {
	err := s.sink.SendDirect(ctx, &messaging.SendDirectInput{
		UserID:  session.CreatorID,
		Content: messaging.FollowUpContent(session),
	})
	if err != nil {
		return err
	}

	s.metrics.RecordFollowUpSent()
	return nil
}

// persist re-reads a session and applies only the scheduler's own fields, so
// answers recorded while the tick was running are kept
func (s *Scheduler) persist(ctx context.Context, sessionID string, apply func(latest *models.Session)) error {
	latest, err := s.sessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{SessionID: sessionID})
	if err != nil {
		return fmt.Errorf("failed to reload session: %w", err)
	}

	apply(latest)

	if err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{Session: latest}); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

func (s *Scheduler) minutesUntil(ctx context.Context, session *models.Session) float64 {
	cfg := s.settings.Get(ctx, session.ServerID)
	return s.timing.MinutesUntil(session.ScheduledAt, cfg.Timezone)
}

func durationOf(session *models.Session) float64 {
	return float64(session.Duration())
}
