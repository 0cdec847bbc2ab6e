package scheduler

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/KirkDiggler/huddle/internal/models"
	"github.com/KirkDiggler/huddle/internal/services/messaging"
)

// reconcile recovers the live reminders of notified sessions after a
// restart. It returns the sessions it handled so the same tick does not
// process them twice.
func (s *Scheduler) reconcile(ctx context.Context, logger zerolog.Logger, sessions []*models.Session) map[string]bool {
	handled := map[string]bool{}

	for _, session := range sessions {
		if !session.Notified || session.EndNotified {
			continue
		}

		s.guard(ctx, logger, session, func(ctx context.Context, logger zerolog.Logger, session *models.Session) {
			if s.reconcileSession(ctx, logger, session) {
				handled[session.ID] = true
			}
		})
	}

	logger.Info().Int("reconciled", len(handled)).Msg("reminder reconciliation finished")

	return handled
}

// reconcileSession returns false when the session is left to the regular
// state machine in the same tick
func (s *Scheduler) reconcileSession(ctx context.Context, logger zerolog.Logger, session *models.Session) bool {
	minutes := s.minutesUntil(ctx, session)
	if minutes <= -durationOf(session) {
		// Ending is the regular state machine's job
		return false
	}

	if !session.HasMessage() {
		if minutes > 0 {
			s.repost(ctx, logger, session, minutes)
		} else {
			logger.Warn().Msg("started session has no reminder message, not reposting")
		}
		return true
	}

	result := s.sink.Fetch(ctx, &messaging.FetchInput{
		ChannelID: session.ChannelID,
		MessageID: *session.MessageRef,
	})

	switch result.Status {
	case messaging.FetchFound:
		s.update(ctx, logger, session, minutes)
	case messaging.FetchNotFound:
		if minutes > 0 {
			logger.Info().Str("message_id", *session.MessageRef).Msg("reminder message is gone, reposting")
			s.repost(ctx, logger, session, minutes)
		} else {
			logger.Info().Str("message_id", *session.MessageRef).Msg("reminder message is gone and session started, not reposting")
		}
	default:
		s.metrics.RecordFailure(stageReconcile)
		logger.Error().Err(result.Err).Str("message_id", *session.MessageRef).Msg("failed to look up reminder message")
	}

	return true
}

// repost sends a replacement reminder and records its ID
func (s *Scheduler) repost(ctx context.Context, logger zerolog.Logger, session *models.Session, minutes float64) {
	messageID, err := s.post(ctx, session, minutes)
	if err != nil {
		s.metrics.RecordFailure(stageReconcile)
		logger.Error().Err(err).Str("channel_id", session.ChannelID).Msg("failed to repost reminder")
		return
	}

	s.metrics.RecordReminderSent()

	err = s.persist(ctx, session.ID, func(latest *models.Session) {
		latest.MessageRef = models.StringRef(messageID)
	})
	if err != nil {
		s.metrics.RecordFailure(stagePersist)
		logger.Error().Err(err).Str("message_id", messageID).Msg("failed to record reposted reminder")
		return
	}

	logger.Info().Str("message_id", messageID).Msg("reminder reposted")
}
