package scheduler

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	sessionRepo "github.com/KirkDiggler/huddle/internal/repositories/session"
	"github.com/KirkDiggler/huddle/internal/services/messaging"
	sessionService "github.com/KirkDiggler/huddle/internal/services/session"
)

var _ sessionService.Refresher = (*Scheduler)(nil)

// Refresh re-renders the live reminder of a session right away. Sessions
// without a reminder and reminders deleted externally are left alone.
func (s *Scheduler) Refresh(ctx context.Context, sessionID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.sessionTimeout)
	defer cancel()

	session, err := s.sessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{SessionID: sessionID})
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	if !session.HasMessage() || session.EndNotified {
		return nil
	}

	minutes := s.minutesUntil(ctx, session)
	if err := s.edit(ctx, session, minutes); err != nil {
		if errors.Is(err, messaging.ErrMessageNotFound) {
			log.Info().
				Str("session_id", session.ID).
				Str("server_id", session.ServerID).
				Msg("reminder message is gone, skipping refresh")
			return nil
		}
		s.metrics.RecordFailure(stageUpdate)
		return fmt.Errorf("failed to edit reminder: %w", err)
	}

	s.metrics.RecordReminderUpdated()
	return nil
}

// FollowUp sends the post-session message to the creator on demand. It does
// not change the end_notified flag.
func (s *Scheduler) FollowUp(ctx context.Context, sessionID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.sessionTimeout)
	defer cancel()

	session, err := s.sessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{SessionID: sessionID})
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	if err := s.sendFollowUp(ctx, session); err != nil {
		s.metrics.RecordFailure(stageFollowUp)
		return fmt.Errorf("failed to send follow-up: %w", err)
	}

	log.Info().
		Str("session_id", session.ID).
		Str("server_id", session.ServerID).
		Str("creator_id", session.CreatorID).
		Msg("follow-up sent on request")

	return nil
}

// Withdraw deletes a reminder left behind when a session moved. A message
// that is already gone counts as withdrawn.
func (s *Scheduler) Withdraw(ctx context.Context, channelID, messageID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.sessionTimeout)
	defer cancel()

	err := s.sink.Delete(ctx, &messaging.DeleteInput{
		ChannelID: channelID,
		MessageID: messageID,
	})
	if err != nil && !errors.Is(err, messaging.ErrMessageNotFound) {
		s.metrics.RecordFailure(stageWithdraw)
		return fmt.Errorf("failed to delete reminder: %w", err)
	}

	log.Info().
		Str("channel_id", channelID).
		Str("message_id", messageID).
		Msg("stale reminder withdrawn")

	return nil
}
