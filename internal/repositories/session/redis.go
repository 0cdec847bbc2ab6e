package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/KirkDiggler/huddle/internal/models"
)

const (
	// Key prefixes for Redis
	sessionKeyPrefix       = "session:"
	allSessionsKey         = "sessions"
	serverSessionKeyPrefix = "server:sessions:"
)

// Config holds configuration for the Redis session repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed session repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

func sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

func serverSessionsKey(serverID string) string {
	return serverSessionKeyPrefix + serverID
}

// serverFromID recovers the owning server from a session ID
func serverFromID(sessionID string) string {
	serverID, _, _ := strings.Cut(sessionID, "_")
	return serverID
}

// SaveSession persists a session to Redis
func (r *redisRepository) SaveSession(ctx context.Context, input *SaveSessionInput) error {
	if input == nil || input.Session == nil {
		return errors.New("input and session cannot be nil")
	}

	if input.Session.ServerID == "" || models.NormalizeName(input.Session.Name) == "" {
		return errors.New("server ID and name cannot be empty")
	}

	input.Session.ID = models.SessionID(input.Session.ServerID, input.Session.Name)

	sessionJSON, err := json.Marshal(input.Session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, sessionKey(input.Session.ID), sessionJSON, 0)
	pipe.SAdd(ctx, allSessionsKey, input.Session.ID)
	pipe.SAdd(ctx, serverSessionsKey(input.Session.ServerID), input.Session.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// GetSession retrieves a session by ID from Redis
func (r *redisRepository) GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	sessionJSON, err := r.client.Get(ctx, sessionKey(input.SessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal([]byte(sessionJSON), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session %s: %w", input.SessionID, err)
	}

	return &session, nil
}

// ListSessions retrieves every stored session
func (r *redisRepository) ListSessions(ctx context.Context, input *ListSessionsInput) (*ListSessionsOutput, error) {
	sessionIDs, err := r.client.SMembers(ctx, allSessionsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get session IDs: %w", err)
	}

	sessions, err := r.loadSessions(ctx, sessionIDs)
	if err != nil {
		return nil, err
	}

	return &ListSessionsOutput{Sessions: sessions}, nil
}

// ListSessionsByServer retrieves the sessions of one server
func (r *redisRepository) ListSessionsByServer(ctx context.Context, input *ListSessionsByServerInput) (*ListSessionsOutput, error) {
	if input == nil || input.ServerID == "" {
		return nil, errors.New("input and server ID cannot be empty")
	}

	sessionIDs, err := r.client.SMembers(ctx, serverSessionsKey(input.ServerID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get session IDs for server: %w", err)
	}

	sessions, err := r.loadSessions(ctx, sessionIDs)
	if err != nil {
		return nil, err
	}

	return &ListSessionsOutput{Sessions: sessions}, nil
}

// loadSessions fetches the given sessions in one pipeline. Records that vanished
// or cannot be decoded are skipped so one corrupt entry never hides the rest.
func (r *redisRepository) loadSessions(ctx context.Context, sessionIDs []string) ([]*models.Session, error) {
	raw, err := r.fetchRaw(ctx, sessionIDs)
	if err != nil {
		return nil, err
	}

	sessions := make([]*models.Session, 0, len(raw))
	for _, sessionID := range sessionIDs {
		sessionJSON, ok := raw[sessionID]
		if !ok {
			continue
		}

		var session models.Session
		if err := json.Unmarshal([]byte(sessionJSON), &session); err != nil {
			log.Warn().Err(err).Str("session_id", sessionID).Msg("skipping corrupt session record")
			continue
		}

		sessions = append(sessions, &session)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].ID < sessions[j].ID
	})

	return sessions, nil
}

// fetchRaw returns the stored JSON of each existing session
func (r *redisRepository) fetchRaw(ctx context.Context, sessionIDs []string) (map[string]string, error) {
	if len(sessionIDs) == 0 {
		return map[string]string{}, nil
	}

	pipe := r.client.Pipeline()
	commands := make(map[string]*redis.StringCmd, len(sessionIDs))
	for _, sessionID := range sessionIDs {
		commands[sessionID] = pipe.Get(ctx, sessionKey(sessionID))
	}

	// redis.Nil for a single key is reported through Exec as well
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get sessions: %w", err)
	}

	raw := make(map[string]string, len(sessionIDs))
	for sessionID, cmd := range commands {
		sessionJSON, err := cmd.Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				// Deleted between reading the index and fetching the record
				continue
			}
			return nil, fmt.Errorf("failed to get session %s: %w", sessionID, err)
		}
		raw[sessionID] = sessionJSON
	}

	return raw, nil
}

// DeleteSession removes a session and its index entries from Redis
func (r *redisRepository) DeleteSession(ctx context.Context, input *DeleteSessionInput) (*DeleteSessionOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	deleted, err := r.deleteByID(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	return &DeleteSessionOutput{Deleted: deleted}, nil
}

func (r *redisRepository) deleteByID(ctx context.Context, sessionID string) (bool, error) {
	pipe := r.client.TxPipeline()
	del := pipe.Del(ctx, sessionKey(sessionID))
	pipe.SRem(ctx, allSessionsKey, sessionID)
	pipe.SRem(ctx, serverSessionsKey(serverFromID(sessionID)), sessionID)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to delete session: %w", err)
	}

	return del.Val() > 0, nil
}

// PurgeExpired removes sessions scheduled before the cutoff
func (r *redisRepository) PurgeExpired(ctx context.Context, input *PurgeExpiredInput) (*PurgeExpiredOutput, error) {
	if input == nil || input.Cutoff.IsZero() {
		return nil, errors.New("input and cutoff cannot be empty")
	}

	indexKey := allSessionsKey
	if input.ServerID != "" {
		indexKey = serverSessionsKey(input.ServerID)
	}

	sessionIDs, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get session IDs: %w", err)
	}

	raw, err := r.fetchRaw(ctx, sessionIDs)
	if err != nil {
		return nil, err
	}

	removed := 0
	for sessionID, sessionJSON := range raw {
		var session models.Session
		if err := json.Unmarshal([]byte(sessionJSON), &session); err != nil {
			log.Warn().Err(err).Str("session_id", sessionID).Msg("skipping session with malformed record during purge")
			continue
		}

		if session.ScheduledAt.IsZero() {
			log.Warn().Str("session_id", sessionID).Msg("skipping session without scheduled time during purge")
			continue
		}

		if !session.ScheduledAt.Before(input.Cutoff) {
			continue
		}

		deleted, err := r.deleteByID(ctx, sessionID)
		if err != nil {
			log.Error().Err(err).Str("session_id", sessionID).Msg("failed to purge session")
			continue
		}
		if deleted {
			removed++
		}
	}

	return &PurgeExpiredOutput{Removed: removed}, nil
}

// Ping checks the Redis connection
func (r *redisRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
