package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/KirkDiggler/huddle/internal/models"
)

// memberSeparator joins member IDs in the *_members columns
const memberSeparator = ","

const sessionColumns = `session_id, server_id, name, scheduled_at, group_id, channel_id, creator_id,
	created_at, notified, ready_members, not_ready_members, message_ref, duration_minutes, end_notified`

// PostgresConfig holds configuration for the Postgres session repository
type PostgresConfig struct {
	DB *sqlx.DB
}

type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgres creates a new Postgres-backed session repository
func NewPostgres(cfg *PostgresConfig) (*postgresRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.DB == nil {
		return nil, errors.New("db cannot be nil")
	}

	return &postgresRepository{db: cfg.DB}, nil
}

// sessionRow mirrors one row of the sessions table
type sessionRow struct {
	SessionID       string         `db:"session_id"`
	ServerID        string         `db:"server_id"`
	Name            string         `db:"name"`
	ScheduledAt     time.Time      `db:"scheduled_at"`
	GroupID         string         `db:"group_id"`
	ChannelID       string         `db:"channel_id"`
	CreatorID       string         `db:"creator_id"`
	CreatedAt       time.Time      `db:"created_at"`
	Notified        bool           `db:"notified"`
	ReadyMembers    string         `db:"ready_members"`
	NotReadyMembers string         `db:"not_ready_members"`
	MessageRef      sql.NullString `db:"message_ref"`
	DurationMinutes int            `db:"duration_minutes"`
	EndNotified     bool           `db:"end_notified"`
}

func toRow(s *models.Session) *sessionRow {
	row := &sessionRow{
		SessionID:       s.ID,
		ServerID:        s.ServerID,
		Name:            s.Name,
		ScheduledAt:     wallClock(s.ScheduledAt),
		GroupID:         s.GroupID,
		ChannelID:       s.ChannelID,
		CreatorID:       s.CreatorID,
		CreatedAt:       wallClock(s.CreatedAt),
		Notified:        s.Notified,
		ReadyMembers:    encodeMembers(s.Participants.Ready),
		NotReadyMembers: encodeMembers(s.Participants.NotReady),
		DurationMinutes: s.DurationMinutes,
		EndNotified:     s.EndNotified,
	}
	if s.HasMessage() {
		row.MessageRef = sql.NullString{String: *s.MessageRef, Valid: true}
	}
	return row
}

func (row *sessionRow) toModel() *models.Session {
	s := &models.Session{
		ID:              row.SessionID,
		ServerID:        row.ServerID,
		Name:            row.Name,
		ScheduledAt:     wallClock(row.ScheduledAt),
		DurationMinutes: row.DurationMinutes,
		GroupID:         row.GroupID,
		ChannelID:       row.ChannelID,
		CreatorID:       row.CreatorID,
		CreatedAt:       wallClock(row.CreatedAt),
		Notified:        row.Notified,
		EndNotified:     row.EndNotified,
		Participants: models.Participants{
			Ready:    decodeMembers(row.ReadyMembers),
			NotReady: decodeMembers(row.NotReadyMembers),
		},
	}
	if row.MessageRef.Valid && row.MessageRef.String != "" {
		s.MessageRef = models.StringRef(row.MessageRef.String)
	}
	return s
}

// wallClock keeps the wall clock of t in UTC, matching TIMESTAMP semantics
func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}

func encodeMembers(members []string) string {
	return strings.Join(members, memberSeparator)
}

func decodeMembers(value string) []string {
	members := []string{}
	for _, member := range strings.Split(value, memberSeparator) {
		if member = strings.TrimSpace(member); member != "" {
			members = append(members, member)
		}
	}
	return members
}

// SaveSession upserts a session row
func (r *postgresRepository) SaveSession(ctx context.Context, input *SaveSessionInput) error {
	if input == nil || input.Session == nil {
		return errors.New("input and session cannot be nil")
	}

	if input.Session.ServerID == "" || models.NormalizeName(input.Session.Name) == "" {
		return errors.New("server ID and name cannot be empty")
	}

	input.Session.ID = models.SessionID(input.Session.ServerID, input.Session.Name)

	query := `INSERT INTO sessions (` + sessionColumns + `)
		VALUES (:session_id, :server_id, :name, :scheduled_at, :group_id, :channel_id, :creator_id,
			:created_at, :notified, :ready_members, :not_ready_members, :message_ref, :duration_minutes, :end_notified)
		ON CONFLICT (session_id) DO UPDATE SET
			server_id = EXCLUDED.server_id,
			name = EXCLUDED.name,
			scheduled_at = EXCLUDED.scheduled_at,
			group_id = EXCLUDED.group_id,
			channel_id = EXCLUDED.channel_id,
			creator_id = EXCLUDED.creator_id,
			created_at = EXCLUDED.created_at,
			notified = EXCLUDED.notified,
			ready_members = EXCLUDED.ready_members,
			not_ready_members = EXCLUDED.not_ready_members,
			message_ref = EXCLUDED.message_ref,
			duration_minutes = EXCLUDED.duration_minutes,
			end_notified = EXCLUDED.end_notified`

	if _, err := r.db.NamedExecContext(ctx, query, toRow(input.Session)); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// GetSession retrieves a session row by ID
func (r *postgresRepository) GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	var row sessionRow
	err := r.db.GetContext(ctx, &row, `SELECT `+sessionColumns+` FROM sessions WHERE session_id = $1`, input.SessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return row.toModel(), nil
}

// ListSessions retrieves every session row
func (r *postgresRepository) ListSessions(ctx context.Context, input *ListSessionsInput) (*ListSessionsOutput, error) {
	var rows []sessionRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT `+sessionColumns+` FROM sessions ORDER BY session_id`); err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	return &ListSessionsOutput{Sessions: rowsToModels(rows)}, nil
}

// ListSessionsByServer retrieves the session rows of one server
func (r *postgresRepository) ListSessionsByServer(ctx context.Context, input *ListSessionsByServerInput) (*ListSessionsOutput, error) {
	if input == nil || input.ServerID == "" {
		return nil, errors.New("input and server ID cannot be empty")
	}

	var rows []sessionRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT `+sessionColumns+` FROM sessions WHERE server_id = $1 ORDER BY session_id`, input.ServerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions for server: %w", err)
	}

	return &ListSessionsOutput{Sessions: rowsToModels(rows)}, nil
}

func rowsToModels(rows []sessionRow) []*models.Session {
	sessions := make([]*models.Session, 0, len(rows))
	for i := range rows {
		sessions = append(sessions, rows[i].toModel())
	}
	return sessions
}

// DeleteSession removes a session row
func (r *postgresRepository) DeleteSession(ctx context.Context, input *DeleteSessionInput) (*DeleteSessionOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE session_id = $1`, input.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete session: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read deleted rows: %w", err)
	}

	return &DeleteSessionOutput{Deleted: affected > 0}, nil
}

// PurgeExpired deletes rows scheduled before the cutoff
func (r *postgresRepository) PurgeExpired(ctx context.Context, input *PurgeExpiredInput) (*PurgeExpiredOutput, error) {
	if input == nil || input.Cutoff.IsZero() {
		return nil, errors.New("input and cutoff cannot be empty")
	}

	query := `DELETE FROM sessions WHERE scheduled_at < $1`
	args := []interface{}{wallClock(input.Cutoff)}
	if input.ServerID != "" {
		query += ` AND server_id = $2`
		args = append(args, input.ServerID)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to purge sessions: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read purged rows: %w", err)
	}

	return &PurgeExpiredOutput{Removed: int(affected)}, nil
}

// Ping checks the database connection
func (r *postgresRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
