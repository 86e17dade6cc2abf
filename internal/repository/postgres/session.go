package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"atlas/internal/domain/session"
	"atlas/pkg/errors"
)

// Compile-time check
var _ session.Repository = (*SessionRepository)(nil)

// SessionRepository implements session.Repository on PostgreSQL.
// State and event payloads are stored as JSONB.
type SessionRepository struct {
	db DBTX
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db DBTX) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a new session
func (r *SessionRepository) Create(ctx context.Context, sess *session.Session) error {
	stateJSON, err := json.Marshal(sess.State)
	if err != nil {
		return errors.Wrap(err, "marshal state")
	}

	query := `
		INSERT INTO sessions (id, app_name, user_id, session_id, state, updated_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = r.db.ExecContext(ctx, query,
		sess.ID, sess.AppName, sess.UserID, sess.SessionID,
		stateJSON, sess.UpdatedAt, sess.CreatedAt,
	)
	if err != nil {
		return errors.Wrap(err, "create session")
	}

	return nil
}

// Get retrieves a session together with its event history
func (r *SessionRepository) Get(ctx context.Context, appName, userID, sessionID string, opts *session.GetOptions) (*session.Session, error) {
	if opts == nil {
		opts = &session.GetOptions{}
	}

	query := `
		SELECT id, app_name, user_id, session_id, state, updated_at, created_at
		FROM sessions
		WHERE app_name = $1 AND user_id = $2 AND session_id = $3`

	var sess session.Session
	var stateJSON []byte

	err := r.db.QueryRowContext(ctx, query, appName, userID, sessionID).Scan(
		&sess.ID, &sess.AppName, &sess.UserID, &sess.SessionID,
		&stateJSON, &sess.UpdatedAt, &sess.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.Wrap(errors.ErrNotFound, "session not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, "get session")
	}

	if err := json.Unmarshal(stateJSON, &sess.State); err != nil {
		return nil, errors.Wrap(err, "unmarshal state")
	}

	events, err := r.GetEvents(ctx, sess.ID, &session.GetEventsOptions{
		Limit: opts.NumRecentEvents,
		After: opts.After,
	})
	if err != nil {
		return nil, errors.Wrap(err, "get events")
	}

	sess.Events = make([]session.Event, len(events))
	for i, e := range events {
		sess.Events[i] = *e
	}

	return &sess, nil
}

// List returns sessions for an app, most recently updated first.
// Events are not loaded.
func (r *SessionRepository) List(ctx context.Context, appName, userID string) ([]*session.Session, error) {
	query := `
		SELECT id, app_name, user_id, session_id, state, updated_at, created_at
		FROM sessions
		WHERE app_name = $1`
	args := []interface{}{appName}

	if userID != "" {
		query += ` AND user_id = $2`
		args = append(args, userID)
	}
	query += ` ORDER BY updated_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list sessions")
	}
	defer rows.Close()

	var sessions []*session.Session
	for rows.Next() {
		var sess session.Session
		var stateJSON []byte

		if err := rows.Scan(
			&sess.ID, &sess.AppName, &sess.UserID, &sess.SessionID,
			&stateJSON, &sess.UpdatedAt, &sess.CreatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "scan session")
		}

		if err := json.Unmarshal(stateJSON, &sess.State); err != nil {
			return nil, errors.Wrap(err, "unmarshal state")
		}

		sess.Events = []session.Event{}
		sessions = append(sessions, &sess)
	}

	return sessions, rows.Err()
}

// Delete removes a session; its events go with it via ON DELETE CASCADE
func (r *SessionRepository) Delete(ctx context.Context, appName, userID, sessionID string) error {
	query := `
		DELETE FROM sessions
		WHERE app_name = $1 AND user_id = $2 AND session_id = $3`

	result, err := r.db.ExecContext(ctx, query, appName, userID, sessionID)
	if err != nil {
		return errors.Wrap(err, "delete session")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "rows affected")
	}
	if rows == 0 {
		return errors.Wrap(errors.ErrNotFound, "session not found")
	}

	return nil
}

// UpdateState replaces the session-level state
func (r *SessionRepository) UpdateState(ctx context.Context, appName, userID, sessionID string, state map[string]interface{}) error {
	stateJSON, err := json.Marshal(state)
	if err != nil {
		return errors.Wrap(err, "marshal state")
	}

	query := `
		UPDATE sessions
		SET state = $1, updated_at = $2
		WHERE app_name = $3 AND user_id = $4 AND session_id = $5`

	_, err = r.db.ExecContext(ctx, query, stateJSON, time.Now(), appName, userID, sessionID)
	if err != nil {
		return errors.Wrap(err, "update state")
	}

	return nil
}

// AppendEvent inserts an event for a session
func (r *SessionRepository) AppendEvent(ctx context.Context, sessionUUID uuid.UUID, event *session.Event) error {
	contentJSON, err := json.Marshal(event.Content)
	if err != nil {
		return errors.Wrap(err, "marshal content")
	}

	actionsJSON, err := json.Marshal(event.Actions)
	if err != nil {
		return errors.Wrap(err, "marshal actions")
	}

	var usageJSON []byte
	if event.UsageMetadata != nil {
		usageJSON, err = json.Marshal(event.UsageMetadata)
		if err != nil {
			return errors.Wrap(err, "marshal usage metadata")
		}
	}

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}

	query := `
		INSERT INTO session_events (
			id, session_uuid, event_id, author, content, timestamp, branch,
			partial, turn_complete, actions, usage_metadata
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err = r.db.ExecContext(ctx, query,
		event.ID, sessionUUID, event.EventID, event.Author,
		contentJSON, event.Timestamp, event.Branch,
		event.Partial, event.TurnComplete, actionsJSON, usageJSON,
	)
	if err != nil {
		return errors.Wrap(err, "append event")
	}

	return nil
}

// GetEvents returns a session's events in chronological order.
// With a limit set, the most recent events win.
func (r *SessionRepository) GetEvents(ctx context.Context, sessionUUID uuid.UUID, opts *session.GetEventsOptions) ([]*session.Event, error) {
	if opts == nil {
		opts = &session.GetEventsOptions{}
	}

	query := `
		SELECT id, session_uuid, event_id, author, content, timestamp, branch,
		       partial, turn_complete, actions, usage_metadata
		FROM session_events
		WHERE session_uuid = $1`
	args := []interface{}{sessionUUID}

	if !opts.After.IsZero() {
		args = append(args, opts.After)
		query += fmt.Sprintf(` AND timestamp >= $%d`, len(args))
	}

	// DESC plus LIMIT keeps the newest events, reversed below
	query += ` ORDER BY timestamp DESC`

	if opts.Limit > 0 {
		args = append(args, opts.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "get events")
	}
	defer rows.Close()

	var events []*session.Event
	for rows.Next() {
		var event session.Event
		var contentJSON, actionsJSON, usageJSON []byte

		if err := rows.Scan(
			&event.ID, &event.SessionID, &event.EventID, &event.Author,
			&contentJSON, &event.Timestamp, &event.Branch,
			&event.Partial, &event.TurnComplete, &actionsJSON, &usageJSON,
		); err != nil {
			return nil, errors.Wrap(err, "scan event")
		}

		if err := json.Unmarshal(contentJSON, &event.Content); err != nil {
			return nil, errors.Wrap(err, "unmarshal content")
		}
		if err := json.Unmarshal(actionsJSON, &event.Actions); err != nil {
			return nil, errors.Wrap(err, "unmarshal actions")
		}
		if len(usageJSON) > 0 {
			var usage session.UsageMetadata
			if err := json.Unmarshal(usageJSON, &usage); err != nil {
				return nil, errors.Wrap(err, "unmarshal usage metadata")
			}
			event.UsageMetadata = &usage
		}

		events = append(events, &event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, j := 0, len(events)-1; i < j; i, j = i+1, j-1 {
		events[i], events[j] = events[j], events[i]
	}

	return events, nil
}

// GetAppState retrieves application-level state
func (r *SessionRepository) GetAppState(ctx context.Context, appName string) (*session.AppState, error) {
	query := `SELECT app_name, state FROM app_states WHERE app_name = $1`

	var appState session.AppState
	var stateJSON []byte

	err := r.db.QueryRowContext(ctx, query, appName).Scan(&appState.AppName, &stateJSON)
	if err == sql.ErrNoRows {
		return nil, errors.Wrap(errors.ErrNotFound, "app state not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, "get app state")
	}

	if err := json.Unmarshal(stateJSON, &appState.State); err != nil {
		return nil, errors.Wrap(err, "unmarshal state")
	}

	return &appState, nil
}

// SetAppState upserts application-level state
func (r *SessionRepository) SetAppState(ctx context.Context, appName string, state map[string]interface{}) error {
	stateJSON, err := json.Marshal(state)
	if err != nil {
		return errors.Wrap(err, "marshal state")
	}

	query := `
		INSERT INTO app_states (app_name, state)
		VALUES ($1, $2)
		ON CONFLICT (app_name) DO UPDATE SET state = $2`

	if _, err := r.db.ExecContext(ctx, query, appName, stateJSON); err != nil {
		return errors.Wrap(err, "set app state")
	}

	return nil
}

// GetUserState retrieves user-level state
func (r *SessionRepository) GetUserState(ctx context.Context, appName, userID string) (*session.UserState, error) {
	query := `SELECT app_name, user_id, state FROM user_states WHERE app_name = $1 AND user_id = $2`

	var userState session.UserState
	var stateJSON []byte

	err := r.db.QueryRowContext(ctx, query, appName, userID).Scan(&userState.AppName, &userState.UserID, &stateJSON)
	if err == sql.ErrNoRows {
		return nil, errors.Wrap(errors.ErrNotFound, "user state not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, "get user state")
	}

	if err := json.Unmarshal(stateJSON, &userState.State); err != nil {
		return nil, errors.Wrap(err, "unmarshal state")
	}

	return &userState, nil
}

// SetUserState upserts user-level state
func (r *SessionRepository) SetUserState(ctx context.Context, appName, userID string, state map[string]interface{}) error {
	stateJSON, err := json.Marshal(state)
	if err != nil {
		return errors.Wrap(err, "marshal state")
	}

	query := `
		INSERT INTO user_states (app_name, user_id, state)
		VALUES ($1, $2, $3)
		ON CONFLICT (app_name, user_id) DO UPDATE SET state = $3`

	if _, err := r.db.ExecContext(ctx, query, appName, userID, stateJSON); err != nil {
		return errors.Wrap(err, "set user state")
	}

	return nil
}
