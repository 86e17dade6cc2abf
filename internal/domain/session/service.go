package session

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"atlas/pkg/errors"
	"atlas/pkg/logger"
)

// Service manages conversation sessions and their layered state.
// Keys prefixed _app_ and _user_ are persisted at app and user scope,
// _temp_ keys are never persisted.
type Service struct {
	repo Repository
	log  *logger.Logger
}

// NewService creates a new session service
func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		log:  logger.Get().With("component", "session_service"),
	}
}

// CreateSession creates a new session with initial state.
// A missing sessionID gets a generated UUID.
func (s *Service) CreateSession(ctx context.Context, appName, userID, sessionID string, initialState map[string]interface{}) (*Session, error) {
	if appName == "" || userID == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "app_name and user_id are required")
	}

	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	appDelta, userDelta, sessionState := splitStateDeltas(initialState)

	if len(appDelta) > 0 {
		if err := s.updateAppState(ctx, appName, appDelta); err != nil {
			return nil, errors.Wrap(err, "update app state")
		}
	}
	if len(userDelta) > 0 {
		if err := s.updateUserState(ctx, appName, userID, userDelta); err != nil {
			return nil, errors.Wrap(err, "update user state")
		}
	}

	now := time.Now()
	sess := &Session{
		ID:        uuid.New(),
		AppName:   appName,
		UserID:    userID,
		SessionID: sessionID,
		State:     sessionState,
		Events:    []Event{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, sess); err != nil {
		return nil, errors.Wrap(err, "create session")
	}

	s.log.Infow("Session created", "app", appName, "user", userID, "session", sessionID)
	return sess, nil
}

// GetSession retrieves a session with its events and merged state
func (s *Service) GetSession(ctx context.Context, appName, userID, sessionID string, opts *GetOptions) (*Session, error) {
	if appName == "" || userID == "" || sessionID == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "app_name, user_id, and session_id are required")
	}

	sess, err := s.repo.Get(ctx, appName, userID, sessionID, opts)
	if err != nil {
		return nil, errors.Wrap(err, "get session")
	}

	if err := s.mergeStates(ctx, sess); err != nil {
		return nil, errors.Wrap(err, "merge states")
	}

	return sess, nil
}

// ListSessions lists sessions for an app, optionally scoped to one user
func (s *Service) ListSessions(ctx context.Context, appName, userID string) ([]*Session, error) {
	if appName == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "app_name is required")
	}

	sessions, err := s.repo.List(ctx, appName, userID)
	if err != nil {
		return nil, errors.Wrap(err, "list sessions")
	}

	for _, sess := range sessions {
		if err := s.mergeStates(ctx, sess); err != nil {
			s.log.Warnw("Failed to merge states", "session", sess.SessionID, "error", err)
		}
	}

	return sessions, nil
}

// DeleteSession deletes a session and its events
func (s *Service) DeleteSession(ctx context.Context, appName, userID, sessionID string) error {
	if appName == "" || userID == "" || sessionID == "" {
		return errors.Wrap(errors.ErrInvalidInput, "app_name, user_id, and session_id are required")
	}

	if err := s.repo.Delete(ctx, appName, userID, sessionID); err != nil {
		return errors.Wrap(err, "delete session")
	}

	s.log.Infow("Session deleted", "app", appName, "user", userID, "session", sessionID)
	return nil
}

// AppendEvent persists an event and applies its state delta.
// Partial streaming events are not persisted.
func (s *Service) AppendEvent(ctx context.Context, sess *Session, event *Event) error {
	if sess == nil || event == nil {
		return errors.Wrap(errors.ErrInvalidInput, "session and event are required")
	}

	if event.Partial {
		return nil
	}

	if len(event.Actions.StateDelta) > 0 {
		appDelta, userDelta, sessionDelta := splitStateDeltas(event.Actions.StateDelta)

		if len(appDelta) > 0 {
			if err := s.updateAppState(ctx, sess.AppName, appDelta); err != nil {
				return errors.Wrap(err, "update app state")
			}
		}
		if len(userDelta) > 0 {
			if err := s.updateUserState(ctx, sess.AppName, sess.UserID, userDelta); err != nil {
				return errors.Wrap(err, "update user state")
			}
		}
		if len(sessionDelta) > 0 {
			if sess.State == nil {
				sess.State = make(map[string]interface{})
			}
			for k, v := range sessionDelta {
				sess.State[k] = v
			}
			if err := s.repo.UpdateState(ctx, sess.AppName, sess.UserID, sess.SessionID, sess.State); err != nil {
				return errors.Wrap(err, "update session state")
			}
		}
	}

	if err := s.repo.AppendEvent(ctx, sess.ID, event); err != nil {
		return errors.Wrap(err, "append event")
	}

	sess.Events = append(sess.Events, *event)
	sess.UpdatedAt = time.Now()

	return nil
}

// splitStateDeltas routes state keys to their persistence scope
func splitStateDeltas(state map[string]interface{}) (app, user, sess map[string]interface{}) {
	app = make(map[string]interface{})
	user = make(map[string]interface{})
	sess = make(map[string]interface{})

	for key, value := range state {
		switch {
		case strings.HasPrefix(key, KeyPrefixApp) && len(key) > len(KeyPrefixApp):
			app[strings.TrimPrefix(key, KeyPrefixApp)] = value
		case strings.HasPrefix(key, KeyPrefixUser) && len(key) > len(KeyPrefixUser):
			user[strings.TrimPrefix(key, KeyPrefixUser)] = value
		case strings.HasPrefix(key, KeyPrefixTemp) && len(key) > len(KeyPrefixTemp):
			// Temporary state is never persisted
		default:
			sess[key] = value
		}
	}

	return app, user, sess
}

// mergeStates overlays app and user state onto session state, re-applying
// the scope prefixes so callers can tell the levels apart
func (s *Service) mergeStates(ctx context.Context, sess *Session) error {
	appState, err := s.repo.GetAppState(ctx, sess.AppName)
	if err != nil && !errors.Is(err, errors.ErrNotFound) {
		return errors.Wrap(err, "get app state")
	}

	userState, err := s.repo.GetUserState(ctx, sess.AppName, sess.UserID)
	if err != nil && !errors.Is(err, errors.ErrNotFound) {
		return errors.Wrap(err, "get user state")
	}

	merged := make(map[string]interface{}, len(sess.State))
	for k, v := range sess.State {
		merged[k] = v
	}
	if appState != nil {
		for k, v := range appState.State {
			merged[KeyPrefixApp+k] = v
		}
	}
	if userState != nil {
		for k, v := range userState.State {
			merged[KeyPrefixUser+k] = v
		}
	}

	sess.State = merged
	return nil
}

func (s *Service) updateAppState(ctx context.Context, appName string, delta map[string]interface{}) error {
	appState, err := s.repo.GetAppState(ctx, appName)
	if err != nil && !errors.Is(err, errors.ErrNotFound) {
		return err
	}

	if appState == nil {
		appState = &AppState{AppName: appName, State: make(map[string]interface{})}
	}
	for k, v := range delta {
		appState.State[k] = v
	}

	return s.repo.SetAppState(ctx, appName, appState.State)
}

func (s *Service) updateUserState(ctx context.Context, appName, userID string, delta map[string]interface{}) error {
	userState, err := s.repo.GetUserState(ctx, appName, userID)
	if err != nil && !errors.Is(err, errors.ErrNotFound) {
		return err
	}

	if userState == nil {
		userState = &UserState{AppName: appName, UserID: userID, State: make(map[string]interface{})}
	}
	for k, v := range delta {
		userState.State[k] = v
	}

	return s.repo.SetUserState(ctx, appName, userID, userState.State)
}
