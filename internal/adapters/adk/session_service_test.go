package adk

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/adk/session"

	domainsession "atlas/internal/domain/session"
	"atlas/pkg/errors"
)

func TestSessionService_ImplementsADKInterface(t *testing.T) {
	svc := NewSessionService(domainsession.NewService(newFakeSessionRepo()))
	var _ session.Service = svc
	assert.NotNil(t, svc)
}

func TestSessionService_Create(t *testing.T) {
	repo := newFakeSessionRepo()
	svc := NewSessionService(domainsession.NewService(repo))
	ctx := context.Background()

	resp, err := svc.Create(ctx, &session.CreateRequest{
		AppName:   "atlas",
		UserID:    "user123",
		SessionID: "session456",
		State: map[string]interface{}{
			"topic":            "orders",
			"_app_banner":      "maintenance tonight",
			"_user_timezone":   "Europe/Berlin",
			"_temp_draft_text": "discarded",
		},
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Session)

	assert.Equal(t, "atlas", resp.Session.AppName())
	assert.Equal(t, "user123", resp.Session.UserID())
	assert.Equal(t, "session456", resp.Session.ID())

	// Prefixed keys land at their own scope, temp keys are dropped
	assert.Equal(t, map[string]interface{}{"banner": "maintenance tonight"}, repo.appState["atlas"].State)
	assert.Equal(t, map[string]interface{}{"timezone": "Europe/Berlin"}, repo.userState["atlas:user123"].State)

	stored := repo.sessions["atlas:user123:session456"]
	require.NotNil(t, stored)
	assert.Equal(t, map[string]interface{}{"topic": "orders"}, stored.State)
}

func TestSessionService_CreateValidation(t *testing.T) {
	svc := NewSessionService(domainsession.NewService(newFakeSessionRepo()))
	ctx := context.Background()

	_, err := svc.Create(ctx, nil)
	assert.Error(t, err)

	_, err = svc.Create(ctx, &session.CreateRequest{AppName: "atlas"})
	assert.Error(t, err)
}

func TestSessionService_CreateGeneratesSessionID(t *testing.T) {
	svc := NewSessionService(domainsession.NewService(newFakeSessionRepo()))

	resp, err := svc.Create(context.Background(), &session.CreateRequest{
		AppName: "atlas",
		UserID:  "user123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Session.ID())
}

func TestSessionService_GetMergesScopedState(t *testing.T) {
	repo := newFakeSessionRepo()
	svc := NewSessionService(domainsession.NewService(repo))
	ctx := context.Background()

	_, err := svc.Create(ctx, &session.CreateRequest{
		AppName:   "atlas",
		UserID:    "user123",
		SessionID: "s1",
		State: map[string]interface{}{
			"topic":          "orders",
			"_user_timezone": "Europe/Berlin",
		},
	})
	require.NoError(t, err)

	resp, err := svc.Get(ctx, &session.GetRequest{
		AppName:   "atlas",
		UserID:    "user123",
		SessionID: "s1",
	})
	require.NoError(t, err)

	topic, err := resp.Session.State().Get("topic")
	require.NoError(t, err)
	assert.Equal(t, "orders", topic)

	tz, err := resp.Session.State().Get("_user_timezone")
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", tz)

	_, err = resp.Session.State().Get("missing")
	assert.ErrorIs(t, err, session.ErrStateKeyNotExist)
}

func TestSessionService_GetMissing(t *testing.T) {
	svc := NewSessionService(domainsession.NewService(newFakeSessionRepo()))

	_, err := svc.Get(context.Background(), &session.GetRequest{
		AppName:   "atlas",
		UserID:    "user123",
		SessionID: "nope",
	})
	assert.Error(t, err)
}

func TestSessionService_Delete(t *testing.T) {
	repo := newFakeSessionRepo()
	svc := NewSessionService(domainsession.NewService(repo))
	ctx := context.Background()

	_, err := svc.Create(ctx, &session.CreateRequest{
		AppName:   "atlas",
		UserID:    "user123",
		SessionID: "s1",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, &session.DeleteRequest{
		AppName:   "atlas",
		UserID:    "user123",
		SessionID: "s1",
	}))
	assert.Empty(t, repo.sessions)
}

// fakeSessionRepo is an in-memory session.Repository
type fakeSessionRepo struct {
	sessions  map[string]*domainsession.Session
	events    map[uuid.UUID][]*domainsession.Event
	appState  map[string]*domainsession.AppState
	userState map[string]*domainsession.UserState
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{
		sessions:  make(map[string]*domainsession.Session),
		events:    make(map[uuid.UUID][]*domainsession.Event),
		appState:  make(map[string]*domainsession.AppState),
		userState: make(map[string]*domainsession.UserState),
	}
}

func sessionKey(appName, userID, sessionID string) string {
	return appName + ":" + userID + ":" + sessionID
}

func (f *fakeSessionRepo) Create(ctx context.Context, sess *domainsession.Session) error {
	f.sessions[sessionKey(sess.AppName, sess.UserID, sess.SessionID)] = sess
	return nil
}

func (f *fakeSessionRepo) Get(ctx context.Context, appName, userID, sessionID string, opts *domainsession.GetOptions) (*domainsession.Session, error) {
	sess, ok := f.sessions[sessionKey(appName, userID, sessionID)]
	if !ok {
		return nil, errors.ErrNotFound
	}
	copied := *sess
	return &copied, nil
}

func (f *fakeSessionRepo) List(ctx context.Context, appName, userID string) ([]*domainsession.Session, error) {
	var sessions []*domainsession.Session
	for _, sess := range f.sessions {
		if sess.AppName == appName && (userID == "" || sess.UserID == userID) {
			sessions = append(sessions, sess)
		}
	}
	return sessions, nil
}

func (f *fakeSessionRepo) Delete(ctx context.Context, appName, userID, sessionID string) error {
	delete(f.sessions, sessionKey(appName, userID, sessionID))
	return nil
}

func (f *fakeSessionRepo) UpdateState(ctx context.Context, appName, userID, sessionID string, state map[string]interface{}) error {
	if sess, ok := f.sessions[sessionKey(appName, userID, sessionID)]; ok {
		sess.State = state
	}
	return nil
}

func (f *fakeSessionRepo) AppendEvent(ctx context.Context, sessionUUID uuid.UUID, event *domainsession.Event) error {
	f.events[sessionUUID] = append(f.events[sessionUUID], event)
	return nil
}

func (f *fakeSessionRepo) GetEvents(ctx context.Context, sessionUUID uuid.UUID, opts *domainsession.GetEventsOptions) ([]*domainsession.Event, error) {
	return f.events[sessionUUID], nil
}

func (f *fakeSessionRepo) GetAppState(ctx context.Context, appName string) (*domainsession.AppState, error) {
	if state, ok := f.appState[appName]; ok {
		return state, nil
	}
	return nil, errors.ErrNotFound
}

func (f *fakeSessionRepo) SetAppState(ctx context.Context, appName string, state map[string]interface{}) error {
	f.appState[appName] = &domainsession.AppState{AppName: appName, State: state}
	return nil
}

func (f *fakeSessionRepo) GetUserState(ctx context.Context, appName, userID string) (*domainsession.UserState, error) {
	if state, ok := f.userState[appName+":"+userID]; ok {
		return state, nil
	}
	return nil, errors.ErrNotFound
}

func (f *fakeSessionRepo) SetUserState(ctx context.Context, appName, userID string, state map[string]interface{}) error {
	f.userState[appName+":"+userID] = &domainsession.UserState{AppName: appName, UserID: userID, State: state}
	return nil
}
