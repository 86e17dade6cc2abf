package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atlas/pkg/errors"
)

func TestSplitStateDeltas(t *testing.T) {
	app, user, sess := splitStateDeltas(map[string]interface{}{
		"_app_banner":    "hello",
		"_user_timezone": "UTC",
		"_temp_scratch":  "dropped",
		"topic":          "orders",
	})

	assert.Equal(t, map[string]interface{}{"banner": "hello"}, app)
	assert.Equal(t, map[string]interface{}{"timezone": "UTC"}, user)
	assert.Equal(t, map[string]interface{}{"topic": "orders"}, sess)
}

func TestSplitStateDeltas_BarePrefixStaysSessionScoped(t *testing.T) {
	// A key that is nothing but the prefix has no name to strip
	_, _, sess := splitStateDeltas(map[string]interface{}{"_app_": 1})
	assert.Equal(t, map[string]interface{}{"_app_": 1}, sess)
}

func TestCreateSession_Validation(t *testing.T) {
	svc := NewService(newStubRepo())

	_, err := svc.CreateSession(context.Background(), "", "user", "", nil)
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	_, err = svc.CreateSession(context.Background(), "atlas", "", "", nil)
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}

func TestCreateSession_GeneratesID(t *testing.T) {
	svc := NewService(newStubRepo())

	sess, err := svc.CreateSession(context.Background(), "atlas", "user1", "", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, sess.SessionID)
	assert.NotEqual(t, uuid.Nil, sess.ID)
}

func TestAppendEvent_SkipsPartial(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo)

	sess, err := svc.CreateSession(context.Background(), "atlas", "user1", "s1", nil)
	require.NoError(t, err)

	err = svc.AppendEvent(context.Background(), sess, &Event{Partial: true, Timestamp: time.Now()})
	require.NoError(t, err)
	assert.Empty(t, repo.events[sess.ID])
	assert.Empty(t, sess.Events)
}

func TestAppendEvent_AppliesStateDelta(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo)
	ctx := context.Background()

	sess, err := svc.CreateSession(ctx, "atlas", "user1", "s1", nil)
	require.NoError(t, err)

	err = svc.AppendEvent(ctx, sess, &Event{
		Author:       "agent",
		Timestamp:    time.Now(),
		TurnComplete: true,
		Actions: EventActions{
			StateDelta: map[string]interface{}{
				"topic":          "suppliers",
				"_user_language": "de",
			},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "suppliers", sess.State["topic"])
	assert.Equal(t, map[string]interface{}{"language": "de"}, repo.userState["atlas:user1"].State)
	assert.Len(t, repo.events[sess.ID], 1)
	assert.Len(t, sess.Events, 1)
}

type stubRepo struct {
	sessions  map[string]*Session
	events    map[uuid.UUID][]*Event
	appState  map[string]*AppState
	userState map[string]*UserState
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		sessions:  make(map[string]*Session),
		events:    make(map[uuid.UUID][]*Event),
		appState:  make(map[string]*AppState),
		userState: make(map[string]*UserState),
	}
}

func (r *stubRepo) key(appName, userID, sessionID string) string {
	return appName + ":" + userID + ":" + sessionID
}

func (r *stubRepo) Create(ctx context.Context, sess *Session) error {
	r.sessions[r.key(sess.AppName, sess.UserID, sess.SessionID)] = sess
	return nil
}

func (r *stubRepo) Get(ctx context.Context, appName, userID, sessionID string, opts *GetOptions) (*Session, error) {
	if sess, ok := r.sessions[r.key(appName, userID, sessionID)]; ok {
		return sess, nil
	}
	return nil, errors.ErrNotFound
}

func (r *stubRepo) List(ctx context.Context, appName, userID string) ([]*Session, error) {
	var out []*Session
	for _, sess := range r.sessions {
		if sess.AppName == appName && (userID == "" || sess.UserID == userID) {
			out = append(out, sess)
		}
	}
	return out, nil
}

func (r *stubRepo) Delete(ctx context.Context, appName, userID, sessionID string) error {
	delete(r.sessions, r.key(appName, userID, sessionID))
	return nil
}

func (r *stubRepo) UpdateState(ctx context.Context, appName, userID, sessionID string, state map[string]interface{}) error {
	if sess, ok := r.sessions[r.key(appName, userID, sessionID)]; ok {
		sess.State = state
	}
	return nil
}

func (r *stubRepo) AppendEvent(ctx context.Context, sessionUUID uuid.UUID, event *Event) error {
	r.events[sessionUUID] = append(r.events[sessionUUID], event)
	return nil
}

func (r *stubRepo) GetEvents(ctx context.Context, sessionUUID uuid.UUID, opts *GetEventsOptions) ([]*Event, error) {
	return r.events[sessionUUID], nil
}

func (r *stubRepo) GetAppState(ctx context.Context, appName string) (*AppState, error) {
	if st, ok := r.appState[appName]; ok {
		return st, nil
	}
	return nil, errors.ErrNotFound
}

func (r *stubRepo) SetAppState(ctx context.Context, appName string, state map[string]interface{}) error {
	r.appState[appName] = &AppState{AppName: appName, State: state}
	return nil
}

func (r *stubRepo) GetUserState(ctx context.Context, appName, userID string) (*UserState, error) {
	if st, ok := r.userState[appName+":"+userID]; ok {
		return st, nil
	}
	return nil, errors.ErrNotFound
}

func (r *stubRepo) SetUserState(ctx context.Context, appName, userID string, state map[string]interface{}) error {
	r.userState[appName+":"+userID] = &UserState{AppName: appName, UserID: userID, State: state}
	return nil
}
