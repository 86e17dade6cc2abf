package adk_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/adk/session"

	"atlas/internal/adapters/adk"
	domainsession "atlas/internal/domain/session"
	"atlas/internal/repository/postgres"
	"atlas/internal/testsupport"
)

// Events must be stored against the session's row id, not the public
// session_id, or the foreign key on session_events breaks.
func TestADKSessionService_AppendEvent(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping database test in short mode")
	}

	helper := testsupport.NewTestPostgres(t)
	repo := postgres.NewSessionRepository(helper.Tx())
	svc := adk.NewSessionService(domainsession.NewService(repo))
	ctx := context.Background()

	createResp, err := svc.Create(ctx, &session.CreateRequest{
		AppName: "atlas_test",
		UserID:  "user123",
	})
	require.NoError(t, err)
	adkSession := createResp.Session

	event := &session.Event{
		ID:        fmt.Sprintf("event_%d", time.Now().UnixNano()),
		Timestamp: time.Now(),
		Author:    "user",
	}
	event.TurnComplete = true

	require.NoError(t, svc.AppendEvent(ctx, adkSession, event))

	getResp, err := svc.Get(ctx, &session.GetRequest{
		AppName:         adkSession.AppName(),
		UserID:          adkSession.UserID(),
		SessionID:       adkSession.ID(),
		NumRecentEvents: 10,
	})
	require.NoError(t, err)
	require.Equal(t, 1, getResp.Session.Events().Len())
	assert.Equal(t, "user", getResp.Session.Events().At(0).Author)
}

func TestADKSessionService_MultipleEvents(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping database test in short mode")
	}

	helper := testsupport.NewTestPostgres(t)
	repo := postgres.NewSessionRepository(helper.Tx())
	svc := adk.NewSessionService(domainsession.NewService(repo))
	ctx := context.Background()

	createResp, err := svc.Create(ctx, &session.CreateRequest{
		AppName: "atlas_test",
		UserID:  "user456",
	})
	require.NoError(t, err)
	adkSession := createResp.Session

	base := time.Now()
	for i := 0; i < 5; i++ {
		event := &session.Event{
			ID:        fmt.Sprintf("event_%d_%d", base.UnixNano(), i),
			Timestamp: base.Add(time.Duration(i) * time.Second),
			Author:    "agent",
		}
		event.TurnComplete = true

		require.NoError(t, svc.AppendEvent(ctx, adkSession, event))
	}

	getResp, err := svc.Get(ctx, &session.GetRequest{
		AppName:         adkSession.AppName(),
		UserID:          adkSession.UserID(),
		SessionID:       adkSession.ID(),
		NumRecentEvents: 10,
	})
	require.NoError(t, err)
	require.Equal(t, 5, getResp.Session.Events().Len())

	// Events replay oldest first, with the newest limit applied
	recent, err := svc.Get(ctx, &session.GetRequest{
		AppName:         adkSession.AppName(),
		UserID:          adkSession.UserID(),
		SessionID:       adkSession.ID(),
		NumRecentEvents: 2,
	})
	require.NoError(t, err)
	require.Equal(t, 2, recent.Session.Events().Len())
	assert.True(t, recent.Session.Events().At(0).Timestamp.Before(recent.Session.Events().At(1).Timestamp))
}

func TestADKSessionService_PartialEventsNotPersisted(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping database test in short mode")
	}

	helper := testsupport.NewTestPostgres(t)
	repo := postgres.NewSessionRepository(helper.Tx())
	svc := adk.NewSessionService(domainsession.NewService(repo))
	ctx := context.Background()

	createResp, err := svc.Create(ctx, &session.CreateRequest{
		AppName: "atlas_test",
		UserID:  "user789",
	})
	require.NoError(t, err)
	adkSession := createResp.Session

	partial := &session.Event{
		ID:        fmt.Sprintf("event_%d", time.Now().UnixNano()),
		Timestamp: time.Now(),
		Author:    "agent",
	}
	partial.LLMResponse.Partial = true

	require.NoError(t, svc.AppendEvent(ctx, adkSession, partial))

	getResp, err := svc.Get(ctx, &session.GetRequest{
		AppName:   adkSession.AppName(),
		UserID:    adkSession.UserID(),
		SessionID: adkSession.ID(),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, getResp.Session.Events().Len())
}
