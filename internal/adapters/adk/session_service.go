package adk

import (
	"context"
	"encoding/json"
	"iter"
	"time"

	"google.golang.org/adk/session"
	"google.golang.org/genai"

	domainsession "atlas/internal/domain/session"
	"atlas/pkg/errors"
	"atlas/pkg/logger"
)

// SessionService exposes the domain session service through ADK's
// session.Service interface, giving the runner durable sessions.
type SessionService struct {
	sessions *domainsession.Service
	log      *logger.Logger
}

// NewSessionService creates the ADK session adapter
func NewSessionService(sessions *domainsession.Service) session.Service {
	return &SessionService{
		sessions: sessions,
		log:      logger.Get().With("component", "adk_session_adapter"),
	}
}

// Create creates a new session
func (s *SessionService) Create(ctx context.Context, req *session.CreateRequest) (*session.CreateResponse, error) {
	if req == nil || req.AppName == "" || req.UserID == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "app_name and user_id are required")
	}

	sess, err := s.sessions.CreateSession(ctx, req.AppName, req.UserID, req.SessionID, req.State)
	if err != nil {
		return nil, err
	}

	return &session.CreateResponse{Session: toADKSession(sess)}, nil
}

// Get retrieves a session with its history
func (s *SessionService) Get(ctx context.Context, req *session.GetRequest) (*session.GetResponse, error) {
	if req == nil || req.AppName == "" || req.UserID == "" || req.SessionID == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "app_name, user_id, and session_id are required")
	}

	sess, err := s.sessions.GetSession(ctx, req.AppName, req.UserID, req.SessionID, &domainsession.GetOptions{
		NumRecentEvents: req.NumRecentEvents,
		After:           req.After,
	})
	if err != nil {
		return nil, err
	}

	return &session.GetResponse{Session: toADKSession(sess)}, nil
}

// List lists sessions for an app and optional user
func (s *SessionService) List(ctx context.Context, req *session.ListRequest) (*session.ListResponse, error) {
	if req == nil || req.AppName == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "app_name is required")
	}

	sessions, err := s.sessions.ListSessions(ctx, req.AppName, req.UserID)
	if err != nil {
		return nil, err
	}

	adkSessions := make([]session.Session, len(sessions))
	for i, sess := range sessions {
		adkSessions[i] = toADKSession(sess)
	}

	return &session.ListResponse{Sessions: adkSessions}, nil
}

// Delete deletes a session
func (s *SessionService) Delete(ctx context.Context, req *session.DeleteRequest) error {
	if req == nil || req.AppName == "" || req.UserID == "" || req.SessionID == "" {
		return errors.Wrap(errors.ErrInvalidInput, "app_name, user_id, and session_id are required")
	}

	return s.sessions.DeleteSession(ctx, req.AppName, req.UserID, req.SessionID)
}

// AppendEvent persists an event on a session.
// The stored session is resolved first so the event rows always carry
// the session's real row id.
func (s *SessionService) AppendEvent(ctx context.Context, sess session.Session, event *session.Event) error {
	if sess == nil || event == nil {
		return errors.Wrap(errors.ErrInvalidInput, "session and event are required")
	}

	stored, err := s.sessions.GetSession(ctx, sess.AppName(), sess.UserID(), sess.ID(), &domainsession.GetOptions{
		NumRecentEvents: 1,
	})
	if err != nil {
		return errors.Wrap(err, "resolve session")
	}

	domainEvent, err := toDomainEvent(event)
	if err != nil {
		return errors.Wrap(err, "convert event")
	}

	return s.sessions.AppendEvent(ctx, stored, domainEvent)
}

func toADKSession(sess *domainsession.Session) session.Session {
	return &adkSession{
		appName:      sess.AppName,
		userID:       sess.UserID,
		sessionID:    sess.SessionID,
		state:        sess.State,
		events:       toADKEvents(sess.Events),
		lastUpdateAt: sess.UpdatedAt,
	}
}

// toDomainEvent converts an ADK event for storage. The genai content is
// round-tripped through JSON so it survives as a plain map.
func toDomainEvent(adkEvent *session.Event) (*domainsession.Event, error) {
	contentMap := make(map[string]interface{})
	if adkEvent.LLMResponse.Content != nil {
		contentBytes, err := json.Marshal(adkEvent.LLMResponse.Content)
		if err != nil {
			return nil, errors.Wrap(err, "marshal content")
		}
		if err := json.Unmarshal(contentBytes, &contentMap); err != nil {
			return nil, errors.Wrap(err, "unmarshal content")
		}
	}

	var usage *domainsession.UsageMetadata
	if adkEvent.UsageMetadata != nil {
		usage = &domainsession.UsageMetadata{
			PromptTokenCount:     adkEvent.UsageMetadata.PromptTokenCount,
			CandidatesTokenCount: adkEvent.UsageMetadata.CandidatesTokenCount,
			TotalTokenCount:      adkEvent.UsageMetadata.TotalTokenCount,
		}
	}

	return &domainsession.Event{
		EventID:      adkEvent.ID,
		Author:       adkEvent.Author,
		Content:      contentMap,
		Timestamp:    adkEvent.Timestamp,
		Branch:       adkEvent.Branch,
		Partial:      adkEvent.LLMResponse.Partial,
		TurnComplete: adkEvent.TurnComplete,
		Actions: domainsession.EventActions{
			TransferToAgent:   adkEvent.Actions.TransferToAgent,
			Escalate:          adkEvent.Actions.Escalate,
			SkipSummarization: adkEvent.Actions.SkipSummarization,
			StateDelta:        adkEvent.Actions.StateDelta,
		},
		UsageMetadata: usage,
	}, nil
}

func toADKEvents(events []domainsession.Event) []*session.Event {
	adkEvents := make([]*session.Event, len(events))
	for i := range events {
		adkEvents[i] = toADKEvent(&events[i])
	}
	return adkEvents
}

func toADKEvent(domainEvent *domainsession.Event) *session.Event {
	var content *genai.Content
	if len(domainEvent.Content) > 0 {
		contentBytes, _ := json.Marshal(domainEvent.Content)
		content = &genai.Content{}
		// Tolerate events stored by older builds
		_ = json.Unmarshal(contentBytes, content)
	}

	var usage *genai.GenerateContentResponseUsageMetadata
	if domainEvent.UsageMetadata != nil {
		usage = &genai.GenerateContentResponseUsageMetadata{
			PromptTokenCount:     domainEvent.UsageMetadata.PromptTokenCount,
			CandidatesTokenCount: domainEvent.UsageMetadata.CandidatesTokenCount,
			TotalTokenCount:      domainEvent.UsageMetadata.TotalTokenCount,
		}
	}

	event := &session.Event{
		ID:           domainEvent.EventID,
		Author:       domainEvent.Author,
		Timestamp:    domainEvent.Timestamp,
		Branch:       domainEvent.Branch,
		Actions: session.EventActions{
			TransferToAgent:   domainEvent.Actions.TransferToAgent,
			Escalate:          domainEvent.Actions.Escalate,
			SkipSummarization: domainEvent.Actions.SkipSummarization,
			StateDelta:        domainEvent.Actions.StateDelta,
		},
	}
	event.LLMResponse.Content = content
	event.LLMResponse.Partial = domainEvent.Partial
	event.LLMResponse.TurnComplete = domainEvent.TurnComplete
	event.LLMResponse.UsageMetadata = usage

	return event
}

// adkSession implements session.Session over a stored domain session
type adkSession struct {
	appName      string
	userID       string
	sessionID    string
	state        map[string]interface{}
	events       []*session.Event
	lastUpdateAt time.Time
}

func (s *adkSession) AppName() string { return s.appName }
func (s *adkSession) UserID() string  { return s.userID }
func (s *adkSession) ID() string      { return s.sessionID }

func (s *adkSession) State() session.State {
	return &adkState{state: s.state}
}

func (s *adkSession) Events() session.Events {
	return &adkEvents{events: s.events}
}

func (s *adkSession) LastUpdateTime() time.Time {
	return s.lastUpdateAt
}

// adkState implements session.State
type adkState struct {
	state map[string]interface{}
}

func (s *adkState) Get(key string) (interface{}, error) {
	if val, ok := s.state[key]; ok {
		return val, nil
	}
	return nil, session.ErrStateKeyNotExist
}

func (s *adkState) Set(key string, val interface{}) error {
	s.state[key] = val
	return nil
}

func (s *adkState) All() iter.Seq2[string, interface{}] {
	return func(yield func(string, interface{}) bool) {
		for key, val := range s.state {
			if !yield(key, val) {
				return
			}
		}
	}
}

// adkEvents implements session.Events
type adkEvents struct {
	events []*session.Event
}

func (e *adkEvents) Len() int {
	return len(e.events)
}

func (e *adkEvents) At(i int) *session.Event {
	if i < 0 || i >= len(e.events) {
		return nil
	}
	return e.events[i]
}

func (e *adkEvents) All() iter.Seq[*session.Event] {
	return func(yield func(*session.Event) bool) {
		for _, event := range e.events {
			if !yield(event) {
				return
			}
		}
	}
}
