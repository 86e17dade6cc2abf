package session

import (
	"time"

	"github.com/google/uuid"
)

// Session is one conversation between a user and the assistant.
// Events hold the full turn history so a session can be resumed.
type Session struct {
	ID        uuid.UUID
	AppName   string
	UserID    string
	SessionID string
	State     map[string]interface{}
	Events    []Event
	UpdatedAt time.Time
	CreatedAt time.Time
}

// Event is a single entry in a session: a user message, a tool call
// or a model response.
type Event struct {
	ID            uuid.UUID
	SessionID     uuid.UUID
	EventID       string
	Author        string // agent name or "user"
	Content       map[string]interface{}
	Timestamp     time.Time
	Branch        string
	Partial       bool
	TurnComplete  bool
	Actions       EventActions
	UsageMetadata *UsageMetadata
}

// EventActions carries side effects attached to an event
type EventActions struct {
	TransferToAgent   string
	Escalate          bool
	SkipSummarization bool
	StateDelta        map[string]interface{}
}

// UsageMetadata tracks token usage for an event
type UsageMetadata struct {
	PromptTokenCount     int32
	CandidatesTokenCount int32
	TotalTokenCount      int32
}

// AppState is state shared across every user of an app
type AppState struct {
	AppName string
	State   map[string]interface{}
}

// UserState is state shared across all of a user's sessions
type UserState struct {
	AppName string
	UserID  string
	State   map[string]interface{}
}

// State key prefixes controlling at which level a key is persisted
const (
	KeyPrefixApp  = "_app_"
	KeyPrefixUser = "_user_"
	KeyPrefixTemp = "_temp_"
)
