package model

import "context"

// Role identifies the author of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one exchanged chat message.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// SessionState is the per-conversation aggregate threaded through every turn.
// IsComplete and DBWritten are monotone: once true they are never reset, and
// DBWritten implies IsComplete.
type SessionState struct {
	SessionID    string      `json:"session_id"`
	Messages     []Message   `json:"messages"`
	Patient      PatientData `json:"patient_data"`
	Ward         Ward        `json:"ward,omitempty"`
	MissingField Field       `json:"missing_field,omitempty"`
	IsComplete   bool        `json:"is_complete"`
	DBWritten    bool        `json:"db_written"`
}

// NewSessionState returns the initial state for a fresh session identifier.
func NewSessionState(sessionID string) *SessionState {
	return &SessionState{
		SessionID: sessionID,
		Messages:  []Message{},
	}
}

// Append records one message at the end of the conversation history.
func (s *SessionState) Append(role Role, content string) {
	s.Messages = append(s.Messages, Message{Role: role, Content: content})
}

// Clone returns a deep copy so stored state cannot alias in-flight mutations.
func (s *SessionState) Clone() *SessionState {
	c := *s
	c.Messages = make([]Message, len(s.Messages))
	copy(c.Messages, s.Messages)
	if s.Patient.Age != nil {
		age := *s.Patient.Age
		c.Patient.Age = &age
	}
	return &c
}

// TurnInput is one incoming user message addressed to a session.
type TurnInput struct {
	SessionID string
	Message   string
}

// SessionRepository holds one conversation state per session identifier
// across turns. Implementations do not need to guard against concurrent
// turns for the same session id; callers must serialise those.
type SessionRepository interface {
	// GetOrCreate returns the stored state for the session, or a freshly
	// initialised one when the identifier has not been seen (or has expired).
	GetOrCreate(ctx context.Context, sessionID string) (*SessionState, error)

	// Save durably associates the updated state with the identifier for the
	// next turn.
	Save(ctx context.Context, sessionID string, state *SessionState) error
}
