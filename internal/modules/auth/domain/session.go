package domain

import (
	"time"

	"poolwatch/internal/platform/timestamp"
)

type User struct {
	ID          int            `json:"id"`
	Email       string         `json:"email"`
	Username    string         `json:"username"`
	IsActive    bool           `json:"is_active"`
	IsSuperuser bool           `json:"is_superuser"`
	CreatedAt   timestamp.Time `json:"created_at"`
}

// Credentials is the bearer pair issued by the backend. Both tokens are
// opaque to the client.
type Credentials struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type,omitempty"`
}

func (c Credentials) Complete() bool {
	return c.AccessToken != "" && c.RefreshToken != ""
}

type Phase string

const (
	PhaseUninitialized Phase = "uninitialized"
	PhaseLoading       Phase = "loading"
	PhaseAuthenticated Phase = "authenticated"
	PhaseAnonymous     Phase = "anonymous"
)

// Session is the client-local view of who is signed in. User is non-nil in
// PhaseAuthenticated, and in PhaseLoading while a call runs on behalf of an
// already signed-in user. Error may be set only in PhaseAnonymous.
type Session struct {
	Phase   Phase
	User    *User
	Loading bool
	Error   string
}

func Initial() Session {
	return Session{Phase: PhaseUninitialized}
}

// Begin marks an in-flight call. The previous error is dropped; the user is
// kept until the call fails, which replaces the whole session.
func (s Session) Begin() Session {
	return Session{Phase: PhaseLoading, Loading: true, User: s.User}
}

func Authenticated(user User) Session {
	return Session{Phase: PhaseAuthenticated, User: &user}
}

func Anonymous(message string) Session {
	return Session{Phase: PhaseAnonymous, Error: message}
}

func (s Session) WithoutError() Session {
	s.Error = ""
	return s
}

type TokenInfo struct {
	Subject   string
	Type      string
	ExpiresAt time.Time
	Expired   bool
}
