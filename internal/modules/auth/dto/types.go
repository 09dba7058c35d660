package dto

import "time"

type LoginInput struct {
	Username string
	Password string
}

type RegisterInput struct {
	Email    string
	Username string
	Password string
}

type UserOutput struct {
	ID          int       `json:"id" yaml:"id"`
	Email       string    `json:"email" yaml:"email"`
	Username    string    `json:"username" yaml:"username"`
	IsActive    bool      `json:"is_active" yaml:"is_active"`
	IsSuperuser bool      `json:"is_superuser" yaml:"is_superuser"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
}

type SessionOutput struct {
	Phase   string      `json:"phase" yaml:"phase"`
	User    *UserOutput `json:"user,omitempty" yaml:"user,omitempty"`
	Loading bool        `json:"loading" yaml:"loading"`
	Error   string      `json:"error,omitempty" yaml:"error,omitempty"`
}

type TokenInfoOutput struct {
	Subject   string        `json:"subject" yaml:"subject"`
	Type      string        `json:"type" yaml:"type"`
	ExpiresAt time.Time     `json:"expires_at" yaml:"expires_at"`
	Expired   bool          `json:"expired" yaml:"expired"`
	Remaining time.Duration `json:"remaining" yaml:"remaining"`
}
