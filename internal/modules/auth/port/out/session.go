package out

import (
	"context"

	"poolwatch/internal/modules/auth/domain"
)

type AuthAPI interface {
	Login(ctx context.Context, username, password string) (domain.Credentials, error)
	Register(ctx context.Context, email, username, password string) (domain.User, error)
	CurrentUser(ctx context.Context) (domain.User, error)
	Refresh(ctx context.Context, refreshToken string) (domain.Credentials, error)
}

// CredentialStore is durable storage for the token pair. Load returns
// apperrors.ErrNoCredentials when either token is absent.
type CredentialStore interface {
	Load(ctx context.Context) (domain.Credentials, error)
	Save(ctx context.Context, creds domain.Credentials) error
	Clear(ctx context.Context) error
}
