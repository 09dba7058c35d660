package out

import (
	"context"
	"sync"

	"poolwatch/internal/modules/auth/domain"
	authout "poolwatch/internal/modules/auth/port/out"
	apperrors "poolwatch/internal/platform/errors"
)

// MemoryCredentialStore lives only as long as the process.
type MemoryCredentialStore struct {
	mu    sync.Mutex
	creds domain.Credentials
}

func NewMemoryCredentialStore() authout.CredentialStore {
	return &MemoryCredentialStore{}
}

func (s *MemoryCredentialStore) Load(context.Context) (domain.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.creds.Complete() {
		return domain.Credentials{}, apperrors.ErrNoCredentials
	}
	return s.creds, nil
}

func (s *MemoryCredentialStore) Save(_ context.Context, creds domain.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = creds
	return nil
}

func (s *MemoryCredentialStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = domain.Credentials{}
	return nil
}
