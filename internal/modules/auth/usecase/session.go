package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	hclog "github.com/hashicorp/go-hclog"

	"poolwatch/internal/modules/auth/domain"
	authdto "poolwatch/internal/modules/auth/dto"
	authin "poolwatch/internal/modules/auth/port/in"
	authout "poolwatch/internal/modules/auth/port/out"
	"poolwatch/internal/modules/auth/service"
	apperrors "poolwatch/internal/platform/errors"
	"poolwatch/internal/platform/observable"
)

// Interactor owns the session state and is the only writer of credentials.
// A nil store means the process has no durable storage at all.
type Interactor struct {
	api    authout.AuthAPI
	store  authout.CredentialStore
	tokens *service.TokenInspector
	log    hclog.Logger

	state *observable.Store[domain.Session]
	view  observable.Readable[authdto.SessionOutput]
}

func NewInteractor(api authout.AuthAPI, store authout.CredentialStore, tokens *service.TokenInspector, logger hclog.Logger) authin.Usecase {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	state := observable.NewStore(domain.Initial())
	return &Interactor{
		api:    api,
		store:  store,
		tokens: tokens,
		log:    logger.Named("session"),
		state:  state,
		view:   observable.Derive[domain.Session](state, toOutput),
	}
}

func (i *Interactor) State() observable.Readable[authdto.SessionOutput] {
	return i.view
}

// Initialize restores a persisted session. A stored token the backend no
// longer accepts is discarded without reporting an error.
func (i *Interactor) Initialize(ctx context.Context) {
	if i.store == nil {
		i.state.Set(domain.Anonymous(""))
		return
	}
	i.state.Update(domain.Session.Begin)
	if _, err := i.store.Load(ctx); err != nil {
		if !errors.Is(err, apperrors.ErrNoCredentials) {
			i.log.Warn("read stored credentials", "error", err)
		}
		i.state.Set(domain.Anonymous(""))
		return
	}
	user, err := i.api.CurrentUser(ctx)
	if err != nil {
		i.log.Debug("stored session rejected", "error", err)
		i.clearCredentials(ctx)
		i.state.Set(domain.Anonymous(""))
		return
	}
	i.state.Set(domain.Authenticated(user))
}

func (i *Interactor) Login(ctx context.Context, input authdto.LoginInput) bool {
	i.state.Update(domain.Session.Begin)
	if err := i.signIn(ctx, input.Username, input.Password); err != nil {
		i.fail(ctx, "login", err)
		return false
	}
	return true
}

// Register creates the account and then signs in with the same credentials.
func (i *Interactor) Register(ctx context.Context, input authdto.RegisterInput) bool {
	i.state.Update(domain.Session.Begin)
	if strings.TrimSpace(input.Email) == "" {
		i.fail(ctx, "register", fmt.Errorf("%w: email is required", apperrors.ErrInvalidInput))
		return false
	}
	if _, err := i.api.Register(ctx, input.Email, input.Username, input.Password); err != nil {
		i.fail(ctx, "register", err)
		return false
	}
	if err := i.signIn(ctx, input.Username, input.Password); err != nil {
		i.fail(ctx, "login after register", err)
		return false
	}
	return true
}

// Refresh exchanges the stored refresh token for a new pair. It is only ever
// called explicitly.
func (i *Interactor) Refresh(ctx context.Context) bool {
	i.state.Update(domain.Session.Begin)
	if i.store == nil {
		i.fail(ctx, "refresh", apperrors.ErrStorageUnavailable)
		return false
	}
	current, err := i.store.Load(ctx)
	if err != nil {
		i.fail(ctx, "refresh", err)
		return false
	}
	creds, err := i.api.Refresh(ctx, current.RefreshToken)
	if err != nil {
		i.fail(ctx, "refresh", err)
		return false
	}
	if err := i.establish(ctx, creds); err != nil {
		i.fail(ctx, "refresh", err)
		return false
	}
	return true
}

// Logout never touches the network.
func (i *Interactor) Logout(ctx context.Context) {
	i.clearCredentials(ctx)
	i.state.Set(domain.Anonymous(""))
}

func (i *Interactor) ClearError() {
	i.state.Update(domain.Session.WithoutError)
}

func (i *Interactor) TokenInfo(ctx context.Context) (authdto.TokenInfoOutput, error) {
	if i.store == nil {
		return authdto.TokenInfoOutput{}, apperrors.ErrStorageUnavailable
	}
	creds, err := i.store.Load(ctx)
	if err != nil {
		return authdto.TokenInfoOutput{}, err
	}
	info, err := i.tokens.Inspect(creds.AccessToken)
	if err != nil {
		return authdto.TokenInfoOutput{}, err
	}
	out := authdto.TokenInfoOutput{
		Subject:   info.Subject,
		Type:      info.Type,
		ExpiresAt: info.ExpiresAt,
		Expired:   info.Expired,
	}
	if !info.Expired && !info.ExpiresAt.IsZero() {
		out.Remaining = info.ExpiresAt.Sub(i.tokens.Now())
	}
	return out, nil
}

func (i *Interactor) signIn(ctx context.Context, username, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return fmt.Errorf("%w: username and password are required", apperrors.ErrInvalidInput)
	}
	if i.store == nil {
		return apperrors.ErrStorageUnavailable
	}
	creds, err := i.api.Login(ctx, username, password)
	if err != nil {
		return err
	}
	return i.establish(ctx, creds)
}

// establish persists creds and fetches the user they belong to.
func (i *Interactor) establish(ctx context.Context, creds domain.Credentials) error {
	if !creds.Complete() {
		return fmt.Errorf("backend returned an incomplete token pair")
	}
	if err := i.store.Save(ctx, creds); err != nil {
		return fmt.Errorf("persist credentials: %w", err)
	}
	user, err := i.api.CurrentUser(ctx)
	if err != nil {
		return err
	}
	i.log.Info("signed in", "username", user.Username)
	i.state.Set(domain.Authenticated(user))
	return nil
}

func (i *Interactor) fail(ctx context.Context, op string, err error) {
	i.log.Warn(op+" failed", "error", err)
	i.clearCredentials(ctx)
	i.state.Set(domain.Anonymous(err.Error()))
}

func (i *Interactor) clearCredentials(ctx context.Context) {
	if i.store == nil {
		return
	}
	if err := i.store.Clear(ctx); err != nil {
		i.log.Error("clear stored credentials", "error", err)
	}
}

func toOutput(s domain.Session) authdto.SessionOutput {
	out := authdto.SessionOutput{Phase: string(s.Phase), Loading: s.Loading, Error: s.Error}
	if s.User != nil {
		out.User = &authdto.UserOutput{
			ID:          s.User.ID,
			Email:       s.User.Email,
			Username:    s.User.Username,
			IsActive:    s.User.IsActive,
			IsSuperuser: s.User.IsSuperuser,
			CreatedAt:   s.User.CreatedAt.Time,
		}
	}
	return out
}
