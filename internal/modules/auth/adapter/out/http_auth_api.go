package out

import (
	"context"
	"net/url"

	"poolwatch/internal/modules/auth/domain"
	authout "poolwatch/internal/modules/auth/port/out"
	"poolwatch/internal/platform/apiclient"
)

type HTTPAuthAPI struct {
	client *apiclient.Client
}

func NewHTTPAuthAPI(client *apiclient.Client) authout.AuthAPI {
	return &HTTPAuthAPI{client: client}
}

type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (a *HTTPAuthAPI) Login(ctx context.Context, username, password string) (domain.Credentials, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)
	creds := domain.Credentials{}
	if err := a.client.PostForm(ctx, "/auth/login", form, &creds); err != nil {
		return domain.Credentials{}, err
	}
	return creds, nil
}

func (a *HTTPAuthAPI) Register(ctx context.Context, email, username, password string) (domain.User, error) {
	user := domain.User{}
	body := registerRequest{Email: email, Username: username, Password: password}
	if err := a.client.PostJSON(ctx, "/auth/register", nil, body, &user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (a *HTTPAuthAPI) CurrentUser(ctx context.Context) (domain.User, error) {
	user := domain.User{}
	if err := a.client.Get(ctx, "/auth/me", nil, &user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// Refresh passes the refresh token as a query parameter, which is what the
// backend's refresh route reads.
func (a *HTTPAuthAPI) Refresh(ctx context.Context, refreshToken string) (domain.Credentials, error) {
	query := url.Values{}
	query.Set("refresh_token", refreshToken)
	creds := domain.Credentials{}
	if err := a.client.PostJSON(ctx, "/auth/refresh", query, nil, &creds); err != nil {
		return domain.Credentials{}, err
	}
	return creds, nil
}
