package out

import (
	"context"

	authout "poolwatch/internal/modules/auth/port/out"
	"poolwatch/internal/platform/apiclient"
)

// StoredTokenSource hands the gateway whatever access token is currently
// persisted. A nil store or a missing token yields unauthenticated requests.
func StoredTokenSource(store authout.CredentialStore) apiclient.TokenSource {
	return apiclient.TokenSourceFunc(func(ctx context.Context) string {
		if store == nil {
			return ""
		}
		creds, err := store.Load(ctx)
		if err != nil {
			return ""
		}
		return creds.AccessToken
	})
}
