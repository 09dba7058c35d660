// Package selectors derives read-only views from the session and pool
// registry stores. Each view recomputes from its sources on every read and
// holds no state of its own.
package selectors

import (
	authdto "poolwatch/internal/modules/auth/dto"
	poolsdto "poolwatch/internal/modules/pools/dto"
	"poolwatch/internal/platform/observable"
)

func isAuthenticated(s authdto.SessionOutput) bool {
	return s.User != nil
}

func isAdmin(s authdto.SessionOutput) bool {
	return s.User != nil && s.User.IsSuperuser
}

func currentUser(s authdto.SessionOutput) *authdto.UserOutput {
	return s.User
}

// selectedPool returns nil when nothing is selected or the selected id is
// not in the registry.
func selectedPool(r poolsdto.RegistryOutput) *poolsdto.PoolOutput {
	if r.SelectedPoolID == nil {
		return nil
	}
	for i := range r.Pools {
		if r.Pools[i].ID == *r.SelectedPoolID {
			pool := r.Pools[i]
			return &pool
		}
	}
	return nil
}

func IsAuthenticated(session observable.Readable[authdto.SessionOutput]) observable.Readable[bool] {
	return observable.Derive(session, isAuthenticated)
}

func IsAdmin(session observable.Readable[authdto.SessionOutput]) observable.Readable[bool] {
	return observable.Derive(session, isAdmin)
}

func CurrentUser(session observable.Readable[authdto.SessionOutput]) observable.Readable[*authdto.UserOutput] {
	return observable.Derive(session, currentUser)
}

func SelectedPool(registry observable.Readable[poolsdto.RegistryOutput]) observable.Readable[*poolsdto.PoolOutput] {
	return observable.Derive(registry, selectedPool)
}

// CanScrape is true for an admin with a pool selected.
func CanScrape(session observable.Readable[authdto.SessionOutput], registry observable.Readable[poolsdto.RegistryOutput]) observable.Readable[bool] {
	return observable.Derive2(session, registry, func(s authdto.SessionOutput, r poolsdto.RegistryOutput) bool {
		return isAdmin(s) && selectedPool(r) != nil
	})
}
