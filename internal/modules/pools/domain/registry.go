package domain

// Registry is the cached view of the backend's pools. Every transition
// returns a fresh value and never writes into slices shared with an earlier
// snapshot.
type Registry struct {
	Pools          []Pool
	LatestVisitors []LatestVisitor
	SelectedPoolID *int
	Loading        bool
	Error          string
}

func (r Registry) Find(id int) (Pool, bool) {
	for _, pool := range r.Pools {
		if pool.ID == id {
			return pool, true
		}
	}
	return Pool{}, false
}

func (r Registry) Selected() (Pool, bool) {
	if r.SelectedPoolID == nil {
		return Pool{}, false
	}
	return r.Find(*r.SelectedPoolID)
}

func (r Registry) BeginLoad() Registry {
	r.Loading = true
	r.Error = ""
	return r
}

// WithPools replaces the list wholesale and selects the first pool when
// nothing is selected yet.
func (r Registry) WithPools(pools []Pool) Registry {
	r.Pools = append([]Pool(nil), pools...)
	r.Loading = false
	if r.SelectedPoolID == nil && len(r.Pools) > 0 {
		r.SelectedPoolID = idPtr(r.Pools[0].ID)
	}
	return r
}

// LoadFailed keeps the previous pools.
func (r Registry) LoadFailed(message string) Registry {
	r.Loading = false
	r.Error = message
	return r
}

func (r Registry) WithLatest(latest []LatestVisitor) Registry {
	r.LatestVisitors = append([]LatestVisitor(nil), latest...)
	return r
}

// Select does not check that id is in Pools.
func (r Registry) Select(id int) Registry {
	r.SelectedPoolID = idPtr(id)
	return r
}

func (r Registry) Append(pool Pool) Registry {
	pools := make([]Pool, 0, len(r.Pools)+1)
	pools = append(pools, r.Pools...)
	r.Pools = append(pools, pool)
	return r
}

// Replace swaps in pool for the cached entry with the same id. Unknown ids
// are ignored.
func (r Registry) Replace(pool Pool) Registry {
	pools := make([]Pool, len(r.Pools))
	copy(pools, r.Pools)
	for idx := range pools {
		if pools[idx].ID == pool.ID {
			pools[idx] = pool
		}
	}
	r.Pools = pools
	return r
}

// Remove drops id from the cache. If it was selected, selection moves to the
// first remaining pool, or to none when the cache is now empty.
func (r Registry) Remove(id int) Registry {
	pools := make([]Pool, 0, len(r.Pools))
	for _, pool := range r.Pools {
		if pool.ID != id {
			pools = append(pools, pool)
		}
	}
	r.Pools = pools
	if r.SelectedPoolID != nil && *r.SelectedPoolID == id {
		r.SelectedPoolID = nil
		if len(pools) > 0 {
			r.SelectedPoolID = idPtr(pools[0].ID)
		}
	}
	return r
}

func (r Registry) LatestFor(poolID int) (LatestVisitor, bool) {
	for _, latest := range r.LatestVisitors {
		if latest.PoolID == poolID {
			return latest, true
		}
	}
	return LatestVisitor{}, false
}

func idPtr(id int) *int {
	return &id
}
