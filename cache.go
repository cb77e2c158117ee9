package sitengine

import (
	"database/sql"
	"sync"
	"time"

	"github.com/imobkit/sitengine/site"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = sql.ErrNoRows

// ListingCache is an in-memory, per-tenant cache of listings with TTL.
// Renders hit this instead of the store so a busy public site does not
// re-query SQLite on every request.
type ListingCache struct {
	mu      sync.RWMutex
	tenants map[string]*cachedListings
	ttl     time.Duration
	store   *Store
}

type cachedListings struct {
	listings []site.Listing
	fetched  time.Time
}

// NewListingCache creates a ListingCache backed by the given Store.
func NewListingCache(s *Store, ttl time.Duration) *ListingCache {
	return &ListingCache{
		tenants: make(map[string]*cachedListings),
		ttl:     ttl,
		store:   s,
	}
}

// Invalidate clears one tenant's cached listings so the next read reloads.
func (c *ListingCache) Invalidate(tenant string) {
	c.mu.Lock()
	delete(c.tenants, tenant)
	c.mu.Unlock()
}

// ListListings returns a tenant's listings, loading from the store when the
// cached copy is absent or stale.
func (c *ListingCache) ListListings(tenant string) ([]site.Listing, error) {
	c.mu.RLock()
	if entry, ok := c.tenants[tenant]; ok && time.Since(entry.fetched) < c.ttl {
		listings := entry.listings
		c.mu.RUnlock()
		return listings, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	// Another request may have reloaded while we waited for the lock.
	if entry, ok := c.tenants[tenant]; ok && time.Since(entry.fetched) < c.ttl {
		return entry.listings, nil
	}
	listings, err := c.store.ListListings(tenant)
	if err != nil {
		return nil, err
	}
	c.tenants[tenant] = &cachedListings{listings: listings, fetched: time.Now()}
	return listings, nil
}

// GetListing returns one listing from the cached set.
func (c *ListingCache) GetListing(tenant, id string) (site.Listing, error) {
	listings, err := c.ListListings(tenant)
	if err != nil {
		return site.Listing{}, err
	}
	for _, l := range listings {
		if l.ID == id {
			return l, nil
		}
	}
	return site.Listing{}, ErrNotFound
}
