package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// PermissionCache is a TTL cache for derived permission sets.
type PermissionCache struct {
	c *gocache.Cache
}

func New(defaultTTL time.Duration) *PermissionCache {
	if defaultTTL <= 0 {
		defaultTTL = 5 * time.Minute
	}
	return &PermissionCache{c: gocache.New(defaultTTL, time.Minute)}
}

func (p *PermissionCache) Get(principal string) ([]string, bool) {
	v, ok := p.c.Get(principal)
	if !ok {
		return nil, false
	}
	permissions, _ := v.([]string)
	return permissions, true
}

func (p *PermissionCache) Set(principal string, permissions []string) {
	p.c.Set(principal, permissions, gocache.DefaultExpiration)
}

func (p *PermissionCache) Invalidate(principal string) {
	p.c.Delete(principal)
}
