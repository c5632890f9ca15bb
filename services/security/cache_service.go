package security

import (
	"fmt"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

type Cache struct {
	init bool
	c    *cache.Cache
}

var (
	CacheInstance Cache
	lock          = &sync.Mutex{}
)

func NewCache() *Cache {
	lock.Lock()
	defer lock.Unlock()

	if !CacheInstance.init {
		CacheInstance = Cache{
			init: true,
		} // <-- thread safe
	}

	return &CacheInstance
}

func (cm *Cache) Start() error {
	// Create a cache with a default expiration time of 5 minutes, and which
	// purges expired items every 10 minutes
	c := cache.New(5*time.Minute, 10*time.Minute)
	cm.c = c
	return nil
}

func (cm *Cache) Insert(k string, x interface{}) {
	cm.c.Set(k, x, cache.DefaultExpiration)
}

func (cm *Cache) Get(key string) (interface{}, error) {
	val, found := cm.c.Get(key)
	if found {
		return val, nil
	}

	return nil, fmt.Errorf("value not found")
}

func (cm *Cache) Stop() error {
	cm.c.Flush()
	return nil
}

// RevokeToken blacklists a JWT until its natural expiry. The auth
// middleware consults TokenRevoked before accepting a bearer token.
func (cm *Cache) RevokeToken(token string, ttl time.Duration) {
	cm.c.Set(revocationKey(token), true, ttl)
}

func (cm *Cache) TokenRevoked(token string) bool {
	_, found := cm.c.Get(revocationKey(token))
	return found
}

func revocationKey(token string) string {
	return fmt.Sprintf("revoked:%s", token)
}
