package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// NonceRepository stores the anti-forgery state values issued with
// authorization URLs. A nonce can be consumed exactly once, so a replayed
// callback (e.g. via back-navigation) is rejected.
type NonceRepository struct {
	cache *cache.Cache
}

func NewNonceRepository() *NonceRepository {
	c := cache.New(10*time.Minute, 5*time.Minute)
	return &NonceRepository{
		cache: c,
	}
}

func (r *NonceRepository) Put(nonce string) {
	r.cache.Set(nonce, struct{}{}, cache.DefaultExpiration)
}

func (r *NonceRepository) Consume(nonce string) bool {
	if _, found := r.cache.Get(nonce); !found {
		return false
	}
	r.cache.Delete(nonce)
	return true
}
