package memory

import (
	"time"

	"collectible-documenter-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	// Create a cache with a default expiration time of 1 hour, and which
	// purges expired items every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(session *entity.Session) {
	r.cache.Set(session.Email, session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(email string) (*entity.Session, bool) {
	if x, found := r.cache.Get(email); found {
		return x.(*entity.Session), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(email string) {
	r.cache.Delete(email)
}
