package noop

import (
	"context"
	"errors"
	"time"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// ErrCacheMiss is returned for every lookup so callers always re-render.
var ErrCacheMiss = errors.New("noop cache: miss")

// Cache returns a CacheProvider that stores nothing. It stands in when
// component caching is disabled so render paths never branch on nil.
func Cache() interfaces.CacheProvider {
	return cacheAdapter{}
}

type cacheAdapter struct{}

func (cacheAdapter) Get(context.Context, string) (any, error) {
	return nil, ErrCacheMiss
}

func (cacheAdapter) Set(context.Context, string, any, time.Duration) error {
	return nil
}

func (cacheAdapter) Delete(context.Context, string) error { return nil }

func (cacheAdapter) Clear(context.Context) error { return nil }
