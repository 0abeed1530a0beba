// Package cms owns the process-wide content client: a lazily constructed
// handle bundling the database connection and the collection registry.
// Construction is single-flight: concurrent first callers share one attempt.
// A failed attempt is not cached, a successful one lives for the process.
package cms

import (
	"context"
	"fmt"
	"sync"

	"github.com/personafol/personafolio/internal/config"
	"github.com/personafol/personafolio/internal/database"
	"github.com/personafol/personafolio/internal/schema"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// Client is the initialized content handle handed to callers. It holds only
// the connection and schema registry, never content.
type Client struct {
	DB     *gorm.DB
	Schema *schema.Registry
	Config *config.Config
}

// BuildFunc constructs the client. It runs at most once concurrently.
type BuildFunc func() (*Client, error)

// Accessor hands out the memoized client, initializing it on first use.
type Accessor struct {
	build BuildFunc

	group  singleflight.Group
	mu     sync.RWMutex
	client *Client
}

// NewAccessor returns an accessor around a custom build function.
func NewAccessor(build BuildFunc) *Accessor {
	return &Accessor{build: build}
}

// NewDefaultAccessor returns an accessor that validates configuration,
// connects to the configured database, runs migrations, and loads the
// default collection registry.
func NewDefaultAccessor(cfg *config.Config) *Accessor {
	return NewAccessor(func() (*Client, error) {
		return Build(cfg)
	})
}

// Build performs one construction of the client.
func Build(cfg *config.Config) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("cms: configuration is required")
	}
	if len(cfg.Secret) < config.MinSecretLength {
		return nil, fmt.Errorf("cms: secret must be at least %d characters", config.MinSecretLength)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("cms: migration failed: %w", err)
	}

	return &Client{
		DB:     db,
		Schema: schema.Default(),
		Config: cfg,
	}, nil
}

// Client returns the cached handle, constructing it on first call. All
// callers that arrive before the first construction resolves await that same
// outcome. On failure nothing is cached and the next call retries.
func (a *Accessor) Client(ctx context.Context) (*Client, error) {
	a.mu.RLock()
	c := a.client
	a.mu.RUnlock()
	if c != nil {
		return c, nil
	}

	ch := a.group.DoChan("init", func() (interface{}, error) {
		// A caller may land here after a concurrent construction finished.
		a.mu.RLock()
		existing := a.client
		a.mu.RUnlock()
		if existing != nil {
			return existing, nil
		}

		built, err := a.build()
		if err != nil {
			return nil, err
		}

		a.mu.Lock()
		a.client = built
		a.mu.Unlock()
		return built, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Client), nil
	case <-ctx.Done():
		// The construction keeps running for the callers still waiting on it;
		// this caller just stops waiting.
		return nil, ctx.Err()
	}
}
