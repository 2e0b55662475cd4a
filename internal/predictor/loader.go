package predictor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/Ebi50/training28-sub000/internal/logger"
)

var ErrModelUnavailable = errors.New("model unavailable")

const DefaultCacheTTL = time.Hour

// Cache holds a loaded model and when it was read.
type Cache struct {
	Model    *LinearModel
	LoadedAt time.Time
}

// Fresh reports whether the cached model is younger than ttl at now.
func (c Cache) Fresh(now time.Time, ttl time.Duration) bool {
	return c.Model != nil && now.Sub(c.LoadedAt) < ttl
}

// Loader reads a JSON model from disk and keeps it for a TTL.
type Loader struct {
	path string
	ttl  time.Duration
	now  func() time.Time

	mu    sync.Mutex
	cache Cache
}

func NewLoader(path string, ttl time.Duration) *Loader {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Loader{path: path, ttl: ttl, now: time.Now}
}

// Load returns the cached model while it is fresh and re-reads the file otherwise.
func (l *Loader) Load(ctx context.Context) (*LinearModel, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if l.cache.Fresh(now, l.ttl) {
		return l.cache.Model, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if l.path == "" {
		return nil, fmt.Errorf("%w: no model path configured", ErrModelUnavailable)
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	var m LinearModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidModel, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	l.cache = Cache{Model: &m, LoadedAt: now}
	logger.Debug("Loaded stress model", "path", l.path, "version", m.Version)
	return &m, nil
}

// Snapshot returns the current cache contents.
func (l *Loader) Snapshot() Cache {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cache
}

// Invalidate drops the cached model.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = Cache{}
}
