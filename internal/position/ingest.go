package position

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	lastFixKey = "shaketrack:last_fix"
	lastFixTTL = 5 * time.Minute
)

// IngestProvider serves the most recent device-reported fix. With a redis
// client the fix is also mirrored there so peer instances share the
// last-known position.
type IngestProvider struct {
	redis *redis.Client

	mu      sync.RWMutex
	granted bool
	latest  Fix
	hasFix  bool
}

func NewIngestProvider(redisClient *redis.Client) *IngestProvider {
	return &IngestProvider{redis: redisClient}
}

// SetPermission records the device's location consent decision.
func (p *IngestProvider) SetPermission(granted bool) {
	p.mu.Lock()
	p.granted = granted
	p.mu.Unlock()
}

func (p *IngestProvider) Authorize(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.RLock()
	granted := p.granted
	p.mu.RUnlock()
	if !granted {
		return ErrPermissionDenied
	}
	return nil
}

// Report stores a fresh fix from the device.
func (p *IngestProvider) Report(fix Fix) {
	if fix.Timestamp.IsZero() {
		fix.Timestamp = time.Now()
	}

	p.mu.Lock()
	p.latest = fix
	p.hasFix = true
	p.mu.Unlock()

	if p.redis != nil {
		payload, _ := json.Marshal(fix)
		if err := p.redis.Set(context.Background(), lastFixKey, payload, lastFixTTL).Err(); err != nil {
			log.Printf("redis last-fix mirror error: %v", err)
		}
	}
}

func (p *IngestProvider) CurrentFix(ctx context.Context) (Fix, error) {
	if err := ctx.Err(); err != nil {
		return Fix{}, err
	}

	p.mu.RLock()
	fix, ok := p.latest, p.hasFix
	p.mu.RUnlock()
	if ok {
		return fix, nil
	}

	if p.redis != nil {
		payload, err := p.redis.Get(ctx, lastFixKey).Bytes()
		if err == nil {
			var shared Fix
			if err := json.Unmarshal(payload, &shared); err == nil {
				return shared, nil
			}
		}
	}

	return Fix{}, ErrNoFix
}
