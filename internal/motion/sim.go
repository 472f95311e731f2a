package motion

import (
	"math/rand"
	"sync"
	"time"
)

const defaultSimInterval = 100 * time.Millisecond

// SimSampler emits pseudo-random shake vectors on a fixed interval. Used
// when no device feed is configured.
type SimSampler struct {
	interval time.Duration
}

func NewSimSampler(interval time.Duration) *SimSampler {
	if interval <= 0 {
		interval = defaultSimInterval
	}
	return &SimSampler{interval: interval}
}

func (s *SimSampler) Subscribe(h Handler) (Subscription, error) {
	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				h(Vector{X: rand.NormFloat64(), Y: rand.NormFloat64(), Z: rand.NormFloat64()})
			}
		}
	}()
	return &simSubscription{stop: stop}, nil
}

type simSubscription struct {
	once sync.Once
	stop chan struct{}
}

func (s *simSubscription) Unsubscribe() {
	s.once.Do(func() { close(s.stop) })
}
