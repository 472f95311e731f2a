package motion

import "sync"

// PushSampler fans externally reported vectors out to active subscriptions.
// The ingest API feeds it when the motion source is "push".
type PushSampler struct {
	mu   sync.RWMutex
	subs map[*pushSubscription]Handler
}

func NewPushSampler() *PushSampler {
	return &PushSampler{subs: map[*pushSubscription]Handler{}}
}

func (p *PushSampler) Subscribe(h Handler) (Subscription, error) {
	sub := &pushSubscription{sampler: p}
	p.mu.Lock()
	p.subs[sub] = h
	p.mu.Unlock()
	return sub, nil
}

// Push delivers v to every active subscription, synchronously, so callers
// observe emission order.
func (p *PushSampler) Push(v Vector) {
	p.mu.RLock()
	handlers := make([]Handler, 0, len(p.subs))
	for _, h := range p.subs {
		handlers = append(handlers, h)
	}
	p.mu.RUnlock()

	for _, h := range handlers {
		h(v)
	}
}

type pushSubscription struct {
	once    sync.Once
	sampler *PushSampler
}

func (s *pushSubscription) Unsubscribe() {
	s.once.Do(func() {
		s.sampler.mu.Lock()
		delete(s.sampler.subs, s)
		s.sampler.mu.Unlock()
	})
}
