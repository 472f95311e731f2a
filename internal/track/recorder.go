package track

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"backend-shaketrack/internal/motion"
	"backend-shaketrack/internal/position"
	"backend-shaketrack/internal/shared/geo"

	"github.com/google/uuid"
)

var (
	ErrAlreadyRecording = errors.New("recording already in progress")
	ErrInitialFix       = errors.New("initial position fix failed")
)

// Options tune recorder behavior where the reference design left open
// questions.
type Options struct {
	// FixTimeout bounds every position lookup. Zero disables the bound;
	// an expired lookup counts as a dropped sample.
	FixTimeout time.Duration
	// ClearOnStart wipes the previous track when a session starts. Off,
	// records accumulate across stop/start.
	ClearOnStart bool
	// StampAtEvent timestamps records at motion-event arrival instead of
	// at fix resolution.
	StampAtEvent bool
}

// OnRecord observes every appended record, in append order.
type OnRecord func(sessionID string, rec Record)

// Recorder fuses motion vectors with position fixes into an append-only
// track. One recorder owns one session at a time.
//
// Motion events arrive in emission order, but each one triggers an
// independent fix lookup, so records land in fix-resolution order. Stop
// unsubscribes immediately; lookups already in flight may still append.
type Recorder struct {
	sampler  motion.Sampler
	provider position.Provider
	opts     Options
	onRecord OnRecord

	appendCh chan Record
	done     chan struct{}
	closing  sync.Once

	// lifecycle serializes Start/Stop; mu guards data for readers and the
	// appender so snapshots never block on a slow initial fix.
	lifecycle sync.Mutex
	mu        sync.RWMutex

	state      State
	records    []Record
	region     RegionHint
	sub        motion.Subscription
	sessionID  string
	startedAt  time.Time
	stoppedAt  time.Time
	authorized bool
	dropped    atomic.Int64
}

func NewRecorder(sampler motion.Sampler, provider position.Provider, opts Options, onRecord OnRecord) *Recorder {
	r := &Recorder{
		sampler:  sampler,
		provider: provider,
		opts:     opts,
		onRecord: onRecord,
		appendCh: make(chan Record, 64),
		done:     make(chan struct{}),
		state:    Idle,
		region:   DefaultRegion,
	}
	go r.appendLoop()
	return r
}

// appendLoop is the only writer of r.records. Fused records arrive here in
// fix-resolution order, which under variable fix latency is not emission
// order.
func (r *Recorder) appendLoop() {
	for {
		select {
		case <-r.done:
			return
		case rec := <-r.appendCh:
			r.mu.Lock()
			r.records = append(r.records, rec)
			sessionID := r.sessionID
			r.mu.Unlock()

			if r.onRecord != nil {
				r.onRecord(sessionID, rec)
			}
		}
	}
}

// Start begins a recording session. Valid only from Idle. The transition
// blocks on the permission gate and an initial fix; either failure leaves
// the recorder Idle.
func (r *Recorder) Start(ctx context.Context) error {
	r.lifecycle.Lock()
	defer r.lifecycle.Unlock()

	if r.State() == Recording {
		return ErrAlreadyRecording
	}

	if !r.authorized {
		if err := r.provider.Authorize(ctx); err != nil {
			return fmt.Errorf("authorize location: %w", err)
		}
		r.authorized = true
	}

	fix, err := r.currentFix(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInitialFix, err)
	}

	sub, err := r.sampler.Subscribe(r.handleMotion)
	if err != nil {
		return fmt.Errorf("subscribe motion source: %w", err)
	}

	r.mu.Lock()
	if r.opts.ClearOnStart {
		r.records = nil
	}
	r.region = RegionHint{Lat: fix.Lat, Lng: fix.Lng, SpanLat: DefaultRegion.SpanLat, SpanLng: DefaultRegion.SpanLng}
	r.sub = sub
	r.sessionID = uuid.NewString()
	r.startedAt = time.Now()
	r.stoppedAt = time.Time{}
	r.state = Recording
	r.mu.Unlock()
	return nil
}

// Stop ends the active session. Idempotent, including before any start.
// Fix lookups already in flight may still append records afterwards.
func (r *Recorder) Stop() {
	r.lifecycle.Lock()
	defer r.lifecycle.Unlock()

	r.mu.Lock()
	sub := r.sub
	r.sub = nil
	if r.state == Recording {
		r.stoppedAt = time.Now()
	}
	r.state = Idle
	r.mu.Unlock()

	if sub != nil {
		sub.Unsubscribe()
	}
}

// Close releases the recorder. Records from still-running lookups are
// discarded once closed.
func (r *Recorder) Close() {
	r.Stop()
	r.closing.Do(func() { close(r.done) })
}

// handleMotion runs once per delivered vector, in emission order. The fix
// lookup resolves independently per event.
func (r *Recorder) handleMotion(v motion.Vector) {
	if r.State() != Recording {
		return
	}

	intensity := v.Magnitude()
	eventTime := time.Now()

	go func() {
		ctx := context.Background()
		if r.opts.FixTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, r.opts.FixTimeout)
			defer cancel()
		}

		fix, err := r.provider.CurrentFix(ctx)
		if err != nil {
			r.dropped.Add(1)
			log.Printf("sample dropped, fix lookup failed: %v", err)
			return
		}

		stamp := time.Now()
		if r.opts.StampAtEvent {
			stamp = eventTime
		}

		select {
		case r.appendCh <- Record{Timestamp: stamp, Lat: fix.Lat, Lng: fix.Lng, Intensity: intensity}:
		case <-r.done:
		}
	}()
}

func (r *Recorder) currentFix(ctx context.Context) (position.Fix, error) {
	if r.opts.FixTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.FixTimeout)
		defer cancel()
	}
	return r.provider.CurrentFix(ctx)
}

func (r *Recorder) State() State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// Snapshot returns a consistent copy of the track in append order.
func (r *Recorder) Snapshot() []Record {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out
}

func (r *Recorder) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

func (r *Recorder) Region() RegionHint {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.region
}

func (r *Recorder) SessionID() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessionID
}

func (r *Recorder) DroppedSamples() int64 {
	return r.dropped.Load()
}

// Summarize aggregates the current track: count, session duration,
// haversine path distance and peak intensity.
func (r *Recorder) Summarize() Summary {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s := Summary{
		SessionID:      r.sessionID,
		State:          r.state,
		RecordCount:    len(r.records),
		DroppedSamples: r.dropped.Load(),
	}

	if !r.startedAt.IsZero() {
		end := time.Now()
		if r.state == Idle && !r.stoppedAt.IsZero() {
			end = r.stoppedAt
		}
		s.DurationSec = int64(end.Sub(r.startedAt).Seconds())
	}

	for i, rec := range r.records {
		if rec.Intensity > s.PeakIntensity {
			s.PeakIntensity = rec.Intensity
		}
		if i > 0 {
			prev := r.records[i-1]
			s.DistanceM += geo.HaversineKm(prev.Lat, prev.Lng, rec.Lat, rec.Lng) * 1000
		}
	}
	return s
}
