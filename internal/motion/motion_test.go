package motion

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
)

func TestMagnitude(t *testing.T) {
	v := Vector{X: 3, Y: 4, Z: 0}
	if got := v.Magnitude(); got != 50.0 {
		t.Fatalf("Magnitude(3,4,0) = %v, want 50", got)
	}
	if got := (Vector{}).Magnitude(); got != 0 {
		t.Fatalf("Magnitude(0,0,0) = %v, want 0", got)
	}
}

func TestPushSamplerDeliversInOrder(t *testing.T) {
	sampler := NewPushSampler()

	var mu sync.Mutex
	var got []Vector
	sub, err := sampler.Subscribe(func(v Vector) {
		mu.Lock()
		got = append(got, v)
		mu.Unlock()
	})
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	sampler.Push(Vector{X: 1})
	sampler.Push(Vector{X: 2})
	sampler.Push(Vector{X: 3})

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 3 || got[0].X != 1 || got[1].X != 2 || got[2].X != 3 {
		t.Fatalf("unexpected delivery: %+v", got)
	}
	sub.Unsubscribe()
}

func TestPushSamplerUnsubscribeIdempotent(t *testing.T) {
	sampler := NewPushSampler()

	delivered := 0
	sub, err := sampler.Subscribe(func(Vector) { delivered++ })
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	sub.Unsubscribe()
	sub.Unsubscribe()

	sampler.Push(Vector{X: 1})
	if delivered != 0 {
		t.Fatalf("expected no delivery after unsubscribe, got %d", delivered)
	}
}

func TestSimSamplerEmitsAndStops(t *testing.T) {
	sampler := NewSimSampler(time.Millisecond)

	ch := make(chan Vector, 1)
	sub, err := sampler.Subscribe(func(v Vector) {
		select {
		case ch <- v:
		default:
		}
	})
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatalf("timeout waiting for simulated vector")
	}

	sub.Unsubscribe()
	sub.Unsubscribe()
}

type fakeKafkaReader struct {
	msgs   []kafka.Message
	i      int
	closed bool
}

func (r *fakeKafkaReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if r.i < len(r.msgs) {
		msg := r.msgs[r.i]
		r.i++
		return msg, nil
	}
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (r *fakeKafkaReader) Close() error {
	r.closed = true
	return nil
}

func TestKafkaSamplerRequiresConfig(t *testing.T) {
	sampler := &KafkaSampler{}
	if _, err := sampler.Subscribe(func(Vector) {}); err == nil {
		t.Fatalf("expected error without brokers/topic")
	}
}

func TestKafkaSamplerDecodesVectors(t *testing.T) {
	reader := &fakeKafkaReader{msgs: []kafka.Message{
		{Value: []byte(`{"x":3,"y":4,"z":0}`)},
		{Value: []byte(`not-json`)},
		{Value: []byte(`{"x":1,"y":0,"z":0}`)},
	}}

	oldNew := newKafkaReader
	newKafkaReader = func([]string, string, string) kafkaReader { return reader }
	defer func() { newKafkaReader = oldNew }()

	ch := make(chan Vector, 4)
	sampler := &KafkaSampler{Brokers: []string{"localhost:9092"}, Topic: "motion"}
	sub, err := sampler.Subscribe(func(v Vector) { ch <- v })
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	first := <-ch
	if first.Magnitude() != 50 {
		t.Fatalf("unexpected first vector: %+v", first)
	}
	second := <-ch
	if second.X != 1 {
		t.Fatalf("expected bad payload skipped, got %+v", second)
	}

	sub.Unsubscribe()
	sub.Unsubscribe()
	if !reader.closed {
		t.Fatalf("expected reader closed on unsubscribe")
	}
}

var errRead = errors.New("broker gone")

type failingKafkaReader struct{}

func (failingKafkaReader) ReadMessage(context.Context) (kafka.Message, error) {
	return kafka.Message{}, errRead
}

func (failingKafkaReader) Close() error { return nil }

func TestKafkaSamplerReadErrorStopsLoop(t *testing.T) {
	oldNew := newKafkaReader
	newKafkaReader = func([]string, string, string) kafkaReader { return failingKafkaReader{} }
	defer func() { newKafkaReader = oldNew }()

	sampler := &KafkaSampler{Brokers: []string{"localhost:9092"}, Topic: "motion"}
	sub, err := sampler.Subscribe(func(Vector) { t.Errorf("unexpected delivery") })
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	sub.Unsubscribe()
}
