package motion

import "math"

// ScaleFactor converts a raw accelerometer vector length into the
// intensity unit stored on track records.
const ScaleFactor = 10.0

// Vector is one accelerometer reading in gravitational-acceleration axes.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Magnitude returns the scaled length of the vector.
func (v Vector) Magnitude() float64 {
	return math.Sqrt(v.X*v.X+v.Y*v.Y+v.Z*v.Z) * ScaleFactor
}

// Handler receives vectors at source-determined cadence, in emission order.
type Handler func(Vector)

// Subscription stops delivery when released. Unsubscribe is idempotent and
// safe on an already-stopped handle.
type Subscription interface {
	Unsubscribe()
}

// Sampler is a source of motion vectors.
type Sampler interface {
	Subscribe(Handler) (Subscription, error)
}
