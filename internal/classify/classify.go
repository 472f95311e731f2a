package classify

import (
	"fmt"
	"math"
)

// Scale normalizes raw shake intensities into [0,1]. Readings at or above
// the scale count as full intensity.
const Scale = 20.0

const (
	mediumThreshold = 0.3
	highThreshold   = 0.7
)

// Bucket is the discrete severity of a shake intensity reading.
type Bucket int

const (
	Low Bucket = iota
	Medium
	High
)

// Classify maps a raw intensity to its severity bucket. Total over all
// finite floats: negatives clamp to Low, values past the scale to High.
func Classify(intensity float64) Bucket {
	n := intensity / Scale
	if n < 0 || math.IsNaN(n) {
		n = 0
	}
	if n > 1 {
		n = 1
	}

	switch {
	case n < mediumThreshold:
		return Low
	case n < highThreshold:
		return Medium
	default:
		return High
	}
}

func (b Bucket) String() string {
	switch b {
	case Low:
		return "low"
	case Medium:
		return "medium"
	case High:
		return "high"
	}
	return "unknown"
}

// Color returns the marker color map clients use for this bucket.
func (b Bucket) Color() string {
	switch b {
	case Low:
		return "green"
	case Medium:
		return "yellow"
	case High:
		return "red"
	}
	return "gray"
}

func (b Bucket) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *Bucket) UnmarshalText(text []byte) error {
	switch string(text) {
	case "low":
		*b = Low
	case "medium":
		*b = Medium
	case "high":
		*b = High
	default:
		return fmt.Errorf("unknown bucket %q", text)
	}
	return nil
}
