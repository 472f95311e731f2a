package track

import "time"

// Record is one fused observation: where the device was and how hard it
// was shaking when the position resolved. Never mutated after append.
type Record struct {
	Timestamp time.Time `json:"timestamp"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Intensity float64   `json:"intensity"`
}

// State is the recorder session state. There is no pause.
type State string

const (
	Idle      State = "idle"
	Recording State = "recording"
)

// RegionHint is the suggested map viewport center and span.
type RegionHint struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	SpanLat float64 `json:"span_lat"`
	SpanLng float64 `json:"span_lng"`
}

// DefaultRegion is shown until the first real fix arrives.
var DefaultRegion = RegionHint{Lat: 40.7128, Lng: -74.0060, SpanLat: 0.01, SpanLng: 0.01}

// Summary aggregates the current track.
type Summary struct {
	SessionID      string  `json:"session_id"`
	State          State   `json:"state"`
	RecordCount    int     `json:"record_count"`
	DroppedSamples int64   `json:"dropped_samples"`
	DurationSec    int64   `json:"duration_sec"`
	DistanceM      float64 `json:"distance_m"`
	PeakIntensity  float64 `json:"peak_intensity"`
}
