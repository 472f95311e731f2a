package track

import "backend-shaketrack/internal/classify"

// Marker is one colored point on the map.
type Marker struct {
	Lat       float64         `json:"lat"`
	Lng       float64         `json:"lng"`
	Intensity float64         `json:"intensity"`
	Bucket    classify.Bucket `json:"bucket"`
	Color     string          `json:"color"`
}

// Vertex is one polyline point.
type Vertex struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Projection is the renderable form of a track.
type Projection struct {
	Markers []Marker `json:"markers"`
	Path    []Vertex `json:"path"`
}

// Project recomputes the full projection from a track snapshot. A path
// needs at least two records; below that it stays empty.
func Project(records []Record) Projection {
	proj := Projection{Markers: make([]Marker, 0, len(records))}
	for _, rec := range records {
		bucket := classify.Classify(rec.Intensity)
		proj.Markers = append(proj.Markers, Marker{
			Lat:       rec.Lat,
			Lng:       rec.Lng,
			Intensity: rec.Intensity,
			Bucket:    bucket,
			Color:     bucket.Color(),
		})
	}

	if len(records) < 2 {
		return proj
	}
	proj.Path = make([]Vertex, 0, len(records))
	for _, rec := range records {
		proj.Path = append(proj.Path, Vertex{Lat: rec.Lat, Lng: rec.Lng})
	}
	return proj
}
