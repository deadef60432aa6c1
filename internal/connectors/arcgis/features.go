package arcgis

import (
	"encoding/json"

	"github.com/custodia-labs/crc-harvest/internal/core/domain"
)

// featureCollection is a GeoJSON query response. ArcGIS puts query errors
// in the same body with a 200 status.
type featureCollection struct {
	Type     string        `json:"type"`
	Features []feature     `json:"features"`
	Error    *serviceError `json:"error,omitempty"`
}

type feature struct {
	ID         any            `json:"id"`
	Geometry   *geometry      `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

// geometry keeps coordinates undecoded. Their shape depends on Type and
// only points are used.
type geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

type serviceError struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details"`
}

// point returns the geometry as a point, nil when absent or not a point.
func (g *geometry) point() *domain.Point {
	if g == nil || g.Type != "Point" {
		return nil
	}
	var coords []float64
	if err := json.Unmarshal(g.Coordinates, &coords); err != nil || len(coords) < 2 {
		return nil
	}
	p := domain.Point{Longitude: coords[0], Latitude: coords[1]}
	if !p.Valid() {
		return nil
	}
	return &p
}

// toRawRecord converts a decoded feature into a raw record.
func (f feature) toRawRecord(ct domain.CollectionType) domain.RawRecord {
	props := f.Properties
	if props == nil {
		props = map[string]any{}
	}
	return domain.RawRecord{
		Collection: ct,
		FeatureID:  f.ID,
		Geometry:   f.Geometry.point(),
		Properties: props,
	}
}
