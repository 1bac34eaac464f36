package models

import "encoding/json"

// Feature is a single GeoJSON feature as served by the cadastre sources.
// Geometry is kept raw: the backend reshapes properties only and never
// interprets coordinates.
type Feature struct {
	Type       string                 `json:"type"`
	ID         string                 `json:"id,omitempty"`
	Properties map[string]interface{} `json:"properties"`
	Geometry   json.RawMessage        `json:"geometry,omitempty"`
}

// FeatureCollection is a GeoJSON feature collection.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// EmptyFeatureCollection returns a well-formed collection with no features,
// used when a commune has no published data.
func EmptyFeatureCollection() *FeatureCollection {
	return &FeatureCollection{Type: "FeatureCollection", Features: []Feature{}}
}

// GeocodeResult is one ranked candidate address from the address API.
type GeocodeResult struct {
	Label       string   `json:"label"`
	City        string   `json:"city"`
	CityCode    string   `json:"citycode"`
	Postcode    string   `json:"postcode"`
	Street      string   `json:"street,omitempty"`
	HouseNumber string   `json:"housenumber,omitempty"`
	Longitude   *float64 `json:"longitude"`
	Latitude    *float64 `json:"latitude"`
	Score       float64  `json:"score"`
}

// Address is the best match returned by reverse geocoding.
type Address struct {
	Label    string `json:"label"`
	City     string `json:"city"`
	CityCode string `json:"citycode"`
	Postcode string `json:"postcode"`
}
