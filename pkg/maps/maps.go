// Package maps resolves driving routes for the live tracking view.
package maps

import (
	"context"
	"fmt"
	"math"
	"time"

	gmaps "googlemaps.github.io/maps"
)

type Location struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

type Route struct {
	DistanceMeters  float64    `json:"distance_meters"`
	DurationSeconds int        `json:"duration_seconds"`
	Polyline        string     `json:"polyline,omitempty"`
	Points          []Location `json:"points"`
	Approximate     bool       `json:"approximate"`
}

type RouteProvider interface {
	Route(ctx context.Context, origin, destination Location) (*Route, error)
}

type GoogleRouteProvider struct {
	client *gmaps.Client
}

func NewGoogleRouteProvider(apiKey string) (*GoogleRouteProvider, error) {
	client, err := gmaps.NewClient(gmaps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create google maps client: %w", err)
	}
	return &GoogleRouteProvider{client: client}, nil
}

func (g *GoogleRouteProvider) Route(ctx context.Context, origin, destination Location) (*Route, error) {
	req := &gmaps.DirectionsRequest{
		Origin:      fmt.Sprintf("%f,%f", origin.Latitude, origin.Longitude),
		Destination: fmt.Sprintf("%f,%f", destination.Latitude, destination.Longitude),
		Mode:        gmaps.TravelModeDriving,
	}

	routes, _, err := g.client.Directions(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("directions request failed: %w", err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return nil, fmt.Errorf("no route between %v and %v", origin, destination)
	}

	best := routes[0]
	route := &Route{Polyline: best.OverviewPolyline.Points}
	for _, leg := range best.Legs {
		route.DistanceMeters += float64(leg.Distance.Meters)
		route.DurationSeconds += int(leg.Duration.Seconds())
	}

	points, err := best.OverviewPolyline.Decode()
	if err != nil {
		return nil, fmt.Errorf("decode polyline: %w", err)
	}
	route.Points = make([]Location, len(points))
	for i, p := range points {
		route.Points[i] = Location{Latitude: p.Lat, Longitude: p.Lng}
	}

	return route, nil
}

const (
	earthRadiusKM       = 6371.0
	averageCitySpeedKMH = 30.0
)

// HaversineKM returns the great-circle distance between two points.
func HaversineKM(a, b Location) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusKM * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// StraightLine is the fallback route when no provider is configured or the
// provider fails: the segment between both points at city speed.
func StraightLine(origin, destination Location) *Route {
	km := HaversineKM(origin, destination)
	eta := time.Duration(km / averageCitySpeedKMH * float64(time.Hour))
	return &Route{
		DistanceMeters:  math.Round(km * 1000),
		DurationSeconds: int(eta.Seconds()),
		Points:          []Location{origin, destination},
		Approximate:     true,
	}
}
