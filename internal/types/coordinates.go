package types

import "github.com/paulmach/orb"

// CoordinatePrecision is the number of decimal places kept when coordinates
// are sent to an elevation provider (about one meter)
const CoordinatePrecision = 5

type Coords struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func NewCoords(latitude, longitude float64) Coords {
	return Coords{
		Latitude:  latitude,
		Longitude: longitude,
	}
}

// CoordsFromPoint converts an orb point (lon, lat) to Coords
func CoordsFromPoint(p orb.Point) Coords {
	return NewCoords(p.Lat(), p.Lon())
}

// Point returns the coordinate as an orb point
func (c Coords) Point() orb.Point {
	return orb.Point{c.Longitude, c.Latitude}
}

// Rounded returns the coordinate rounded to CoordinatePrecision decimal places
func (c Coords) Rounded() Coords {
	return NewCoords(Round(c.Latitude, CoordinatePrecision), Round(c.Longitude, CoordinatePrecision))
}

// Valid reports whether the coordinate lies within latitude/longitude bounds
func (c Coords) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}
