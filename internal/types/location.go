package types

import "github.com/paulmach/orb"

// Place is a geocoded place name with the area it covers
type Place struct {
	Name        string
	DisplayName string
	Center      Coords
	Bounds      orb.Bound
}
