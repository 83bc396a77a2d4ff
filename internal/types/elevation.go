package types

const FeetToMeters = 0.3048

type Elevation struct {
	Feet   float64 `json:"feet"`
	Meters float64 `json:"meters"`
}

func NewElevationFromFeet(feet float64) Elevation {
	return Elevation{
		Meters: feet * FeetToMeters,
		Feet:   feet,
	}
}

func NewElevationFromMeters(meters float64) Elevation {
	return Elevation{
		Meters: meters,
		Feet:   meters / FeetToMeters,
	}
}
