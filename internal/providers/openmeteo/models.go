package openmeteo

type ElevationAPIResponse struct {
	Elevation []float64 `json:"elevation"`
}

type ErrorAPIResponse struct {
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
}
