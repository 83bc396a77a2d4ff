package openelevation

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type LookupAPIRequest struct {
	Locations []Location `json:"locations"`
}

type LookupAPIResponse struct {
	Results []Result `json:"results"`
}

type Result struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Elevation float64 `json:"elevation"`
}
