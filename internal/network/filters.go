package network

import (
	"fmt"
	"strings"
)

// Network types accepted by Query.NetworkType
const (
	TypeDrive = "drive"
	TypeWalk  = "walk"
	TypeAll   = "all"
)

// wayFilters are the Overpass tag filters selecting the ways of each network type
var wayFilters = map[string]string{
	TypeDrive: `["highway"]["area"!~"yes"]["access"!~"private"]` +
		`["highway"!~"abandoned|bridleway|bus_guideway|construction|corridor|cycleway|elevator|escalator|footway|no|path|pedestrian|planned|platform|proposed|raceway|razed|service|steps|track"]` +
		`["motor_vehicle"!~"no"]["motorcar"!~"no"]` +
		`["service"!~"alley|driveway|emergency_access|parking|parking_aisle|private"]`,
	TypeWalk: `["highway"]["area"!~"yes"]["access"!~"private"]` +
		`["highway"!~"abandoned|bus_guideway|construction|cycleway|motor|no|planned|platform|proposed|raceway|razed"]` +
		`["foot"!~"no"]["service"!~"private"]`,
	TypeAll: `["highway"]["area"!~"yes"]["highway"!~"abandoned|construction|no|planned|platform|proposed|raceway|razed"]`,
}

// wayFilter returns the Overpass filter for a network type
func wayFilter(networkType string) (string, error) {
	f, ok := wayFilters[strings.ToLower(networkType)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownNetworkType, networkType)
	}
	return f, nil
}

// onewayDirection reports how a way may be traversed in a network of the given
// type: forward only (1), reverse only (-1) or both ways (0)
func onewayDirection(networkType string, tags map[string]string) int {
	if strings.ToLower(networkType) != TypeDrive {
		return 0
	}
	switch tags["oneway"] {
	case "yes", "true", "1":
		return 1
	case "-1", "reverse":
		return -1
	}
	if tags["junction"] == "roundabout" {
		return 1
	}
	return 0
}
