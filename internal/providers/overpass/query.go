package overpass

import (
	"fmt"
	"strconv"

	"github.com/paulmach/orb"
)

// BBoxQuery selects the ways matching filter inside bound, plus their nodes.
// filter is a sequence of Overpass tag filters such as ["highway"]["area"!~"yes"].
func BBoxQuery(filter string, bound orb.Bound, timeout int) string {
	// Overpass bboxes are south,west,north,east
	return fmt.Sprintf("[out:json][timeout:%d];(way%s(%s,%s,%s,%s););(._;>;);out body;",
		timeout, filter,
		formatCoord(bound.Min.Lat()), formatCoord(bound.Min.Lon()),
		formatCoord(bound.Max.Lat()), formatCoord(bound.Max.Lon()),
	)
}

// AroundQuery selects the ways matching filter within radius meters of center, plus their nodes
func AroundQuery(filter string, center orb.Point, radius float64, timeout int) string {
	return fmt.Sprintf("[out:json][timeout:%d];(way%s(around:%s,%s,%s););(._;>;);out body;",
		timeout, filter,
		formatCoord(radius), formatCoord(center.Lat()), formatCoord(center.Lon()),
	)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
