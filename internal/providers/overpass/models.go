package overpass

import (
	"time"

	"github.com/paulmach/osm"
)

type Response struct {
	Version   float64 `json:"version"`
	Generator string  `json:"generator"`
	Osm3S     struct {
		TimestampOsmBase time.Time `json:"timestamp_osm_base"`
		Copyright        string    `json:"copyright"`
	} `json:"osm3s"`
	Remark   string    `json:"remark,omitempty"`
	Elements []Element `json:"elements"`
}

type Element struct {
	Type  osm.Type          `json:"type"`
	ID    int64             `json:"id"`
	Lat   float64           `json:"lat,omitempty"`
	Lon   float64           `json:"lon,omitempty"`
	Nodes []osm.NodeID      `json:"nodes,omitempty"`
	Tags  map[string]string `json:"tags,omitempty"`
}

func (e Element) NodeID() osm.NodeID { return osm.NodeID(e.ID) }
func (e Element) WayID() osm.WayID   { return osm.WayID(e.ID) }

// Tag returns the value of a tag or "" when it is not set
func (e Element) Tag(key string) string {
	return e.Tags[key]
}
