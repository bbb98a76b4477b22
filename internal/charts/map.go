package charts

import (
	"encoding/json"
	"fmt"

	"agroclimate/internal/models"
)

const (
	LeafletCSS = "https://unpkg.com/leaflet@1.7.1/dist/leaflet.css"
	LeafletJS  = "https://unpkg.com/leaflet@1.7.1/dist/leaflet.js"

	// Esri World Imagery satellite tiles
	tileURL         = "https://server.arcgisonline.com/ArcGIS/rest/services/World_Imagery/MapServer/tile/{z}/{y}/{x}"
	tileAttribution = "Esri"

	MapID = "location-map"
)

// MapSnippet builds a Leaflet map centred on the location with a single
// marker whose popup and tooltip carry the location name.
func (cg *ChartGenerator) MapSnippet(loc models.Location) (ChartSnippet, error) {
	// json strings double as safe JavaScript string literals
	name, err := json.Marshal(loc.Name)
	if err != nil {
		return ChartSnippet{}, fmt.Errorf("failed to encode location name: %w", err)
	}

	div := fmt.Sprintf(`<div id="%s" class="map-container" style="width:100%%;height:%dpx;"></div>`, MapID, cg.height)
	script := fmt.Sprintf(`<script>(function(){if(typeof L==='undefined')return;var m=L.map('%s').setView([%f,%f],%d);L.tileLayer('%s',{attribution:'%s'}).addTo(m);L.marker([%f,%f]).addTo(m).bindPopup(%s).bindTooltip(%s);})();</script>`,
		MapID, loc.Latitude, loc.Longitude, loc.Zoom,
		tileURL, tileAttribution,
		loc.Latitude, loc.Longitude, name, name)

	return ChartSnippet{ID: MapID, Title: "Location Map", Div: div, Script: script}, nil
}
