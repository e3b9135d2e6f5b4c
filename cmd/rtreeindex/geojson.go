package main

import (
	"io"
	"strconv"
	"strings"

	"github.com/tormol/geoindex/geo"
)

// writeGeoJSON renders the matched ids as a GeoJSON FeatureCollection
// of Polygon features, one per rectangle, in the order ids was
// produced by the query.
func writeGeoJSON(w io.Writer, ids []int32, byId map[int32]geo.Rectangle) error {
	features := make([]string, 0, len(ids))
	for _, id := range ids {
		r, ok := byId[id]
		if !ok {
			continue
		}
		features = append(features, rectFeature(id, r))
	}
	_, err := io.WriteString(w, `{"type": "FeatureCollection", "features": [`+strings.Join(features, ", ")+"]}\n")
	return err
}

func rectFeature(id int32, r geo.Rectangle) string {
	ring := []string{
		coord(r.MinX, r.MinY),
		coord(r.MaxX, r.MinY),
		coord(r.MaxX, r.MaxY),
		coord(r.MinX, r.MaxY),
		coord(r.MinX, r.MinY),
	}
	return `{
		"type": "Feature",
		"id": ` + strconv.Itoa(int(id)) + `,
		"geometry": {
			"type": "Polygon",
			"coordinates": [[` + strings.Join(ring, ", ") + `]]
		},
		"properties": {}
	}`
}

func coord(x, y float64) string {
	return "[" + strconv.FormatFloat(x, 'f', 6, 64) + ", " + strconv.FormatFloat(y, 'f', 6, 64) + "]"
}
